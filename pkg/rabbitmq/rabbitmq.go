package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Queues declared on connect.
const (
	QueueOrderEvents    = "order_queue"
	QueueContactReplies = "contact_reply_queue"
)

const maxRedeliveries = 3

// ErrClosed is returned when the client has no open channel.
var ErrClosed = errors.New("rabbitmq channel is not available")

// MessageHandler processes one message body.
type MessageHandler func(ctx context.Context, body []byte) error

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.RWMutex
	logger  *zap.SugaredLogger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL           string
	PrefetchCount int
}

// NewClient connects to RabbitMQ, opens a channel and declares the queues.
func NewClient(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	for _, name := range []string{QueueOrderEvents, QueueContactReplies} {
		_, err = ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare %s: %w", name, err)
		}
	}

	logger.Infow("rabbitmq connected", "queues", []string{QueueOrderEvents, QueueContactReplies})

	return &Client{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		c.conn = nil
	}
	return errors.Join(errs...)
}

func (c *Client) publish(exchange, routingKey string, msg amqp.Publishing) error {
	if c == nil {
		return ErrClosed
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.channel == nil {
		return ErrClosed
	}
	return c.channel.Publish(
		exchange,   // exchange, "" is the default exchange
		routingKey, // routing key, the queue name on the default exchange
		false,      // mandatory
		false,      // immediate
		msg,
	)
}

// Publish sends a persistent JSON message.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	err := c.publish(exchange, routingKey, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Subscribe consumes queue until ctx is cancelled. A failed message is
// republished with an incremented x-retry-count header and dropped after
// maxRedeliveries attempts.
func (c *Client) Subscribe(ctx context.Context, queue string, handler MessageHandler) error {
	c.mu.RLock()
	if c.channel == nil {
		c.mu.RUnlock()
		return ErrClosed
	}
	msgs, err := c.channel.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, queue, msg, handler)
			}
		}
	}()
	return nil
}

func (c *Client) handle(ctx context.Context, queue string, msg amqp.Delivery, handler MessageHandler) {
	err := handler(ctx, msg.Body)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.Warnw("failed to ack message", "queue", queue, "error", ackErr)
		}
		return
	}

	retries := RetryCount(msg.Headers)
	if retries >= maxRedeliveries {
		c.logger.Errorw("dropping message after retries", "queue", queue, "retries", retries, "error", err)
		_ = msg.Ack(false)
		return
	}

	c.logger.Warnw("message failed, requeueing", "queue", queue, "retries", retries, "error", err)
	repubErr := c.publish("", queue, amqp.Publishing{
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		DeliveryMode: amqp.Persistent,
		Headers:      amqp.Table{"x-retry-count": int32(retries + 1)},
		Timestamp:    time.Now(),
	})
	if repubErr != nil {
		// Let the broker redeliver it instead.
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

// RetryCount reads the x-retry-count header.
func RetryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	switch v := headers["x-retry-count"].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}
