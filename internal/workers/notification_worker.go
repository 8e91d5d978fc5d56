package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"petshop/internal/events"
	"petshop/internal/mailer"
	"petshop/pkg/rabbitmq"

	"go.uber.org/zap"
)

// Subscriber is the consuming side of the broker.
type Subscriber interface {
	Subscribe(ctx context.Context, queue string, handler rabbitmq.MessageHandler) error
}

// NotificationWorker delivers contact replies and logs placed orders.
type NotificationWorker struct {
	broker Subscriber
	mailer mailer.Mailer
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewNotificationWorker(broker Subscriber, m mailer.Mailer, logger *zap.SugaredLogger) *NotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationWorker{
		broker: broker,
		mailer: m,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *NotificationWorker) Start() error {
	w.logger.Info("starting notification worker")

	if err := w.broker.Subscribe(w.ctx, rabbitmq.QueueOrderEvents, w.HandleOrderCreated); err != nil {
		return err
	}
	return w.broker.Subscribe(w.ctx, rabbitmq.QueueContactReplies, w.HandleContactReply)
}

func (w *NotificationWorker) Stop() {
	w.logger.Info("stopping notification worker")
	w.cancel()
}

// HandleOrderCreated records the order for downstream fulfilment.
func (w *NotificationWorker) HandleOrderCreated(_ context.Context, message []byte) error {
	var event events.OrderCreated
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.Infow("order created", "order_id", event.OrderID, "user_id", event.UserID, "items", len(event.Items), "total", event.Total)
	return nil
}

// HandleContactReply emails a staff reply to the requester.
func (w *NotificationWorker) HandleContactReply(ctx context.Context, message []byte) error {
	var event events.ContactReply
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.Infow("sending contact reply", "request_id", event.RequestID)
	err := w.mailer.Send(ctx, mailer.Message{
		To:      event.To,
		Subject: event.Subject,
		Body:    event.Body,
	})
	if err != nil {
		w.logger.Errorw("failed to send contact reply", "request_id", event.RequestID, "error", err)
		return err
	}
	return nil
}
