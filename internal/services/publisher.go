package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// EventPublisher publishes a message body to the broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publishEvent is best-effort: the business write already happened, so a broker
// failure is logged and dropped.
func publishEvent(pub EventPublisher, logger *zap.SugaredLogger, queue string, payload any) {
	if pub == nil {
		logger.Warnw("event publisher is not configured, skipping message", "queue", queue)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Errorw("failed to marshal event", "queue", queue, "error", err)
		return
	}
	if err := pub.Publish("", queue, body); err != nil {
		logger.Warnw("failed to publish event", "queue", queue, "error", err)
		return
	}
	logger.Debugw("event published", "queue", queue)
}
