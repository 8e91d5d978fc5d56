package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"petshop/internal/events"
	"petshop/internal/mailer"
	"petshop/internal/workers"
	"petshop/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

type MockSubscriber struct {
	mock.Mock
}

func (m *MockSubscriber) Subscribe(ctx context.Context, queue string, handler rabbitmq.MessageHandler) error {
	args := m.Called(queue)
	return args.Error(0)
}

func TestNotificationWorker_StartSubscribesBothQueues(t *testing.T) {
	broker := new(MockSubscriber)
	broker.On("Subscribe", rabbitmq.QueueOrderEvents).Return(nil).Once()
	broker.On("Subscribe", rabbitmq.QueueContactReplies).Return(nil).Once()

	w := workers.NewNotificationWorker(broker, new(MockMailer), zap.NewNop().Sugar())
	require.NoError(t, w.Start())
	w.Stop()
	broker.AssertExpectations(t)
}

func TestNotificationWorker_HandleContactReply(t *testing.T) {
	m := new(MockMailer)
	w := workers.NewNotificationWorker(new(MockSubscriber), m, zap.NewNop().Sugar())

	body, _ := json.Marshal(events.ContactReply{
		RequestID: "req-1",
		To:        "ana@example.com",
		Subject:   "Re: envíos",
		Body:      "Despachamos a todo Chile.",
	})
	m.On("Send", mailer.Message{To: "ana@example.com", Subject: "Re: envíos", Body: "Despachamos a todo Chile."}).Return(nil).Once()

	assert.NoError(t, w.HandleContactReply(context.Background(), body))
	m.AssertExpectations(t)
}

func TestNotificationWorker_HandleContactReplyFailures(t *testing.T) {
	m := new(MockMailer)
	w := workers.NewNotificationWorker(new(MockSubscriber), m, zap.NewNop().Sugar())

	assert.Error(t, w.HandleContactReply(context.Background(), []byte("{not json")))

	smtpErr := errors.New("relay refused")
	m.On("Send", mock.Anything).Return(smtpErr).Once()
	body, _ := json.Marshal(events.ContactReply{To: "x@y.cl"})
	assert.ErrorIs(t, w.HandleContactReply(context.Background(), body), smtpErr)
}

func TestNotificationWorker_HandleOrderCreated(t *testing.T) {
	w := workers.NewNotificationWorker(new(MockSubscriber), new(MockMailer), zap.NewNop().Sugar())

	body, _ := json.Marshal(events.OrderCreated{OrderID: "o-1", UserID: "u-1", Total: 5000})
	assert.NoError(t, w.HandleOrderCreated(context.Background(), body))
	assert.Error(t, w.HandleOrderCreated(context.Background(), []byte("nope")))
}
