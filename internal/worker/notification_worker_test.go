package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketplace_api/internal/service"
)

// fakeAcker 记录 ack / nack
type fakeAcker struct {
	mu      sync.Mutex
	acked   []uint64
	dropped []uint64
	requeue []uint64
}

func (f *fakeAcker) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if requeue {
		f.requeue = append(f.requeue, tag)
	} else {
		f.dropped = append(f.dropped, tag)
	}
	return nil
}

func (f *fakeAcker) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []service.Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, n service.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if n.Kind != service.NotificationConfirmEmail && n.Kind != service.NotificationPasswordReset {
		return service.ErrUnknownNotification
	}
	f.sent = append(f.sent, n)
	return nil
}

func delivery(t *testing.T, acker amqp.Acknowledger, tag uint64, v any) amqp.Delivery {
	var body []byte
	switch b := v.(type) {
	case string:
		body = []byte(b)
	default:
		var err error
		body, err = json.Marshal(v)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: acker, DeliveryTag: tag, Body: body}
}

func TestNotificationWorker_Handle(t *testing.T) {
	confirm := service.Notification{Kind: service.NotificationConfirmEmail, To: "a@example.com", ActionURL: "http://x/confirm"}

	tests := []struct {
		name        string
		body        any
		sendErr     error
		redelivered bool
		want        Outcome
	}{
		{"delivered", confirm, nil, false, OutcomeAck},
		{"malformed json", "{not json", nil, false, OutcomeDrop},
		{"unknown kind", service.Notification{Kind: "newsletter", To: "a@example.com"}, nil, false, OutcomeDrop},
		{"smtp down", confirm, errors.New("dial tcp: connection refused"), false, OutcomeRequeue},
		{"smtp down after retry", confirm, errors.New("dial tcp: connection refused"), true, OutcomeDrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewNotificationWorker(&fakeNotifier{err: tt.sendErr}, 1, zap.NewNop())
			d := delivery(t, &fakeAcker{}, 1, tt.body)
			d.Redelivered = tt.redelivered
			assert.Equal(t, tt.want, w.Handle(context.Background(), d))
		})
	}
}

func TestNotificationWorker_Run(t *testing.T) {
	acker := &fakeAcker{}
	notifier := &fakeNotifier{}
	w := NewNotificationWorker(notifier, 3, zap.NewNop())

	ch := make(chan amqp.Delivery, 4)
	ch <- delivery(t, acker, 1, service.Notification{Kind: service.NotificationConfirmEmail, To: "a@example.com"})
	ch <- delivery(t, acker, 2, service.Notification{Kind: service.NotificationPasswordReset, To: "b@example.com"})
	ch <- delivery(t, acker, 3, "garbage")
	close(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Run(ctx, ch))

	assert.ElementsMatch(t, []uint64{1, 2}, acker.acked)
	assert.Equal(t, []uint64{3}, acker.dropped)
	assert.Empty(t, acker.requeue)
	assert.Len(t, notifier.sent, 2)
}

func TestNotificationWorker_RunStopsOnCancel(t *testing.T) {
	w := NewNotificationWorker(&fakeNotifier{}, 2, zap.NewNop())
	ch := make(chan amqp.Delivery)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, ch) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run() 未在取消后退出")
	}
}
