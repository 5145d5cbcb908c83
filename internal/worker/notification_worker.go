package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"marketplace_api/internal/service"
)

// NotificationKeys worker 绑定的路由键
var NotificationKeys = []string{"notification.*"}

// Outcome 单条消息的处理结果
type Outcome int

const (
	OutcomeAck     Outcome = iota
	OutcomeDrop            // 毒消息，不重新入队
	OutcomeRequeue         // 临时失败，重新入队一次
)

// NotificationWorker 消费通知队列并通过 Notifier 发送
type NotificationWorker struct {
	handler     service.Notifier
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewNotificationWorker 创建消费者
func NewNotificationWorker(handler service.Notifier, concurrency int, logger *zap.Logger) *NotificationWorker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &NotificationWorker{
		handler:     handler,
		concurrency: concurrency,
		timeout:     30 * time.Second,
		logger:      logger.Named("worker"),
	}
}

// Run 阻塞消费直到 ctx 结束或通道关闭
func (w *NotificationWorker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					w.settle(d, w.Handle(ctx, d))
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Handle 解码并发送一条通知
func (w *NotificationWorker) Handle(ctx context.Context, d amqp.Delivery) Outcome {
	var n service.Notification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		w.logger.Warn("无法解析的通知消息，丢弃", zap.String("routing_key", d.RoutingKey), zap.Error(err))
		return OutcomeDrop
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.handler.Notify(ctx, n)
	switch {
	case err == nil:
		return OutcomeAck
	case errors.Is(err, service.ErrUnknownNotification):
		w.logger.Warn("未知通知类型，丢弃", zap.String("kind", n.Kind))
		return OutcomeDrop
	case d.Redelivered:
		// 已重试过一次仍失败，避免无限循环
		w.logger.Error("通知重试仍失败，丢弃", zap.String("kind", n.Kind), zap.String("to", n.To), zap.Error(err))
		return OutcomeDrop
	default:
		w.logger.Warn("通知发送失败，重新入队", zap.String("kind", n.Kind), zap.String("to", n.To), zap.Error(err))
		return OutcomeRequeue
	}
}

func (w *NotificationWorker) settle(d amqp.Delivery, outcome Outcome) {
	var err error
	switch outcome {
	case OutcomeAck:
		err = d.Ack(false)
	case OutcomeDrop:
		err = d.Nack(false, false)
	case OutcomeRequeue:
		err = d.Nack(false, true)
	}
	if err != nil {
		w.logger.Error("确认消息失败", zap.Uint64("delivery_tag", d.DeliveryTag), zap.Error(err))
	}
}
