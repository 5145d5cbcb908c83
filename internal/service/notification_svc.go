package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketplace_api/pkg/mailer"
)

// 通知类型，同时决定 MQ 路由键
const (
	NotificationConfirmEmail  = "confirm_email"
	NotificationPasswordReset = "password_reset"
)

// ErrUnknownNotification 无法处理的通知类型，重试无意义
var ErrUnknownNotification = errors.New("unknown notification kind")

// ErrNotifierClosed 通知池已关闭
var ErrNotifierClosed = errors.New("notifier is closed")

// Notification 事务邮件
type Notification struct {
	Kind      string `json:"kind"`
	To        string `json:"to"`
	FirstName string `json:"first_name"`
	ActionURL string `json:"action_url"`
}

// RoutingKey MQ 路由键
func (n Notification) RoutingKey() string {
	return "notification." + n.Kind
}

// Notifier 通知发送
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// MailSender 发送 HTML 邮件，*mailer.Mailer 实现
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// ==================== NotificationHandler 渲染并发送 ====================

type emailContent struct {
	subject string
	body    string
	label   string
}

var emailContents = map[string]emailContent{
	NotificationConfirmEmail: {
		subject: "Confirm your email address!",
		body:    "Please click the link below to confirm your email",
		label:   "Confirm your email",
	},
	NotificationPasswordReset: {
		subject: "Reset your password",
		body:    "Please click the link below to reset your password",
		label:   "Reset your password",
	},
}

// NotificationHandler 同步渲染模板并发送
type NotificationHandler struct {
	sender MailSender
}

// NewNotificationHandler 创建处理器
func NewNotificationHandler(sender MailSender) *NotificationHandler {
	return &NotificationHandler{sender: sender}
}

// Notify 渲染并发送一封邮件
func (h *NotificationHandler) Notify(ctx context.Context, n Notification) (err error) {
	defer func() { notificationsTotal.WithLabelValues(n.Kind, resultLabel(err)).Inc() }()

	content, ok := emailContents[n.Kind]
	if !ok {
		return ErrUnknownNotification
	}
	html, err := mailer.RenderAction(mailer.ActionEmail{
		Name:        n.FirstName,
		Body:        content.body,
		ActionURL:   n.ActionURL,
		ActionLabel: content.label,
	})
	if err != nil {
		return err
	}
	return h.sender.Send(ctx, mailer.Message{To: n.To, Subject: content.subject, HTML: html})
}

// ==================== AsyncNotifier 进程内有界池 ====================

// AsyncNotifier 调用方只负责入队，固定数量的 worker 投递
type AsyncNotifier struct {
	next    Notifier
	jobs    chan Notification
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncNotifier 启动 workers 个投递协程
func NewAsyncNotifier(next Notifier, workers, queueSize int, logger *zap.Logger) *AsyncNotifier {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	a := &AsyncNotifier{
		next:    next,
		jobs:    make(chan Notification, queueSize),
		timeout: 30 * time.Second,
		logger:  logger.Named("notifier"),
	}
	a.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go a.run()
	}
	return a
}

// Notify 入队，队列满时阻塞直到 ctx 结束
func (a *AsyncNotifier) Notify(ctx context.Context, n Notification) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrNotifierClosed
	}

	select {
	case a.jobs <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *AsyncNotifier) run() {
	defer a.wg.Done()
	for n := range a.jobs {
		// 与请求的 ctx 脱钩，请求结束后仍要投递
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.next.Notify(ctx, n); err != nil {
			a.logger.Error("通知投递失败", zap.String("kind", n.Kind), zap.String("to", n.To), zap.Error(err))
		}
		cancel()
	}
}

// Close 停止接收并等待队列清空
func (a *AsyncNotifier) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.jobs)
	a.mu.Unlock()

	a.wg.Wait()
}

// ==================== QueueNotifier 经 RabbitMQ 投递 ====================

// Publisher *mq.Publisher 实现
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// QueueNotifier 发布到 topic exchange，由 worker 进程消费
type QueueNotifier struct {
	pub Publisher
}

// NewQueueNotifier 创建 MQ 通知
func NewQueueNotifier(pub Publisher) *QueueNotifier {
	return &QueueNotifier{pub: pub}
}

// Notify 发布一条通知
func (q *QueueNotifier) Notify(ctx context.Context, n Notification) error {
	return q.pub.PublishJSON(ctx, n.RoutingKey(), n)
}

// ==================== LogSender 未配置 SMTP 时使用 ====================

// LogSender 只记录日志
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender 创建日志发件器
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("mail")}
}

// Send 记录收件人与标题
func (l *LogSender) Send(_ context.Context, msg mailer.Message) error {
	l.logger.Info("SMTP 未配置，邮件未发送", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
