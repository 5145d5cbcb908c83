package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var actionTemplate = template.Must(template.ParseFS(templateFS, "templates/action.html"))

// Options SMTP 参数
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// ActionEmail 标题 + 一段说明 + 一个按钮
type ActionEmail struct {
	Name        string
	Body        string
	ActionURL   string
	ActionLabel string
}

// Message 待发送邮件
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer SMTP 发件
type Mailer struct {
	client   *mail.Client
	from     string
	fromName string
}

// New 创建 SMTP 客户端，不会立即建立连接
func New(opt Options) (*Mailer, error) {
	opts := []mail.Option{mail.WithPort(opt.Port)}
	if opt.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opt.Username),
			mail.WithPassword(opt.Password),
		)
	}
	if opt.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(opt.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建 SMTP 客户端失败: %w", err)
	}
	return &Mailer{client: client, from: opt.From, fromName: opt.FromName}, nil
}

// Send 发送一封 HTML 邮件
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// RenderAction 渲染按钮邮件
func RenderAction(data ActionEmail) (string, error) {
	var buf bytes.Buffer
	if err := actionTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
