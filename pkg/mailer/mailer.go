// Package mailer SMTP 通知邮件 (纯文本 + 附件)
package mailer

import (
	"context"
	"errors"
	"io"

	"gopkg.in/gomail.v2"
)

// ErrNoRecipients 没有收件人
var ErrNoRecipients = errors.New("mailer: no recipients")

// Config SMTP 配置
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Attachment 附件
type Attachment struct {
	Name string
	Data []byte
}

// Message 一封邮件
type Message struct {
	To          []string
	ReplyTo     string
	FromName    string
	Subject     string
	Body        string // text/plain
	Attachments []Attachment
}

// Sender 发信能力
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPMailer 通过 gomail 发信
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP 创建 SMTP 发信器
func NewSMTP(cfg Config) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send 发送；gomail 不支持 context，只在拨号前检查
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	gm, err := Build(m.from, msg)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(gm)
}

// Build 组装 gomail 消息
func Build(from string, msg *Message) (*gomail.Message, error) {
	if msg == nil || len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	m := gomail.NewMessage()
	if msg.FromName != "" {
		m.SetHeader("From", m.FormatAddress(from, msg.FromName))
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return m, nil
}

// Nop 未配置 SMTP 时使用，什么都不发
type Nop struct{}

func (Nop) Send(context.Context, *Message) error { return nil }
