// Package channel provides delivery adapters: email, telegram, sms/whatsapp gateway, in-app push and log.
package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/email"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
)

// mailSender is implemented by email.Sender
type mailSender interface {
	Send(text string, params email.Params) error
}

// EmailParams configures the SMTP connection
type EmailParams struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      bool
	StartTLS bool
	Timeout  time.Duration
}

// Email sends plain text mails over SMTP
type Email struct {
	sender mailSender
	from   string
}

// NewEmail makes an email adapter for the given SMTP server
func NewEmail(p EmailParams) *Email {
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	opts := []email.Option{
		email.Port(p.Port),
		email.ContentType("text/plain"),
		email.TLS(p.TLS),
		email.STARTTLS(p.StartTLS),
		email.TimeOut(p.Timeout),
	}
	if p.Username != "" {
		opts = append(opts, email.Auth(p.Username, p.Password))
	}
	return &Email{sender: email.NewSender(p.Host, opts...), from: p.From}
}

// Channel returns email channel
func (e *Email) Channel() domain.Channel { return domain.ChannelEmail }

// Send delivers the message to msg.Destination. SMTP has no message reference, the returned ref is empty.
func (e *Email) Send(ctx context.Context, msg dispatch.Message) (string, error) {
	subject := msg.Subject
	if subject == "" {
		subject = "Notification"
	}
	params := email.Params{From: e.from, To: []string{msg.Destination}, Subject: subject}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	// smtp client has no context support, a send already in flight when ctx is done
	// still completes in the background and the mail may arrive after the error is returned
	errCh := make(chan error, 1)
	go func() { errCh <- e.sender.Send(msg.Body, params) }()

	select {
	case err := <-errCh:
		if err != nil {
			return "", fmt.Errorf("send email: %w", err)
		}
		return "", nil
	case <-ctx.Done():
		return "", fmt.Errorf("send email: %w", ctx.Err())
	}
}
