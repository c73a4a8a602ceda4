package notify

import (
	"context"
	"fmt"

	"salonbook/pkg/config"

	mail "gopkg.in/mail.v2"
)

type mailSender interface {
	DialAndSend(m ...*mail.Message) error
}

type EmailNotifier struct {
	dialer mailSender
	from   string
	to     string
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{
		dialer: mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.EmailFrom,
		to:     cfg.EmailTo,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
