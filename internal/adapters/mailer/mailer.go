// Package mailer delivers templated email over SMTP, or logs it when no SMTP
// server is configured.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
	"gopkg.in/gomail.v2"
)

// dialer is the part of *gomail.Dialer the sender needs.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	dialer dialer
	from   string
}

// LogSender writes each rendered message to the request logger instead of sending it.
type LogSender struct{}

var (
	_ portssvc.EmailSender = (*SMTPSender)(nil)
	_ portssvc.EmailSender = LogSender{}
)

// New picks the SMTP sender when cfg.SMTPHost is set, the log sender otherwise.
func New(cfg *config.Config) portssvc.EmailSender {
	if cfg.SMTPHost == "" {
		return LogSender{}
	}
	return NewSMTPSender(gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword), cfg.EmailFrom)
}

func NewSMTPSender(d dialer, from string) *SMTPSender {
	return &SMTPSender{dialer: d, from: from}
}

// Send renders the template and hands it to the relay. The relay call cannot be
// interrupted, so cancellation only stops the caller from waiting for it.
func (s *SMTPSender) Send(ctx context.Context, to string, templateName string, props map[string]any) error {
	subject, body, err := Render(templateName, props)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send %s email: %w", templateName, err)
		}
		middleware.GetLoggerFromCtx(ctx).Debug("Email sent", slog.String("template", templateName))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending %s email: %w", templateName, ctx.Err())
	}
}

func (LogSender) Send(ctx context.Context, to string, templateName string, props map[string]any) error {
	subject, body, err := Render(templateName, props)
	if err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Email not sent, SMTP is not configured",
		slog.String("to", to),
		slog.String("template", templateName),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
