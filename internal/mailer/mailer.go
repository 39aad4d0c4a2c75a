// Package mailer delivers contact-form messages to the site owners.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v3"
)

// ErrNoRecipient is returned when an email has no To address.
var ErrNoRecipient = errors.New("mailer: no recipient")

// Email is a plain-text message.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Resend sends mail through the Resend API.
type Resend struct {
	client *resend.Client
}

// NewResend creates a Resend sender using apiKey.
func NewResend(apiKey string) *Resend {
	return &Resend{client: resend.NewClient(apiKey)}
}

// Send implements Sender.
func (s *Resend) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}

	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("mailer.Resend.Send: %w", err)
	}
	return nil
}

// Log writes emails to a logger instead of sending them. It stands in for
// Resend in development when no API key is configured.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log sender.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Send implements Sender.
func (s *Log) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	s.logger.InfoContext(ctx, "email not sent, no mail provider configured",
		slog.Any("to", email.To),
		slog.String("reply_to", email.ReplyTo),
		slog.String("subject", email.Subject),
		slog.Int("text_bytes", len(email.Text)),
	)
	return nil
}

var (
	_ Sender = (*Resend)(nil)
	_ Sender = (*Log)(nil)
)
