package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/ilstam/guitarchords/internal/domain"
	"github.com/ilstam/guitarchords/internal/mailer"
)

// Contact form field limits, in runes.
const (
	contactNameMax    = 100
	contactSubjectMax = 200
	contactBodyMax    = 5000
)

// ContactService forwards contact-form messages to the site owners.
type ContactService struct {
	sender mailer.Sender
	from   string
	to     []string
}

// NewContactService constructs a ContactService that sends from the given
// address to each of to.
func NewContactService(sender mailer.Sender, from string, to []string) *ContactService {
	return &ContactService{sender: sender, from: from, to: to}
}

// Send validates msg and emails it. Replies go to the visitor's address.
func (s *ContactService) Send(ctx context.Context, msg domain.ContactMessage) error {
	name, err := requireText("name", msg.Name, contactNameMax)
	if err != nil {
		return err
	}
	subject, err := requireText("subject", msg.Subject, contactSubjectMax)
	if err != nil {
		return err
	}
	body, err := requireText("body", msg.Body, contactBodyMax)
	if err != nil {
		return err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(msg.Email))
	if err != nil {
		return fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}

	email := mailer.Email{
		From:    s.from,
		To:      s.to,
		ReplyTo: addr.Address,
		Subject: "[contact] " + subject,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s\n", name, addr.Address, body),
	}
	if err := s.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("service.ContactService.Send: %w", err)
	}
	return nil
}
