package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for dispatch outcomes.
var (
	ErrInvalidConfig = errors.New("mailer: invalid configuration")
	ErrSendFailed    = errors.New("mailer: failed to send email")
)

// Mailer is the capability interface the domain services depend on. It is
// built once at startup and injected; templates and the transport handle
// are never re-resolved per call.
type Mailer interface {
	// SendWelcome delivers the waitlist welcome email.
	SendWelcome(ctx context.Context, email, name string) error
	// SendContactConfirmation acknowledges a contact-form submission to its sender.
	SendContactConfirmation(ctx context.Context, name, email string) error
	// SendContactNotification forwards a contact-form submission to the team inbox.
	SendContactNotification(ctx context.Context, name, email, message string) error
}

// message is the rendered email handed to a transport.
type message struct {
	To      string
	Subject string
	HTML    string
	Tag     string
}

// Transport delivers one rendered message. Implementations: SMTP, Postmark,
// and the dev sender. The send method is unexported so transports stay
// within this package.
type Transport interface {
	send(ctx context.Context, msg message) error
}

const defaultDispatchTimeout = 10 * time.Second

// Service renders templates and hands messages to its transport. Every send
// is bounded by the dispatch timeout so a hung SMTP connection cannot hold
// a request open.
type Service struct {
	transport    Transport
	templates    *templateSet
	contactInbox string
	timeout      time.Duration
}

// NewService wires a transport to the embedded template set. contactInbox
// receives contact-form notifications. A non-positive timeout falls back to
// the default.
func NewService(tr Transport, contactInbox string, timeout time.Duration) (*Service, error) {
	if tr == nil {
		return nil, fmt.Errorf("%w: transport is required", ErrInvalidConfig)
	}
	if contactInbox == "" {
		return nil, fmt.Errorf("%w: contact inbox address is required", ErrInvalidConfig)
	}
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &Service{
		transport:    tr,
		templates:    templates,
		contactInbox: contactInbox,
		timeout:      timeout,
	}, nil
}

func (s *Service) SendWelcome(ctx context.Context, email, name string) error {
	html, err := s.templates.render(templateWelcome, map[string]string{
		"Name":  name,
		"Email": email,
	})
	if err != nil {
		return err
	}

	return s.dispatch(ctx, message{
		To:      email,
		Subject: "Welcome to the StoryTime Waitlist!",
		HTML:    html,
		Tag:     "waitlist-welcome",
	})
}

func (s *Service) SendContactConfirmation(ctx context.Context, name, email string) error {
	html, err := s.templates.render(templateContactConfirmation, map[string]string{
		"Name": name,
	})
	if err != nil {
		return err
	}

	return s.dispatch(ctx, message{
		To:      email,
		Subject: "We received your message",
		HTML:    html,
		Tag:     "contact-confirmation",
	})
}

func (s *Service) SendContactNotification(ctx context.Context, name, email, msg string) error {
	html, err := s.templates.render(templateContactNotification, map[string]string{
		"Name":    name,
		"Email":   email,
		"Message": msg,
	})
	if err != nil {
		return err
	}

	return s.dispatch(ctx, message{
		To:      s.contactInbox,
		Subject: fmt.Sprintf("New contact form submission from %s", name),
		HTML:    html,
		Tag:     "contact-notification",
	})
}

func (s *Service) dispatch(ctx context.Context, msg message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.transport.send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}
