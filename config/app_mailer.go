package config

import (
	"fmt"
	"time"

	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
	"github.com/storytimehq/storytime-api/pkg/circuitbreaker"
	"github.com/storytimehq/storytime-api/pkg/utils"
)

// NewMailer builds the email dispatcher from environment configuration.
// EMAIL_PROVIDER selects the transport: "smtp" (default), "postmark", or
// "dev" (writes emails to EMAIL_DEV_DIR instead of sending).
//
// Common settings:
//
//	EMAIL_FROM         sender address (default noreply@storytime.app)
//	CONTACT_RECIPIENT  team inbox for contact-form notifications
//	EMAIL_TIMEOUT      per-dispatch deadline (default 10s)
//
// SMTP settings: EMAIL_HOST, EMAIL_PORT, EMAIL_USER, EMAIL_PASS.
// Postmark settings: POSTMARK_SERVER_TOKEN, POSTMARK_ACCOUNT_TOKEN.
func NewMailer(logger *log.Logger) (mailer.Mailer, error) {
	provider := utils.GetEnvTrimmedOrDefault("EMAIL_PROVIDER", "smtp")
	from := utils.GetEnvTrimmedOrDefault("EMAIL_FROM", "noreply@storytime.app")
	contactInbox := utils.GetEnvTrimmedOrDefault("CONTACT_RECIPIENT", "hello@storytime.app")

	timeout := 10 * time.Second
	if raw := utils.GetEnvTrimmed("EMAIL_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			logger.Warn("Invalid EMAIL_TIMEOUT; using default", "value", raw)
		} else {
			timeout = parsed
		}
	}

	transport, err := newMailTransport(provider, from, logger)
	if err != nil {
		return nil, err
	}

	// A dead provider gets skipped instead of hammered; dispatch remains a
	// single attempt per send either way.
	guarded := mailer.WithCircuitBreaker(transport, circuitbreaker.NewCircuitBreaker(nil))

	svc, err := mailer.NewService(guarded, contactInbox, timeout)
	if err != nil {
		return nil, err
	}

	logger.Info("Email dispatcher initialized",
		"provider", provider,
		"from", from,
		"contact_inbox", contactInbox,
		"timeout", timeout,
	)
	return svc, nil
}

func newMailTransport(provider, from string, logger *log.Logger) (mailer.Transport, error) {
	switch provider {
	case "smtp":
		return mailer.NewSMTPTransport(mailer.SMTPConfig{
			Host:     utils.GetEnvTrimmedOrDefault("EMAIL_HOST", "localhost"),
			Port:     utils.GetEnvInt("EMAIL_PORT", 587),
			Username: utils.GetEnvTrimmed("EMAIL_USER"),
			Password: utils.GetEnvTrimmed("EMAIL_PASS"),
			From:     from,
		})

	case "postmark":
		return mailer.NewPostmarkTransport(mailer.PostmarkConfig{
			ServerToken:  utils.GetEnvTrimmed("POSTMARK_SERVER_TOKEN"),
			AccountToken: utils.GetEnvTrimmed("POSTMARK_ACCOUNT_TOKEN"),
			From:         from,
		})

	case "dev":
		dir := utils.GetEnvTrimmedOrDefault("EMAIL_DEV_DIR", "./email-output")
		logger.Info("Using dev mail transport; emails are written to disk", "dir", dir)
		return mailer.NewDevTransport(dir), nil

	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q (expected smtp, postmark, or dev)", provider)
	}
}
