package mailer

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkConfig describes the Postmark API transport.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	From         string
}

// PostmarkTransport delivers mail through Postmark's transactional API.
type PostmarkTransport struct {
	client *postmark.Client
	from   string
}

func NewPostmarkTransport(cfg PostmarkConfig) (*PostmarkTransport, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: Postmark server token is required", ErrInvalidConfig)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: sender address is required", ErrInvalidConfig)
	}

	return &PostmarkTransport{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		from:   cfg.From,
	}, nil
}

func (t *PostmarkTransport) send(ctx context.Context, msg message) error {
	resp, err := t.client.SendEmail(ctx, postmark.Email{
		From:       t.from,
		To:         msg.To,
		Subject:    msg.Subject,
		HTMLBody:   msg.HTML,
		Tag:        msg.Tag,
		TrackOpens: true,
	})
	if err != nil {
		return fmt.Errorf("postmark delivery to %q failed: %w", msg.To, err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
	}

	return nil
}
