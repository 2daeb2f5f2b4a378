// Package mail delivers transactional email through the Resend API.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/config"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

// Client wraps the Resend SDK.
type Client struct {
	resend *resend.Client
	from   string
	logger *zap.Logger
}

// NewClient builds a mailer from config.
func NewClient(cfg config.MailConfig, logger *zap.Logger) *Client {
	return &Client{
		resend: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers one message and returns the provider message ID.
func (c *Client) Send(ctx context.Context, to, subject, html string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	sent, err := c.resend.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	c.logger.Info("email sent", zap.String("to", to), zap.String("message_id", sent.Id))
	return sent.Id, nil
}
