package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

// mailgunProvider implements the Provider interface for Mailgun
type mailgunProvider struct {
	mg   *mailgun.MailgunImpl
	from string
}

func init() {
	Register(TypeMailgun, func() Provider {
		return &mailgunProvider{}
	})
}

// Initialize sets up the Mailgun client
func (p *mailgunProvider) Initialize(cfg Config) error {
	if err := validateSender(cfg); err != nil {
		debug.Error("invalid mailgun configuration: %v", err)
		return err
	}
	if cfg.Domain == "" {
		debug.Error("mailgun domain not provided")
		return errors.New("mailgun domain is required")
	}

	p.mg = mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	p.from = formatFrom(cfg)
	debug.Info("initialized mailgun client for domain: %s with sender: %s", cfg.Domain, p.from)
	return nil
}

// Send sends an email using Mailgun
func (p *mailgunProvider) Send(ctx context.Context, msg *Message) error {
	if p.mg == nil {
		return ErrProviderNotConfigured
	}

	message := p.mg.NewMessage(p.from, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}
	if msg.ReplyTo != "" {
		message.SetReplyTo(msg.ReplyTo)
	}

	_, id, err := p.mg.Send(ctx, message)
	if err != nil {
		debug.Error("failed to send email via mailgun: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	debug.Info("successfully sent email with ID: %s", id)
	return nil
}

func formatFrom(cfg Config) string {
	if cfg.FromName == "" {
		return cfg.FromEmail
	}
	return fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
}
