package providers

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

// sendgridProvider implements the Provider interface for SendGrid
type sendgridProvider struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func init() {
	Register(TypeSendGrid, func() Provider {
		return &sendgridProvider{}
	})
}

// Initialize sets up the SendGrid client
func (p *sendgridProvider) Initialize(cfg Config) error {
	if err := validateSender(cfg); err != nil {
		debug.Error("invalid sendgrid configuration: %v", err)
		return err
	}

	p.client = sendgrid.NewSendClient(cfg.APIKey)
	p.fromEmail = cfg.FromEmail
	p.fromName = cfg.FromName

	debug.Info("initialized sendgrid client with from: %s <%s>", p.fromName, p.fromEmail)
	return nil
}

// Send sends an email using SendGrid
func (p *sendgridProvider) Send(ctx context.Context, msg *Message) error {
	if p.client == nil {
		return ErrProviderNotConfigured
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(p.fromName, p.fromEmail))
	message.Subject = msg.Subject
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	personalization := mail.NewPersonalization()
	for _, to := range msg.To {
		personalization.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	response, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		debug.Error("failed to send email via sendgrid: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		debug.Error("sendgrid API error: %d - %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid API error: %d - %s", response.StatusCode, response.Body)
	}

	debug.Info("successfully sent email with status code: %d", response.StatusCode)
	return nil
}
