package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/northwind-labs/sitecms/internal/config"
	"github.com/northwind-labs/sitecms/internal/email/providers"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

const enquiryText = `New enquiry from {{.Name}} <{{.Email}}>
Service: {{if .Service}}{{.Service}}{{else}}not specified{{end}}
Subject: {{.Subject}}

{{.Message}}
`

const enquiryHTML = `<h2>New enquiry from {{.Name}}</h2>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a><br>
<strong>Service:</strong> {{if .Service}}{{.Service}}{{else}}not specified{{end}}<br>
<strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>
`

var (
	enquiryTextTmpl = texttemplate.Must(texttemplate.New("enquiry_text").Parse(enquiryText))
	enquiryHTMLTmpl = htmltemplate.Must(htmltemplate.New("enquiry_html").Parse(enquiryHTML))
)

// Notifier tells site staff about new enquiries.
type Notifier struct {
	provider providers.Provider
	to       []string
}

// NewNotifier builds a Notifier from configuration. It returns (nil, nil) when no
// provider or recipient is configured; a nil *Notifier is a valid no-op.
func NewNotifier(cfg config.EmailConfig) (*Notifier, error) {
	if cfg.Provider == "" || cfg.NotifyEmail == "" {
		debug.Info("Email notifications disabled (provider=%q, recipient=%q)", cfg.Provider, cfg.NotifyEmail)
		return nil, nil
	}

	p, err := providers.New(providers.Type(strings.ToLower(cfg.Provider)), providers.Config{
		APIKey:    cfg.APIKey,
		Domain:    cfg.Domain,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email provider %s: %w", cfg.Provider, err)
	}
	return NewNotifierWithProvider(p, cfg.NotifyEmail), nil
}

// NewNotifierWithProvider wires an already initialized provider.
func NewNotifierWithProvider(p providers.Provider, to ...string) *Notifier {
	return &Notifier{provider: p, to: to}
}

// NotifyEnquiry sends the new-enquiry email. Replies go to the enquirer.
func (n *Notifier) NotifyEnquiry(ctx context.Context, e *models.Enquiry) error {
	if n == nil || n.provider == nil {
		debug.Debug("Skipping enquiry notification for %s: notifications disabled", e.ID)
		return nil
	}

	msg, err := RenderEnquiry(e)
	if err != nil {
		return err
	}
	msg.To = n.to
	return n.provider.Send(ctx, msg)
}

// RenderEnquiry renders the notification for e without recipients.
func RenderEnquiry(e *models.Enquiry) (*providers.Message, error) {
	var text, html bytes.Buffer
	if err := enquiryTextTmpl.Execute(&text, e); err != nil {
		return nil, fmt.Errorf("failed to execute text template: %w", err)
	}
	if err := enquiryHTMLTmpl.Execute(&html, e); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return &providers.Message{
		ReplyTo: e.Email,
		Subject: "[Enquiry] " + e.Subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
