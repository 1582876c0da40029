package providers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

var (
	// ErrProviderNotConfigured is returned when the email provider is not properly configured
	ErrProviderNotConfigured = errors.New("email provider not configured")
	// ErrUnsupportedProvider is returned for an unregistered provider type
	ErrUnsupportedProvider = errors.New("unsupported email provider type")
)

// Type names a registered provider
type Type string

const (
	TypeMailgun  Type = "mailgun"
	TypeSendGrid Type = "sendgrid"
)

// Config is the provider-agnostic sender configuration
type Config struct {
	APIKey    string
	Domain    string
	FromEmail string
	FromName  string
}

// Message is a rendered email ready for delivery
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Provider defines the interface for email providers
type Provider interface {
	// Initialize sets up the provider with the given configuration
	Initialize(cfg Config) error

	// Send delivers a message
	Send(ctx context.Context, msg *Message) error
}

// Factory creates a new Provider instance
type Factory func() Provider

var (
	registryMu sync.RWMutex
	registry   = make(map[Type]Factory)
)

// Register registers a new provider factory for the given provider type
func Register(providerType Type, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	debug.Debug("registering email provider: %s", providerType)
	registry[providerType] = factory
}

// New creates and initializes a provider of the given type
func New(providerType Type, cfg Config) (Provider, error) {
	registryMu.RLock()
	factory, exists := registry[providerType]
	registryMu.RUnlock()
	if !exists {
		debug.Error("unsupported email provider type: %s", providerType)
		return nil, ErrUnsupportedProvider
	}
	p := factory()
	if err := p.Initialize(cfg); err != nil {
		return nil, err
	}
	debug.Info("initialized email provider: %s", providerType)
	return p, nil
}

// Registered lists the registered provider types
func Registered() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func validateSender(cfg Config) error {
	if cfg.APIKey == "" {
		return ErrProviderNotConfigured
	}
	if cfg.FromEmail == "" {
		return errors.New("sender email is required")
	}
	return nil
}
