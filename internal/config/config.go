package config

import (
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/env"
	"github.com/northwind-labs/sitecms/pkg/jwt"
)

// Config holds the application configuration
type Config struct {
	Host     string
	Port     int
	SiteName string

	Database DatabaseConfig

	JWTExpiryMinutes  int
	CORSAllowedOrigin string
	CookieSecure      bool

	AdminEmail    string
	AdminPassword string
	AdminName     string

	Email EmailConfig

	ServicesFile       string
	SpamRetentionDays  int
	VisitRetentionDays int
	RateLimitPerMinute int
	// TrustedProxies are CIDRs or addresses whose forwarding headers identify the client
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// EmailConfig selects and configures the outbound notification provider.
// An empty Provider disables notifications.
type EmailConfig struct {
	Provider    string
	APIKey      string
	Domain      string
	FromEmail   string
	FromName    string
	NotifyEmail string
}

// NewConfig creates a new Config instance with values from environment variables
func NewConfig() *Config {
	cfg := &Config{
		Host:     env.GetOrDefault("HOST", "0.0.0.0"),
		Port:     env.GetIntOrDefault("PORT", 8080),
		SiteName: env.GetOrDefault("SITE_NAME", "Northwind Labs"),
		Database: DatabaseConfig{
			Host:     env.GetOrDefault("DB_HOST", "localhost"),
			Port:     env.GetIntOrDefault("DB_PORT", 5432),
			User:     env.GetOrDefault("DB_USER", "postgres"),
			Password: env.GetOrDefault("DB_PASSWORD", ""),
			Name:     env.GetOrDefault("DB_NAME", "sitecms"),
			SSLMode:  env.GetOrDefault("DB_SSLMODE", "disable"),
		},
		JWTExpiryMinutes:  env.GetIntOrDefault("JWT_EXPIRY_MINUTES", jwt.DefaultExpiryMinutes),
		CORSAllowedOrigin: env.GetOrDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		CookieSecure:      env.GetBoolOrDefault("COOKIE_SECURE", false),
		AdminEmail:        env.GetOrDefault("ADMIN_EMAIL", ""),
		AdminPassword:     env.GetOrDefault("ADMIN_PASSWORD", ""),
		AdminName:         env.GetOrDefault("ADMIN_NAME", "Administrator"),
		Email: EmailConfig{
			Provider:    env.GetOrDefault("EMAIL_PROVIDER", ""),
			APIKey:      env.GetOrDefault("EMAIL_API_KEY", ""),
			Domain:      env.GetOrDefault("EMAIL_DOMAIN", ""),
			FromEmail:   env.GetOrDefault("EMAIL_FROM", ""),
			FromName:    env.GetOrDefault("EMAIL_FROM_NAME", "Website"),
			NotifyEmail: env.GetOrDefault("NOTIFY_EMAIL", ""),
		},
		ServicesFile:       env.GetOrDefault("SERVICES_FILE", ""),
		SpamRetentionDays:  env.GetIntOrDefault("SPAM_RETENTION_DAYS", 30),
		VisitRetentionDays: env.GetIntOrDefault("VISIT_RETENTION_DAYS", 400),
		RateLimitPerMinute: env.GetIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		TrustedProxies:     env.GetList("TRUSTED_PROXIES"),
		ShutdownTimeout:    env.GetDurationOrDefault("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if cfg.JWTExpiryMinutes <= 0 {
		debug.Warning("JWT_EXPIRY_MINUTES must be positive, using default: %d", jwt.DefaultExpiryMinutes)
		cfg.JWTExpiryMinutes = jwt.DefaultExpiryMinutes
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 10
	}

	debug.Info("Configuration loaded - Listen: %s, Database: %s:%d/%s, Email provider: %q",
		cfg.ListenAddr(), cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Email.Provider)
	return cfg
}

// ListenAddr returns the host:port the HTTP server binds to
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL returns the postgres:// form used by the migration driver
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}
