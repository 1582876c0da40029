package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/jwt"
)

var (
	// ErrInvalidCredentials covers unknown emails, bad passwords and bad codes alike
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMFARequired is returned when a valid password is given without the second factor
	ErrMFARequired = errors.New("mfa code required")
	// ErrSessionRevoked is returned for a well-formed token that was logged out
	ErrSessionRevoked = errors.New("session revoked")
)

// UserStore reads and updates administrator accounts
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	SetMFA(ctx context.Context, id string, enabled bool, secret string) error
}

// TokenStore tracks issued tokens
type TokenStore interface {
	Store(ctx context.Context, userID, token string, expiresAt time.Time) error
	Exists(ctx context.Context, token string) (bool, error)
	Remove(ctx context.Context, token string) error
	RemoveForUser(ctx context.Context, userID string) error
}

// AuthService authenticates administrators and manages their sessions.
type AuthService struct {
	users         UserStore
	tokens        TokenStore
	expiryMinutes int
	issuer        string
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, expiryMinutes int, issuer string) *AuthService {
	return &AuthService{users: users, tokens: tokens, expiryMinutes: expiryMinutes, issuer: issuer}
}

// ExpiryMinutes returns the lifetime of issued tokens
func (s *AuthService) ExpiryMinutes() int {
	return s.expiryMinutes
}

// Login verifies credentials, and the TOTP code when MFA is enabled, then issues a token.
func (s *AuthService) Login(ctx context.Context, email, password, code string) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			debug.Warning("Login attempt for unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		debug.Warning("Failed login for %s: bad password", email)
		return nil, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if code == "" {
			return nil, ErrMFARequired
		}
		if !totp.Validate(code, user.MFASecret) {
			debug.Warning("Failed login for %s: bad MFA code", email)
			return nil, ErrInvalidCredentials
		}
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role, s.expiryMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	expiresAt := time.Now().Add(time.Duration(s.expiryMinutes) * time.Minute)
	if err := s.tokens.Store(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}

	debug.Info("User %s logged in", user.Email)
	return &models.AuthResponse{User: *user, Token: token}, nil
}

// Logout revokes a token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Remove(ctx, token)
}

// Authenticate validates a token's signature, expiry and revocation state and returns its claims.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken(token)
	if err != nil {
		return nil, err
	}
	ok, err := s.tokens.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Session returns the user behind a valid token.
func (s *AuthService) Session(ctx context.Context, token string) (*models.AuthResponse, error) {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: *user, Token: token}, nil
}

// EnsureAdmin creates the initial administrator when no account exists yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if email == "" || password == "" {
		debug.Warning("No administrator exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
		return nil
	}

	u := &models.User{Name: name, Email: email, Role: models.RoleAdmin}
	if err := u.SetPassword(password); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	debug.Info("Created initial administrator %s", email)
	return nil
}

// MFASetup holds a freshly generated, not yet enabled TOTP secret.
type MFASetup struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// BeginMFASetup generates a TOTP secret for the user and stores it disabled.
func (s *AuthService) BeginMFASetup(ctx context.Context, userID string) (*MFASetup, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	key, err := totp.Generate(totp.GenerateOpts{Issuer: s.issuer, AccountName: user.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}
	if err := s.users.SetMFA(ctx, user.ID, false, key.Secret()); err != nil {
		return nil, err
	}
	return &MFASetup{Secret: key.Secret(), URL: key.URL()}, nil
}

// EnableMFA turns MFA on once the user proves possession of the pending secret.
func (s *AuthService) EnableMFA(ctx context.Context, userID, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFASecret == "" || !totp.Validate(code, user.MFASecret) {
		return ErrInvalidCredentials
	}
	return s.users.SetMFA(ctx, user.ID, true, user.MFASecret)
}

// DisableMFA turns MFA off after re-checking the password and revokes every session of the user.
func (s *AuthService) DisableMFA(ctx context.Context, userID, password string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(password) {
		return ErrInvalidCredentials
	}
	if err := s.users.SetMFA(ctx, user.ID, false, ""); err != nil {
		return err
	}
	return s.tokens.RemoveForUser(ctx, user.ID)
}
