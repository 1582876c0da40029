package services

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwind-labs/sitecms/internal/models"
)

func newAdmin(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, u.SetPassword("s3cret-pass"))
	return u
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "admin@example.com", password: "s3cret-pass"},
		{name: "wrong password", email: "admin@example.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "s3cret-pass", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := newFakeTokens()
			svc := NewAuthService(newFakeUsers(newAdmin(t)), tokens, 60, "Site")

			resp, err := svc.Login(context.Background(), tt.email, tt.password, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tokens.tokens)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", resp.User.ID)
			assert.NotEmpty(t, resp.Token)

			session, err := svc.Session(context.Background(), resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin@example.com", session.User.Email)

			require.NoError(t, svc.Logout(context.Background(), resp.Token))
			_, err = svc.Authenticate(context.Background(), resp.Token)
			assert.ErrorIs(t, err, ErrSessionRevoked)
		})
	}
}

func TestAuthService_MFAFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := newFakeUsers(newAdmin(t))
	tokens := newFakeTokens()
	svc := NewAuthService(users, tokens, 60, "Site")
	ctx := context.Background()

	setup, err := svc.BeginMFASetup(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, setup.URL, "otpauth://totp/")

	assert.ErrorIs(t, svc.EnableMFA(ctx, "u1", "000000"), ErrInvalidCredentials)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.EnableMFA(ctx, "u1", code))

	_, err = svc.Login(ctx, "admin@example.com", "s3cret-pass", "")
	assert.ErrorIs(t, err, ErrMFARequired)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	resp, err := svc.Login(ctx, "admin@example.com", "s3cret-pass", code)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DisableMFA(ctx, "u1", "wrong"), ErrInvalidCredentials)
	require.NoError(t, svc.DisableMFA(ctx, "u1", "s3cret-pass"))
	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	users := newFakeUsers()
	svc := NewAuthService(users, newFakeTokens(), 60, "Site")
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "pw", "Root"))
	u, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.True(t, u.CheckPassword("pw"))

	// second call is a no-op once an account exists
	require.NoError(t, svc.EnsureAdmin(ctx, "other@example.com", "pw", "Other"))
	count, _ := users.Count(ctx)
	assert.Equal(t, 1, count)
}
