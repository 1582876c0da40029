package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")

	tests := []struct {
		name          string
		role          string
		expiryMinutes int
		maxExpiry     time.Duration
	}{
		{name: "admin with explicit expiry", role: "admin", expiryMinutes: 60, maxExpiry: 61 * time.Minute},
		{name: "editor with default expiry", role: "editor", expiryMinutes: 0, maxExpiry: 7*24*time.Hour + time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New().String()
			token, err := GenerateToken(userID, "admin@example.com", tt.role, tt.expiryMinutes)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
				return []byte("test-secret-key"), nil
			})
			require.NoError(t, err)
			claims, ok := parsed.Claims.(jwt.MapClaims)
			require.True(t, ok)

			assert.Equal(t, userID, claims["user_id"])
			assert.Equal(t, tt.role, claims["role"])
			assert.Equal(t, "admin@example.com", claims["email"])

			exp := time.Unix(int64(claims["exp"].(float64)), 0)
			assert.True(t, exp.After(time.Now()))
			assert.True(t, exp.Before(time.Now().Add(tt.maxExpiry)))
		})
	}
}

func TestParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")

	userID := uuid.New().String()
	validToken, err := GenerateToken(userID, "a@example.com", "admin", 60)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:         userID,
		Role:           "admin",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	wrongSecret := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:         userID,
		Role:           "admin",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})
	wrongSecretToken, err := wrongSecret.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	tests := []struct {
		name         string
		token        string
		expectedID   string
		expectedRole string
		expectError  bool
	}{
		{name: "valid token", token: validToken, expectedID: userID, expectedRole: "admin"},
		{name: "expired token", token: expiredToken, expectError: true},
		{name: "malformed token", token: "invalid.token.format", expectError: true},
		{name: "empty token", token: "", expectError: true},
		{name: "wrong secret", token: wrongSecretToken, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseToken(tt.token)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, claims.UserID)
			assert.Equal(t, tt.expectedRole, claims.Role)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := WithToken(WithRole(WithUserID(context.Background(), "u1"), "admin"), "tok")

	id, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	role, ok := GetRole(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", role)

	token, ok := GetToken(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	_, ok = GetUserID(context.Background())
	assert.False(t, ok)
}

func TestGenerateSecureToken(t *testing.T) {
	a := GenerateSecureToken()
	b := GenerateSecureToken()
	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}
