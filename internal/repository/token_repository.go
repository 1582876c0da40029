package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
)

// TokenRepository tracks issued session tokens so logout can revoke them.
type TokenRepository struct {
	db *db.DB
}

// NewTokenRepository creates a new instance of TokenRepository.
func NewTokenRepository(database *db.DB) *TokenRepository {
	return &TokenRepository{db: database}
}

// Store records a token issued to userID.
func (r *TokenRepository) Store(ctx context.Context, userID, token string, expiresAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, queries.StoreToken, token, userID, expiresAt); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Exists reports whether token is stored and unexpired.
func (r *TokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, queries.TokenExists, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return exists, nil
}

// Remove revokes a single token.
func (r *TokenRepository) Remove(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, queries.RemoveToken, token); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// RemoveForUser revokes every token of a user.
func (r *TokenRepository) RemoveForUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, queries.RemoveUserTokens, userID); err != nil {
		return fmt.Errorf("failed to remove tokens for user %s: %w", userID, err)
	}
	return nil
}

// PurgeExpired deletes expired tokens and returns how many were removed.
func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, queries.PurgeExpiredTokens)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	return result.RowsAffected()
}
