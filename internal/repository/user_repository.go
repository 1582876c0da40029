package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
	"github.com/northwind-labs/sitecms/internal/models"
)

// UserRepository handles database operations for administrator accounts.
type UserRepository struct {
	db *db.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(database *db.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.ID = newID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	_, err := r.db.ExecContext(ctx, queries.CreateUser,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email '%s' already exists: %w", u.Email, ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}
	return r.getOne(ctx, queries.GetUserByID, id)
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, queries.GetUserByEmail, email)
}

func (r *UserRepository) getOne(ctx context.Context, query, key string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.MFAEnabled, &u.MFASecret,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("user %s not found: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", key, err)
	}
	return &u, nil
}

// Count returns the number of accounts.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, queries.CountUsers).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// SetMFA stores the TOTP secret and enabled flag of a user.
func (r *UserRepository) SetMFA(ctx context.Context, id string, enabled bool, secret string) error {
	result, err := r.db.ExecContext(ctx, queries.UpdateUserMFA, id, enabled, secret)
	if err != nil {
		return fmt.Errorf("failed to update MFA for user %s: %w", id, err)
	}
	return expectOneRow(result, "user", id)
}
