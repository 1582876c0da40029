package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
	"github.com/northwind-labs/sitecms/internal/models"
)

// ContentRepository stores the singleton page records (about, contact) as JSONB documents.
type ContentRepository struct {
	db *db.DB
}

// NewContentRepository creates a new instance of ContentRepository.
func NewContentRepository(database *db.DB) *ContentRepository {
	return &ContentRepository{db: database}
}

// GetAbout returns the about page content.
func (r *ContentRepository) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	var about models.AboutContent
	if err := r.get(ctx, models.ContentKeyAbout, &about); err != nil {
		return nil, err
	}
	return &about, nil
}

// SaveAbout replaces the about page content.
func (r *ContentRepository) SaveAbout(ctx context.Context, about *models.AboutContent) error {
	return r.save(ctx, models.ContentKeyAbout, about)
}

// GetContact returns the contact page content.
func (r *ContentRepository) GetContact(ctx context.Context) (*models.ContactInfo, error) {
	var contact models.ContactInfo
	if err := r.get(ctx, models.ContentKeyContact, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// SaveContact replaces the contact page content.
func (r *ContentRepository) SaveContact(ctx context.Context, contact *models.ContactInfo) error {
	return r.save(ctx, models.ContentKeyContact, contact)
}

func (r *ContentRepository) get(ctx context.Context, key string, dest interface{}) error {
	var raw []byte
	if err := r.db.QueryRowContext(ctx, queries.GetContent, key).Scan(&raw); err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%s content not found: %w", key, ErrNotFound)
		}
		return fmt.Errorf("failed to get %s content: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s content: %w", key, err)
	}
	return nil
}

func (r *ContentRepository) save(ctx context.Context, key string, src interface{}) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to encode %s content: %w", key, err)
	}
	if _, err := r.db.ExecContext(ctx, queries.UpsertContent, key, raw); err != nil {
		return fmt.Errorf("failed to save %s content: %w", key, err)
	}
	return nil
}
