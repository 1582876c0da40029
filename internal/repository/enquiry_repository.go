package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

// EnquiryRepository handles database operations for enquiries.
type EnquiryRepository struct {
	db *db.DB
}

// NewEnquiryRepository creates a new instance of EnquiryRepository.
func NewEnquiryRepository(database *db.DB) *EnquiryRepository {
	return &EnquiryRepository{db: database}
}

// ServiceCount is the number of enquiries naming one service.
type ServiceCount struct {
	Service string
	Count   int
}

// Create inserts a new enquiry, assigning its id and timestamps.
func (r *EnquiryRepository) Create(ctx context.Context, e *models.Enquiry) error {
	e.ID = newID()
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	if e.Status == "" {
		e.Status = models.EnquiryStatusNew
	}
	_, err := r.db.ExecContext(ctx, queries.CreateEnquiry,
		e.ID, e.Name, e.Email, e.Subject, e.Message, e.Service, e.Status, e.Notes,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}
	return nil
}

// GetByID retrieves an enquiry by its ID.
func (r *EnquiryRepository) GetByID(ctx context.Context, id string) (*models.Enquiry, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}
	e, err := scanEnquiry(r.db.QueryRowContext(ctx, queries.GetEnquiryByID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("enquiry with ID %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get enquiry by ID %s: %w", id, err)
	}
	return e, nil
}

// List retrieves all enquiries, newest first.
func (r *EnquiryRepository) List(ctx context.Context) ([]models.Enquiry, error) {
	rows, err := r.db.QueryContext(ctx, queries.ListEnquiries)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := []models.Enquiry{}
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry row: %w", err)
		}
		enquiries = append(enquiries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enquiry rows: %w", err)
	}
	return enquiries, nil
}

// UpdateStatus sets the triage status and returns the updated enquiry.
func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) (*models.Enquiry, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}
	e, err := scanEnquiry(r.db.QueryRowContext(ctx, queries.UpdateEnquiryStatus, id, status))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("enquiry with ID %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update status of enquiry %s: %w", id, err)
	}
	return e, nil
}

// UpdateNotes replaces the internal notes and returns the updated enquiry.
func (r *EnquiryRepository) UpdateNotes(ctx context.Context, id, notes string) (*models.Enquiry, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}
	e, err := scanEnquiry(r.db.QueryRowContext(ctx, queries.UpdateEnquiryNotes, id, notes))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("enquiry with ID %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update notes of enquiry %s: %w", id, err)
	}
	return e, nil
}

// Delete removes an enquiry by its ID.
func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	if _, err := ParseID(id); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, queries.DeleteEnquiry, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry %s: %w", id, err)
	}
	return expectOneRow(result, "enquiry", id)
}

// CountBetween counts non-spam enquiries received in [from, to).
func (r *EnquiryRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, queries.CountEnquiriesBetween, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}
	return n, nil
}

// CountByService groups non-spam enquiries in [from, to) by service, largest first.
func (r *EnquiryRepository) CountByService(ctx context.Context, from, to time.Time) ([]ServiceCount, error) {
	rows, err := r.db.QueryContext(ctx, queries.CountEnquiriesByService, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count enquiries by service: %w", err)
	}
	defer rows.Close()

	var counts []ServiceCount
	for rows.Next() {
		var sc ServiceCount
		if err := rows.Scan(&sc.Service, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan service count: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// PurgeSpam deletes spam enquiries created before cutoff.
func (r *EnquiryRepository) PurgeSpam(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, queries.PurgeSpamEnquiries, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge spam enquiries: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	debug.Debug("Purged %d spam enquiries older than %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}

func scanEnquiry(row rowScanner) (*models.Enquiry, error) {
	var e models.Enquiry
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.Subject, &e.Message, &e.Service, &e.Status, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
