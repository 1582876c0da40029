package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
	"github.com/northwind-labs/sitecms/internal/models"
)

// CaseStudyRepository handles database operations for case studies.
type CaseStudyRepository struct {
	db *db.DB
}

// NewCaseStudyRepository creates a new instance of CaseStudyRepository.
func NewCaseStudyRepository(database *db.DB) *CaseStudyRepository {
	return &CaseStudyRepository{db: database}
}

// Create inserts a new case study, assigning its id and timestamps.
func (r *CaseStudyRepository) Create(ctx context.Context, c *models.CaseStudy) error {
	c.ID = newID()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	_, err := r.db.ExecContext(ctx, queries.CreateCaseStudy,
		c.ID, c.Title, c.Client, c.Industry, c.Overview, c.Challenge, c.Solution, c.Results,
		c.Testimonial, c.TestimonialAuthor, c.TestimonialRole, c.Images, c.Technologies,
		c.Timeline, c.TeamSize, c.Metrics, c.Featured, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("case study with title '%s' already exists: %w", c.Title, ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to create case study: %w", err)
	}
	return nil
}

// GetByID retrieves a case study by its ID.
func (r *CaseStudyRepository) GetByID(ctx context.Context, id string) (*models.CaseStudy, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}
	c, err := scanCaseStudy(r.db.QueryRowContext(ctx, queries.GetCaseStudyByID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("case study with ID %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get case study by ID %s: %w", id, err)
	}
	return c, nil
}

// List retrieves all case studies in creation order.
func (r *CaseStudyRepository) List(ctx context.Context) ([]models.CaseStudy, error) {
	return r.list(ctx, queries.ListCaseStudies)
}

// ListByStatus retrieves the case studies with the given status.
func (r *CaseStudyRepository) ListByStatus(ctx context.Context, status models.CaseStudyStatus) ([]models.CaseStudy, error) {
	return r.list(ctx, queries.ListCaseStudiesByStatus, status)
}

func (r *CaseStudyRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.CaseStudy, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list case studies: %w", err)
	}
	defer rows.Close()

	studies := []models.CaseStudy{}
	for rows.Next() {
		c, err := scanCaseStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case study row: %w", err)
		}
		studies = append(studies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating case study rows: %w", err)
	}
	return studies, nil
}

// Update persists every mutable field of c.
func (r *CaseStudyRepository) Update(ctx context.Context, c *models.CaseStudy) error {
	if _, err := ParseID(c.ID); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, queries.UpdateCaseStudy,
		c.ID, c.Title, c.Client, c.Industry, c.Overview, c.Challenge, c.Solution, c.Results,
		c.Testimonial, c.TestimonialAuthor, c.TestimonialRole, c.Images, c.Technologies,
		c.Timeline, c.TeamSize, c.Metrics, c.Featured, c.Status, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("case study with title '%s' already exists: %w", c.Title, ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to update case study %s: %w", c.ID, err)
	}
	return expectOneRow(result, "case study", c.ID)
}

// Delete removes a case study by its ID.
func (r *CaseStudyRepository) Delete(ctx context.Context, id string) error {
	if _, err := ParseID(id); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, queries.DeleteCaseStudy, id)
	if err != nil {
		return fmt.Errorf("failed to delete case study %s: %w", id, err)
	}
	return expectOneRow(result, "case study", id)
}

func scanCaseStudy(row rowScanner) (*models.CaseStudy, error) {
	var c models.CaseStudy
	err := row.Scan(
		&c.ID, &c.Title, &c.Client, &c.Industry, &c.Overview, &c.Challenge, &c.Solution, &c.Results,
		&c.Testimonial, &c.TestimonialAuthor, &c.TestimonialRole, &c.Images, &c.Technologies,
		&c.Timeline, &c.TeamSize, &c.Metrics, &c.Featured, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
