package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
	"github.com/northwind-labs/sitecms/internal/models"
)

// ProjectRepository handles database operations for projects.
type ProjectRepository struct {
	db *db.DB
}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository(database *db.DB) *ProjectRepository {
	return &ProjectRepository{db: database}
}

// Create inserts a new project, assigning its id and timestamps.
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	p.ID = newID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	_, err := r.db.ExecContext(ctx, queries.CreateProject,
		p.ID, p.Title, p.Category, p.Description, p.DetailedDescription, p.Image,
		p.Images, p.Technologies, p.URL, p.Client, p.Status, p.Featured,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project with title '%s' already exists: %w", p.Title, ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}
	p, err := scanProject(r.db.QueryRowContext(ctx, queries.GetProjectByID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("project with ID %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}
	return p, nil
}

// List retrieves all projects in creation order.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, queries.ListProjects)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Update persists every mutable field of p.
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	if _, err := ParseID(p.ID); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, queries.UpdateProject,
		p.ID, p.Title, p.Category, p.Description, p.DetailedDescription, p.Image,
		p.Images, p.Technologies, p.URL, p.Client, p.Status, p.Featured, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project with title '%s' already exists: %w", p.Title, ErrDuplicateRecord)
		}
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	return expectOneRow(result, "project", p.ID)
}

// Delete removes a project by its ID.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := ParseID(id); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, queries.DeleteProject, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return expectOneRow(result, "project", id)
}

// Count returns the total number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, queries.CountProjects).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// CountCreatedBetween returns the number of projects created in [from, to).
func (r *ProjectRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, queries.CountProjectsCreatedBetween, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.DetailedDescription, &p.Image,
		&p.Images, &p.Technologies, &p.URL, &p.Client, &p.Status, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
