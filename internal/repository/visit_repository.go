package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwind-labs/sitecms/internal/db"
	"github.com/northwind-labs/sitecms/internal/db/queries"
)

// DailyVisits is the visit total of one calendar day.
type DailyVisits struct {
	Day   time.Time
	Count int
}

// VisitRepository maintains per-day, per-path page view counters.
type VisitRepository struct {
	db *db.DB
}

// NewVisitRepository creates a new instance of VisitRepository.
func NewVisitRepository(database *db.DB) *VisitRepository {
	return &VisitRepository{db: database}
}

// Record increments the counter of path for the day of at.
func (r *VisitRepository) Record(ctx context.Context, path string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, queries.RecordVisit, truncateDay(at), path); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// SumBetween totals visits on days in [from, to).
func (r *VisitRepository) SumBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, queries.SumVisitsBetween, truncateDay(from), truncateDay(to)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to sum visits: %w", err)
	}
	return n, nil
}

// DailyBetween returns per-day totals for days in [from, to) that had visits.
func (r *VisitRepository) DailyBetween(ctx context.Context, from, to time.Time) ([]DailyVisits, error) {
	rows, err := r.db.QueryContext(ctx, queries.DailyVisitsBetween, truncateDay(from), truncateDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list daily visits: %w", err)
	}
	defer rows.Close()

	var days []DailyVisits
	for rows.Next() {
		var d DailyVisits
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily visits: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// PurgeBefore deletes counters of days before cutoff.
func (r *VisitRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, queries.PurgeVisitsBefore, truncateDay(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to purge visits: %w", err)
	}
	return result.RowsAffected()
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
