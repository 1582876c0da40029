package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
)

// DashboardWindow is the length of the reporting period compared against the one before it
const DashboardWindow = 30 * 24 * time.Hour

// ChartPalette is the greyscale wedge palette shared by the dashboard and the pie chart
var ChartPalette = []string{"#000000", "#374151", "#6b7280", "#9ca3af", "#d1d5db"}

// VisitCounter reads page visit counters
type VisitCounter interface {
	SumBetween(ctx context.Context, from, to time.Time) (int, error)
	DailyBetween(ctx context.Context, from, to time.Time) ([]repository.DailyVisits, error)
}

// EnquiryCounter reads enquiry aggregates
type EnquiryCounter interface {
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
	CountByService(ctx context.Context, from, to time.Time) ([]repository.ServiceCount, error)
}

// ProjectCounter reads project aggregates
type ProjectCounter interface {
	Count(ctx context.Context) (int, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ServiceLabeler turns a service slug into a display label
type ServiceLabeler interface {
	Label(slug string) string
}

// DashboardService assembles the admin dashboard statistics.
type DashboardService struct {
	visits    VisitCounter
	enquiries EnquiryCounter
	projects  ProjectCounter
	labels    ServiceLabeler
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService. labels may be nil.
func NewDashboardService(visits VisitCounter, enquiries EnquiryCounter, projects ProjectCounter, labels ServiceLabeler) *DashboardService {
	return &DashboardService{
		visits:    visits,
		enquiries: enquiries,
		projects:  projects,
		labels:    labels,
		now:       time.Now,
	}
}

// Stats computes the dashboard for the window ending today (UTC, inclusive).
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	start := end.Add(-DashboardWindow)
	prevStart := start.Add(-DashboardWindow)

	var (
		visitors, prevVisitors   int
		enquiries, prevEnquiries int
		projects                 int
		newProjects, prevNew     int
		daily                    []repository.DailyVisits
		byService                []repository.ServiceCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { visitors, err = s.visits.SumBetween(gctx, start, end); return })
	g.Go(func() (err error) { prevVisitors, err = s.visits.SumBetween(gctx, prevStart, start); return })
	g.Go(func() (err error) { daily, err = s.visits.DailyBetween(gctx, start, end); return })
	g.Go(func() (err error) { enquiries, err = s.enquiries.CountBetween(gctx, start, end); return })
	g.Go(func() (err error) { prevEnquiries, err = s.enquiries.CountBetween(gctx, prevStart, start); return })
	g.Go(func() (err error) { byService, err = s.enquiries.CountByService(gctx, start, end); return })
	g.Go(func() (err error) { projects, err = s.projects.Count(gctx); return })
	g.Go(func() (err error) { newProjects, err = s.projects.CountCreatedBetween(gctx, start, end); return })
	g.Go(func() (err error) { prevNew, err = s.projects.CountCreatedBetween(gctx, prevStart, start); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard statistics: %w", err)
	}

	rate := conversionRate(enquiries, visitors)
	prevRate := conversionRate(prevEnquiries, prevVisitors)

	return &models.DashboardStats{
		Visitors:       models.StatValue{Total: visitors, Change: FormatChange(float64(prevVisitors), float64(visitors))},
		Enquiries:      models.StatValue{Total: enquiries, Change: FormatChange(float64(prevEnquiries), float64(enquiries))},
		Projects:       models.StatValue{Total: projects, Change: FormatChange(float64(prevNew), float64(newProjects))},
		ConversionRate: models.RateValue{Rate: rate, Change: FormatChange(prevRate, rate)},
		VisitorData:    fillDays(daily, start, end),
		EnquiryTypes:   s.enquiryTypes(byService),
	}, nil
}

// FormatChange renders the relative change from prev to cur as "+N%" or "-N%".
// Growth from zero counts as +100%.
func FormatChange(prev, cur float64) string {
	if prev == 0 {
		if cur > 0 {
			return "+100%"
		}
		return "+0%"
	}
	pct := math.Round((cur - prev) / prev * 100)
	if pct < 0 {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("+%.0f%%", pct)
}

func conversionRate(enquiries, visitors int) float64 {
	if visitors == 0 {
		return 0
	}
	return math.Round(float64(enquiries)/float64(visitors)*1000) / 10
}

func fillDays(daily []repository.DailyVisits, start, end time.Time) []models.VisitorPoint {
	counts := make(map[string]int, len(daily))
	for _, d := range daily {
		counts[d.Day.UTC().Format("2006-01-02")] += d.Count
	}

	points := make([]models.VisitorPoint, 0, int(end.Sub(start).Hours()/24))
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		points = append(points, models.VisitorPoint{Date: key, Count: counts[key]})
	}
	return points
}

// enquiryTypes turns per-service counts into percentage shares. Services beyond the
// palette size are folded into "Other".
func (s *DashboardService) enquiryTypes(counts []repository.ServiceCount) []models.EnquiryType {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	types := []models.EnquiryType{}
	if total == 0 {
		return types
	}

	if len(counts) > len(ChartPalette) {
		keep := len(ChartPalette) - 1
		rest := 0
		for _, c := range counts[keep:] {
			rest += c.Count
		}
		counts = append(append([]repository.ServiceCount{}, counts[:keep]...), repository.ServiceCount{Service: "other", Count: rest})
	}

	for i, c := range counts {
		types = append(types, models.EnquiryType{
			Label: s.label(c.Service),
			Value: math.Round(float64(c.Count)/float64(total)*1000) / 10,
			Color: ChartPalette[i%len(ChartPalette)],
		})
	}
	return types
}

func (s *DashboardService) label(slug string) string {
	if slug == "other" {
		return "Other"
	}
	if s.labels != nil {
		if l := s.labels.Label(slug); l != "" {
			return l
		}
	}
	return slug
}
