package services

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

// TokenPurger removes expired session tokens
type TokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SpamPurger removes old spam enquiries
type SpamPurger interface {
	PurgeSpam(ctx context.Context, cutoff time.Time) (int64, error)
}

// VisitPurger removes old visit counters
type VisitPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Maintenance schedules
const (
	TokenPurgeSchedule   = "@hourly"
	ContentPurgeSchedule = "30 3 * * *"
)

// MaintenanceService runs the periodic cleanup jobs.
type MaintenanceService struct {
	tokens         TokenPurger
	spam           SpamPurger
	visits         VisitPurger
	spamRetention  time.Duration
	visitRetention time.Duration
	now            func() time.Time

	mu     sync.Mutex
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewMaintenanceService creates a new MaintenanceService. Retention is given in days.
func NewMaintenanceService(tokens TokenPurger, spam SpamPurger, visits VisitPurger, spamRetentionDays, visitRetentionDays int) *MaintenanceService {
	return &MaintenanceService{
		tokens:         tokens,
		spam:           spam,
		visits:         visits,
		spamRetention:  time.Duration(spamRetentionDays) * 24 * time.Hour,
		visitRetention: time.Duration(visitRetentionDays) * 24 * time.Hour,
		now:            time.Now,
	}
}

// Start schedules the jobs and runs a token purge immediately.
func (s *MaintenanceService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(TokenPurgeSchedule, func() { s.PurgeTokens(s.ctx) }); err != nil {
		return err
	}
	if _, err := c.AddFunc(ContentPurgeSchedule, func() { s.PurgeContent(s.ctx) }); err != nil {
		return err
	}
	s.cron = c
	c.Start()
	debug.Info("Maintenance service started (tokens %s, content %s)", TokenPurgeSchedule, ContentPurgeSchedule)

	go s.PurgeTokens(s.ctx)
	return nil
}

// Stop halts the scheduler and waits for running jobs.
func (s *MaintenanceService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return
	}
	s.cancel()
	<-s.cron.Stop().Done()
	s.cron = nil
	debug.Info("Maintenance service stopped")
}

// PurgeTokens deletes expired session tokens.
func (s *MaintenanceService) PurgeTokens(ctx context.Context) {
	n, err := s.tokens.PurgeExpired(ctx)
	if err != nil {
		debug.Error("Failed to purge expired tokens: %v", err)
		return
	}
	if n > 0 {
		debug.Info("Purged %d expired tokens", n)
	}
}

// PurgeContent deletes old spam enquiries and visit counters.
func (s *MaintenanceService) PurgeContent(ctx context.Context) {
	now := s.now().UTC()

	if s.spamRetention > 0 {
		n, err := s.spam.PurgeSpam(ctx, now.Add(-s.spamRetention))
		if err != nil {
			debug.Error("Failed to purge spam enquiries: %v", err)
		} else if n > 0 {
			debug.Info("Purged %d spam enquiries", n)
		}
	}

	if s.visitRetention > 0 {
		n, err := s.visits.PurgeBefore(ctx, now.Add(-s.visitRetention))
		if err != nil {
			debug.Error("Failed to purge visit counters: %v", err)
		} else if n > 0 {
			debug.Info("Purged %d visit counters", n)
		}
	}
}
