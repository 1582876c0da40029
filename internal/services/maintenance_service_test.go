package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	spamCutoff  time.Time
	visitCutoff time.Time
	err         error
}

func (f *fakePurger) PurgeSpam(_ context.Context, cutoff time.Time) (int64, error) {
	f.spamCutoff = cutoff
	return 2, f.err
}

func (f *fakePurger) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.visitCutoff = cutoff
	return 5, f.err
}

func TestMaintenanceService_PurgeContent(t *testing.T) {
	now := time.Date(2024, 6, 30, 3, 30, 0, 0, time.UTC)
	purger := &fakePurger{}
	svc := NewMaintenanceService(newFakeTokens(), purger, purger, 30, 400)
	svc.now = func() time.Time { return now }

	svc.PurgeContent(context.Background())

	assert.Equal(t, now.AddDate(0, 0, -30), purger.spamCutoff)
	assert.Equal(t, now.AddDate(0, 0, -400), purger.visitCutoff)
}

func TestMaintenanceService_ZeroRetentionSkips(t *testing.T) {
	purger := &fakePurger{}
	svc := NewMaintenanceService(newFakeTokens(), purger, purger, 0, 0)

	svc.PurgeContent(context.Background())

	assert.True(t, purger.spamCutoff.IsZero())
	assert.True(t, purger.visitCutoff.IsZero())
}

func TestMaintenanceService_ErrorsAreLogged(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	svc := NewMaintenanceService(newFakeTokens(), purger, purger, 30, 400)

	assert.NotPanics(t, func() { svc.PurgeContent(context.Background()) })
}

func TestMaintenanceService_StartStop(t *testing.T) {
	tokens := newFakeTokens()
	svc := NewMaintenanceService(tokens, &fakePurger{}, &fakePurger{}, 30, 400)

	require.NoError(t, svc.Start(context.Background()))
	assert.Eventually(t, func() bool {
		tokens.mu.Lock()
		defer tokens.mu.Unlock()
		return tokens.purged == 1
	}, time.Second, 10*time.Millisecond)

	svc.Stop()
	svc.Stop()
}
