package services

import (
	"context"
	"sync"
	"time"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
)

type fakeEnquiryRepo struct {
	created []*models.Enquiry
	err     error
}

func (f *fakeEnquiryRepo) Create(_ context.Context, e *models.Enquiry) error {
	if f.err != nil {
		return f.err
	}
	e.ID = "e1"
	f.created = append(f.created, e)
	return nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) NotifyEnquiry(context.Context, *models.Enquiry) error {
	f.calls++
	return f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(eventType, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType+":"+id)
}

type fakeCatalogue map[string]string

func (f fakeCatalogue) Has(slug string) bool {
	_, ok := f[slug]
	return ok
}

func (f fakeCatalogue) Label(slug string) string { return f[slug] }

type fakeCounters struct {
	sums      map[time.Time]int
	daily     []repository.DailyVisits
	enquiries map[time.Time]int
	byService []repository.ServiceCount
	projects  int
	created   map[time.Time]int
	err       error
}

func (f *fakeCounters) SumBetween(_ context.Context, from, _ time.Time) (int, error) {
	return f.sums[from], f.err
}

func (f *fakeCounters) DailyBetween(context.Context, time.Time, time.Time) ([]repository.DailyVisits, error) {
	return f.daily, f.err
}

func (f *fakeCounters) CountBetween(_ context.Context, from, _ time.Time) (int, error) {
	return f.enquiries[from], f.err
}

func (f *fakeCounters) CountByService(context.Context, time.Time, time.Time) ([]repository.ServiceCount, error) {
	return f.byService, f.err
}

func (f *fakeCounters) Count(context.Context) (int, error) {
	return f.projects, f.err
}

func (f *fakeCounters) CountCreatedBetween(_ context.Context, from, _ time.Time) (int, error) {
	return f.created[from], f.err
}

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	count int
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	f.count = len(users)
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = "new-user"
	f.byID[u.ID] = u
	f.count++
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Count(context.Context) (int, error) { return f.count, nil }

func (f *fakeUsers) SetMFA(_ context.Context, id string, enabled bool, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.MFAEnabled = enabled
	u.MFASecret = secret
	return nil
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]string
	purged int64
}

func newFakeTokens() *fakeTokens { return &fakeTokens{tokens: map[string]string{}} }

func (f *fakeTokens) Store(_ context.Context, userID, token string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokens) Exists(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeTokens) Remove(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokens) RemoveForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tok, uid := range f.tokens {
		if uid == userID {
			delete(f.tokens, tok)
		}
	}
	return nil
}

func (f *fakeTokens) PurgeExpired(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged++
	return 0, nil
}
