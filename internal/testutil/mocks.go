package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
)

func checkID(id string) error {
	_, err := repository.ParseID(id)
	return err
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
}

// MockProjectStore is an in-memory project store that keeps insertion order
type MockProjectStore struct {
	mu       sync.Mutex
	Projects []models.Project
	Err      error
}

// NewMockProjectStore creates a store seeded with projects; missing ids are generated
func NewMockProjectStore(projects ...models.Project) *MockProjectStore {
	m := &MockProjectStore{}
	for _, p := range projects {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		m.Projects = append(m.Projects, p)
	}
	return m
}

func (m *MockProjectStore) Create(ctx context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Projects {
		if existing.Title == p.Title {
			return repository.ErrDuplicateRecord
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = FixedTime, FixedTime
	m.Projects = append(m.Projects, *p)
	return nil
}

func (m *MockProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Projects {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, notFound("project", id)
}

func (m *MockProjectStore) List(ctx context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Project(nil), m.Projects...), nil
}

func (m *MockProjectStore) Update(ctx context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Projects {
		if m.Projects[i].ID == p.ID {
			m.Projects[i] = *p
			return nil
		}
	}
	return notFound("project", p.ID)
}

func (m *MockProjectStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return err
	}
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Projects {
		if m.Projects[i].ID == id {
			m.Projects = append(m.Projects[:i], m.Projects[i+1:]...)
			return nil
		}
	}
	return notFound("project", id)
}

// MockCaseStudyStore is an in-memory case study store
type MockCaseStudyStore struct {
	mu      sync.Mutex
	Studies []models.CaseStudy
	Err     error
}

// NewMockCaseStudyStore creates a store seeded with studies
func NewMockCaseStudyStore(studies ...models.CaseStudy) *MockCaseStudyStore {
	m := &MockCaseStudyStore{}
	for _, s := range studies {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		m.Studies = append(m.Studies, s)
	}
	return m
}

func (m *MockCaseStudyStore) Create(ctx context.Context, c *models.CaseStudy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = FixedTime, FixedTime
	m.Studies = append(m.Studies, *c)
	return nil
}

func (m *MockCaseStudyStore) GetByID(ctx context.Context, id string) (*models.CaseStudy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Studies {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, notFound("case study", id)
}

func (m *MockCaseStudyStore) List(ctx context.Context) ([]models.CaseStudy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.CaseStudy(nil), m.Studies...), nil
}

func (m *MockCaseStudyStore) ListByStatus(ctx context.Context, status models.CaseStudyStatus) ([]models.CaseStudy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.CaseStudy
	for _, s := range m.Studies {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockCaseStudyStore) Update(ctx context.Context, c *models.CaseStudy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Studies {
		if m.Studies[i].ID == c.ID {
			m.Studies[i] = *c
			return nil
		}
	}
	return notFound("case study", c.ID)
}

func (m *MockCaseStudyStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return err
	}
	for i := range m.Studies {
		if m.Studies[i].ID == id {
			m.Studies = append(m.Studies[:i], m.Studies[i+1:]...)
			return nil
		}
	}
	return notFound("case study", id)
}

// MockEnquiryStore is an in-memory enquiry store
type MockEnquiryStore struct {
	mu        sync.Mutex
	Enquiries []models.Enquiry
	Err       error
}

// NewMockEnquiryStore creates a store seeded with enquiries
func NewMockEnquiryStore(enquiries ...models.Enquiry) *MockEnquiryStore {
	m := &MockEnquiryStore{}
	for _, e := range enquiries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		m.Enquiries = append(m.Enquiries, e)
	}
	return m
}

// Create also satisfies the enquiry service's repository dependency
func (m *MockEnquiryStore) Create(ctx context.Context, e *models.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	e.ID = uuid.NewString()
	e.CreatedAt, e.UpdatedAt = FixedTime, FixedTime
	m.Enquiries = append(m.Enquiries, *e)
	return nil
}

func (m *MockEnquiryStore) GetByID(ctx context.Context, id string) (*models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for _, e := range m.Enquiries {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, notFound("enquiry", id)
}

func (m *MockEnquiryStore) List(ctx context.Context) ([]models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Enquiry(nil), m.Enquiries...), nil
}

func (m *MockEnquiryStore) update(id string, fn func(*models.Enquiry)) (*models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Enquiries {
		if m.Enquiries[i].ID == id {
			fn(&m.Enquiries[i])
			e := m.Enquiries[i]
			return &e, nil
		}
	}
	return nil, notFound("enquiry", id)
}

func (m *MockEnquiryStore) UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) (*models.Enquiry, error) {
	return m.update(id, func(e *models.Enquiry) { e.Status = status })
}

func (m *MockEnquiryStore) UpdateNotes(ctx context.Context, id, notes string) (*models.Enquiry, error) {
	return m.update(id, func(e *models.Enquiry) { e.Notes = notes })
}

func (m *MockEnquiryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkID(id); err != nil {
		return err
	}
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Enquiries {
		if m.Enquiries[i].ID == id {
			m.Enquiries = append(m.Enquiries[:i], m.Enquiries[i+1:]...)
			return nil
		}
	}
	return notFound("enquiry", id)
}

// MockContentStore holds the about and contact singletons in memory
type MockContentStore struct {
	mu      sync.Mutex
	About   *models.AboutContent
	Contact *models.ContactInfo
	Err     error
}

func (m *MockContentStore) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.About == nil {
		return nil, notFound("content", models.ContentKeyAbout)
	}
	a := *m.About
	return &a, nil
}

func (m *MockContentStore) SaveAbout(ctx context.Context, about *models.AboutContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	a := *about
	m.About = &a
	return nil
}

func (m *MockContentStore) GetContact(ctx context.Context) (*models.ContactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Contact == nil {
		return nil, notFound("content", models.ContentKeyContact)
	}
	c := *m.Contact
	return &c, nil
}

func (m *MockContentStore) SaveContact(ctx context.Context, contact *models.ContactInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c := *contact
	m.Contact = &c
	return nil
}

// MockPublisher records published live events
type MockPublisher struct {
	mu     sync.Mutex
	Events []string
}

// Publish records "type:id"
func (m *MockPublisher) Publish(eventType, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, eventType+":"+id)
}

// Published returns a copy of the recorded events
func (m *MockPublisher) Published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Events...)
}

// MockVisitRecorder records page views
type MockVisitRecorder struct {
	mu    sync.Mutex
	Paths []string
	Err   error
}

// Record records a visit to path
func (m *MockVisitRecorder) Record(ctx context.Context, path string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paths = append(m.Paths, path)
	return m.Err
}

// Visits returns a copy of the recorded paths
func (m *MockVisitRecorder) Visits() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Paths...)
}
