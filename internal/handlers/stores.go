package handlers

import (
	"context"

	"github.com/northwind-labs/sitecms/internal/catalogue"
	"github.com/northwind-labs/sitecms/internal/models"
)

// Publisher receives change events for the admin live feed
type Publisher interface {
	Publish(eventType, id string)
}

// ProjectStore persists portfolio projects
type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
}

// CaseStudyStore persists case studies
type CaseStudyStore interface {
	Create(ctx context.Context, c *models.CaseStudy) error
	GetByID(ctx context.Context, id string) (*models.CaseStudy, error)
	List(ctx context.Context) ([]models.CaseStudy, error)
	ListByStatus(ctx context.Context, status models.CaseStudyStatus) ([]models.CaseStudy, error)
	Update(ctx context.Context, c *models.CaseStudy) error
	Delete(ctx context.Context, id string) error
}

// EnquiryStore reads and triages enquiries
type EnquiryStore interface {
	GetByID(ctx context.Context, id string) (*models.Enquiry, error)
	List(ctx context.Context) ([]models.Enquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) (*models.Enquiry, error)
	UpdateNotes(ctx context.Context, id, notes string) (*models.Enquiry, error)
	Delete(ctx context.Context, id string) error
}

// ContentStore persists the about and contact singletons
type ContentStore interface {
	GetAbout(ctx context.Context) (*models.AboutContent, error)
	SaveAbout(ctx context.Context, about *models.AboutContent) error
	GetContact(ctx context.Context) (*models.ContactInfo, error)
	SaveContact(ctx context.Context, contact *models.ContactInfo) error
}

// EnquirySubmitter accepts public contact-form submissions
type EnquirySubmitter interface {
	Submit(ctx context.Context, req models.EnquiryRequest) (*models.Enquiry, error)
}

// ServiceCatalogue lists the offered services
type ServiceCatalogue interface {
	List() []catalogue.Service
}

// StatsSource assembles dashboard statistics
type StatsSource interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}
