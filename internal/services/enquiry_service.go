package services

import (
	"context"
	"time"

	"github.com/northwind-labs/sitecms/internal/live"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

// EnquiryCreator persists new enquiries
type EnquiryCreator interface {
	Create(ctx context.Context, e *models.Enquiry) error
}

// EnquiryNotifier tells staff about a new enquiry
type EnquiryNotifier interface {
	NotifyEnquiry(ctx context.Context, e *models.Enquiry) error
}

// ServiceChecker reports whether a slug names an offered service
type ServiceChecker interface {
	Has(slug string) bool
}

// notifyTimeout bounds the notification send so a slow provider never holds a request
const notifyTimeout = 10 * time.Second

// EnquiryService accepts contact-form submissions.
type EnquiryService struct {
	repo     EnquiryCreator
	notifier EnquiryNotifier
	services ServiceChecker
	events   live.Publisher
}

// NewEnquiryService creates a new EnquiryService. notifier, services and events may be nil.
func NewEnquiryService(repo EnquiryCreator, notifier EnquiryNotifier, services ServiceChecker, events live.Publisher) *EnquiryService {
	return &EnquiryService{repo: repo, notifier: notifier, services: services, events: events}
}

// Submit validates and stores an enquiry, then announces it. Notification failures are
// logged and never fail the submission.
func (s *EnquiryService) Submit(ctx context.Context, req models.EnquiryRequest) (*models.Enquiry, error) {
	var known func(string) bool
	if s.services != nil {
		known = s.services.Has
	}
	if err := req.Validate(known); err != nil {
		return nil, err
	}

	e := models.NewEnquiry(req)
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	debug.Info("Stored enquiry %s from %s", e.ID, e.Email)

	if s.events != nil {
		s.events.Publish(live.EventEnquiryCreated, e.ID)
	}

	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyEnquiry(nctx, e); err != nil {
			debug.Error("Failed to send notification for enquiry %s: %v", e.ID, err)
		}
	}
	return e, nil
}
