package admin

import (
	"net/http"

	"github.com/northwind-labs/sitecms/internal/handlers"
)

// Handler serves the authenticated content-management API. Every successful write
// is announced on the live feed.
type Handler struct {
	projects    handlers.ProjectStore
	caseStudies handlers.CaseStudyStore
	enquiries   handlers.EnquiryStore
	content     handlers.ContentStore
	stats       handlers.StatsSource
	events      handlers.Publisher
	live        http.Handler
}

// Config bundles the admin handler dependencies. Events and Live may be nil.
type Config struct {
	Projects    handlers.ProjectStore
	CaseStudies handlers.CaseStudyStore
	Enquiries   handlers.EnquiryStore
	Content     handlers.ContentStore
	Stats       handlers.StatsSource
	Events      handlers.Publisher
	Live        http.Handler
}

// NewHandler creates a new admin handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		projects:    cfg.Projects,
		caseStudies: cfg.CaseStudies,
		enquiries:   cfg.Enquiries,
		content:     cfg.Content,
		stats:       cfg.Stats,
		events:      cfg.Events,
		live:        cfg.Live,
	}
}

func (h *Handler) publish(eventType, id string) {
	handlers.Publish(h.events, eventType, id)
}
