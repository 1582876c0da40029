package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/internal/handlers"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// Handler serves the unauthenticated read API and the contact form endpoint.
type Handler struct {
	projects    handlers.ProjectStore
	caseStudies handlers.CaseStudyStore
	content     handlers.ContentStore
	enquiries   handlers.EnquirySubmitter
	services    handlers.ServiceCatalogue
	ping        func(ctx context.Context) error
}

// NewHandler creates a new public handler. ping may be nil.
func NewHandler(
	projects handlers.ProjectStore,
	caseStudies handlers.CaseStudyStore,
	content handlers.ContentStore,
	enquiries handlers.EnquirySubmitter,
	services handlers.ServiceCatalogue,
	ping func(ctx context.Context) error,
) *Handler {
	return &Handler{
		projects:    projects,
		caseStudies: caseStudies,
		content:     content,
		enquiries:   enquiries,
		services:    services,
		ping:        ping,
	}
}

// GetAbout godoc
// @Summary Get about page content
// @Tags Public
// @Produce json
// @Success 200 {object} models.AboutContent
// @Router /about [get]
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.content.GetAbout(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		// nothing saved yet, editors start from a blank page
		about, err = &models.AboutContent{Values: []models.Value{}, Team: []models.TeamMember{}}, nil
	}
	if err != nil {
		handlers.RespondWithStoreError(w, err, "About content", "retrieve about content")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, about)
}

// GetContact godoc
// @Summary Get contact information
// @Tags Public
// @Produce json
// @Success 200 {object} models.ContactInfo
// @Router /contact [get]
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.content.GetContact(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		contact, err = &models.ContactInfo{SocialLinks: []models.SocialLink{}}, nil
	}
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Contact info", "retrieve contact info")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, contact)
}

// ListProjects godoc
// @Summary List portfolio projects
// @Tags Public
// @Produce json
// @Param featured query bool false "Only featured projects"
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "retrieve projects")
		return
	}
	if httputil.GetBoolQueryParam(r, "featured") {
		featured := projects[:0]
		for _, p := range projects {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		projects = featured
	}
	if projects == nil {
		projects = []models.Project{}
	}
	httputil.RespondWithJSON(w, http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a project
// @Tags Public
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "retrieve project")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, project)
}

// ListCaseStudies returns published case studies only.
func (h *Handler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := h.caseStudies.ListByStatus(r.Context(), models.CaseStudyStatusPublished)
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "retrieve case studies")
		return
	}
	if studies == nil {
		studies = []models.CaseStudy{}
	}
	httputil.RespondWithJSON(w, http.StatusOK, studies)
}

// GetCaseStudy returns a published case study. Drafts and archived entries are reported as missing.
func (h *Handler) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	study, err := h.caseStudies.GetByID(r.Context(), mux.Vars(r)["id"])
	if err == nil && study.Status != models.CaseStudyStatusPublished {
		err = repository.ErrNotFound
	}
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "retrieve case study")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, study)
}

// EnquiryReceipt acknowledges a contact-form submission
type EnquiryReceipt struct {
	ID      string `json:"_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmitEnquiry godoc
// @Summary Submit the contact form
// @Tags Public
// @Accept json
// @Produce json
// @Param enquiry body models.EnquiryRequest true "Contact form"
// @Success 201 {object} EnquiryReceipt
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 429 {object} httputil.ErrorResponse
// @Router /enquiries [post]
func (h *Handler) SubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	var req models.EnquiryRequest
	if err := httputil.ParseJSONBody(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	enquiry, err := h.enquiries.Submit(r.Context(), req)
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Enquiry", "submit enquiry")
		return
	}

	debug.Info("Enquiry %s received from %s", enquiry.ID, httputil.ClientIP(r))
	httputil.RespondWithJSON(w, http.StatusCreated, EnquiryReceipt{
		ID:      enquiry.ID,
		Status:  string(enquiry.Status),
		Message: "Thank you for your enquiry. We will be in touch shortly.",
	})
}

// ListServices returns the services catalogue
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, h.services.List())
}

// Health reports liveness and, when configured, database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			debug.Error("Health check failed: %v", err)
			httputil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
