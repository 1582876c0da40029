package site

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/internal/catalogue"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

// maxFeatured is how many featured projects the home page shows
const maxFeatured = 3

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	projects, err := s.cfg.Projects.List(r.Context())
	if err != nil {
		debug.Error("Failed to list projects for home page: %v", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	featured := make([]models.Project, 0, maxFeatured)
	for _, p := range projects {
		if p.Featured && len(featured) < maxFeatured {
			featured = append(featured, p)
		}
	}
	s.render(w, r, http.StatusOK, "home", "Home", struct {
		Featured []models.Project
		Services []catalogue.Service
	}{featured, s.cfg.Services.List()})
}

func (s *Site) services(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "services", "Services", s.cfg.Services.List())
}

func (s *Site) projects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.cfg.Projects.List(r.Context())
	if err != nil {
		debug.Error("Failed to list projects: %v", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	s.render(w, r, http.StatusOK, "projects", "Projects", projects)
}

func (s *Site) project(w http.ResponseWriter, r *http.Request) {
	p, err := s.cfg.Projects.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.storeError(w, r, err, "Project not found", "Failed to load project")
		return
	}
	s.render(w, r, http.StatusOK, "project", p.Title, p)
}

func (s *Site) caseStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := s.cfg.CaseStudies.ListByStatus(r.Context(), models.CaseStudyStatusPublished)
	if err != nil {
		debug.Error("Failed to list case studies: %v", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to load case studies")
		return
	}
	s.render(w, r, http.StatusOK, "case_studies", "Case Studies", studies)
}

func (s *Site) caseStudy(w http.ResponseWriter, r *http.Request) {
	c, err := s.cfg.CaseStudies.GetByID(r.Context(), mux.Vars(r)["id"])
	if err == nil && c.Status != models.CaseStudyStatusPublished {
		err = repository.ErrNotFound
	}
	if err != nil {
		s.storeError(w, r, err, "Case study not found", "Failed to load case study")
		return
	}
	s.render(w, r, http.StatusOK, "case_study", c.Title, c)
}

func (s *Site) about(w http.ResponseWriter, r *http.Request) {
	about, err := s.cfg.Content.GetAbout(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		about, err = &models.AboutContent{Title: "About"}, nil
	}
	if err != nil {
		debug.Error("Failed to load about content: %v", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to load about content")
		return
	}
	s.render(w, r, http.StatusOK, "about", about.Title, about)
}

// contactPage is the data of the contact template
type contactPage struct {
	Info     *models.ContactInfo
	Services []catalogue.Service
	Form     models.EnquiryRequest
	Sent     bool
	Error    string
}

func (s *Site) contactInfo(r *http.Request) *models.ContactInfo {
	info, err := s.cfg.Content.GetContact(r.Context())
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			debug.Error("Failed to load contact info: %v", err)
		}
		return &models.ContactInfo{}
	}
	return info
}

func (s *Site) contact(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact", "Contact", contactPage{
		Info:     s.contactInfo(r),
		Services: s.cfg.Services.List(),
		Sent:     r.URL.Query().Get("sent") == "1",
	})
}

func (s *Site) submitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	form := models.EnquiryRequest{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Subject: r.PostForm.Get("subject"),
		Service: r.PostForm.Get("service"),
		Message: r.PostForm.Get("message"),
	}

	_, err := s.cfg.Enquiries.Submit(r.Context(), form)
	if err == nil {
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
		return
	}

	status, message := http.StatusInternalServerError, "Failed to send your message, please try again later"
	if errors.Is(err, models.ErrInvalidInput) {
		status, message = http.StatusBadRequest, err.Error()
	} else {
		debug.Error("Failed to submit enquiry from contact page: %v", err)
	}
	s.render(w, r, status, "contact", "Contact", contactPage{
		Info:     s.contactInfo(r),
		Services: s.cfg.Services.List(),
		Form:     form,
		Error:    message,
	})
}

func (s *Site) storeError(w http.ResponseWriter, r *http.Request, err error, notFound, failed string) {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		s.renderError(w, r, http.StatusNotFound, notFound)
		return
	}
	debug.Error("%s: %v", failed, err)
	s.renderError(w, r, http.StatusInternalServerError, failed)
}
