// Package site serves the server-rendered marketing pages and the admin login and
// dashboard views.
package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/internal/handlers"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

//go:embed templates/*.html
var templateFS embed.FS

// VisitRecorder counts page views
type VisitRecorder interface {
	Record(ctx context.Context, path string, at time.Time) error
}

// Sessions signs administrators in and resolves their cookies
type Sessions interface {
	Login(ctx context.Context, email, password, code string) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*models.AuthResponse, error)
	ExpiryMinutes() int
}

// Config holds the stores the pages are rendered from. Visits, Sessions, Stats and
// FormLimit are optional.
type Config struct {
	Projects     handlers.ProjectStore
	CaseStudies  handlers.CaseStudyStore
	Content      handlers.ContentStore
	Enquiries    handlers.EnquirySubmitter
	Services     handlers.ServiceCatalogue
	Visits       VisitRecorder
	Sessions     Sessions
	Stats        handlers.StatsSource
	FormLimit    func(http.Handler) http.Handler
	SecureCookie bool
	SiteName     string
	Now          func() time.Time
}

// Site renders HTML pages
type Site struct {
	cfg    Config
	pages  map[string]*template.Template
	router *mux.Router
}

var pageNames = []string{
	"home", "services", "projects", "project", "case_studies", "case_study",
	"about", "contact", "login", "dashboard", "error",
}

// New parses the embedded templates and builds the page router.
func New(cfg Config) (*Site, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "Northwind Labs"
	}

	s := &Site{cfg: cfg, pages: make(map[string]*template.Template, len(pageNames))}
	funcs := template.FuncMap{
		"markdown": renderMarkdown,
		"join":     strings.Join,
		"date":     func(t time.Time) string { return t.Format("2 Jan 2006") },
	}
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		s.pages[name] = tmpl
	}

	s.router = s.routes()
	return s, nil
}

func (s *Site) routes() *mux.Router {
	r := mux.NewRouter()
	r.StrictSlash(true)

	public := r.NewRoute().Subrouter()
	public.Use(s.trackVisits)
	public.HandleFunc("/", s.home).Methods(http.MethodGet)
	public.HandleFunc("/services", s.services).Methods(http.MethodGet)
	public.HandleFunc("/projects", s.projects).Methods(http.MethodGet)
	public.HandleFunc("/projects/{id}", s.project).Methods(http.MethodGet)
	public.HandleFunc("/case-studies", s.caseStudies).Methods(http.MethodGet)
	public.HandleFunc("/case-studies/{id}", s.caseStudy).Methods(http.MethodGet)
	public.HandleFunc("/about", s.about).Methods(http.MethodGet)
	public.HandleFunc("/contact", s.contact).Methods(http.MethodGet)

	r.Handle("/contact", s.limited(http.HandlerFunc(s.submitContact))).Methods(http.MethodPost)

	r.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/admin/login", s.loginForm).Methods(http.MethodGet)
	r.Handle("/admin/login", s.limited(http.HandlerFunc(s.login))).Methods(http.MethodPost)
	r.HandleFunc("/admin/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/admin/dashboard", s.dashboard).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
	})
	return r
}

func (s *Site) limited(h http.Handler) http.Handler {
	if s.cfg.FormLimit == nil {
		return h
	}
	return s.cfg.FormLimit(h)
}

// ServeHTTP implements http.Handler
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// view is the data every template receives
type view struct {
	SiteName string
	Title    string
	Path     string
	Year     int
	Data     interface{}
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data interface{}) {
	tmpl, ok := s.pages[page]
	if !ok {
		debug.Error("Unknown page template %s", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "base", view{
		SiteName: s.cfg.SiteName,
		Title:    title,
		Path:     r.URL.Path,
		Year:     s.cfg.Now().Year(),
		Data:     data,
	})
	if err != nil {
		debug.Error("Failed to render %s: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		debug.Debug("Failed to write %s: %v", page, err)
	}
}

func (s *Site) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", http.StatusText(status), struct {
		Status  int
		Message string
	}{status, message})
}
