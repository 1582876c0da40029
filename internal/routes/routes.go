// Package routes wires handlers and middleware onto the router.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/internal/handlers/admin"
	"github.com/northwind-labs/sitecms/internal/handlers/auth"
	"github.com/northwind-labs/sitecms/internal/handlers/public"
	"github.com/northwind-labs/sitecms/internal/middleware"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// Dependencies are the handlers and guards the router is built from.
// Site is optional and serves every path the API does not.
type Dependencies struct {
	AllowedOrigin  string
	Authenticator  middleware.Authenticator
	Public         *public.Handler
	Admin          *admin.Handler
	Auth           *auth.Handler
	EnquiryLimiter *middleware.RateLimiter
	LoginLimiter   *middleware.RateLimiter
	Site           http.Handler
}

/*
 * SetupRoutes configures all application routes and middleware.
 *
 * Route Groups:
 *   - Public API (/api/about, /api/projects, /api/case-studies, /api/enquiries, ...)
 *   - Auth (/api/auth/login, /api/auth/logout, /api/auth/me)
 *   - Admin API (/api/admin/..., requires an admin session)
 *   - Server-rendered site (everything else)
 */
func SetupRoutes(r *mux.Router, deps Dependencies) {
	debug.Info("Initializing route configuration")

	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(CORSMiddleware(deps.AllowedOrigin))

	setupPublicRoutes(api, deps)
	setupAuthRoutes(api, deps)
	setupAdminRoutes(api, deps)

	api.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			return
		}
		httputil.RespondWithError(w, http.StatusNotFound, "Not found")
	})

	if deps.Site != nil {
		r.PathPrefix("/").Handler(deps.Site)
	}
}

func setupPublicRoutes(api *mux.Router, deps Dependencies) {
	debug.Debug("Setting up public routes")
	h := deps.Public

	api.HandleFunc("/health", h.Health).Methods("GET", "OPTIONS")
	api.HandleFunc("/about", h.GetAbout).Methods("GET", "OPTIONS")
	api.HandleFunc("/contact", h.GetContact).Methods("GET", "OPTIONS")
	api.HandleFunc("/services", h.ListServices).Methods("GET", "OPTIONS")
	api.HandleFunc("/projects", h.ListProjects).Methods("GET", "OPTIONS")
	api.HandleFunc("/projects/{id}", h.GetProject).Methods("GET", "OPTIONS")
	api.HandleFunc("/case-studies", h.ListCaseStudies).Methods("GET", "OPTIONS")
	api.HandleFunc("/case-studies/{id}", h.GetCaseStudy).Methods("GET", "OPTIONS")

	submit := http.Handler(http.HandlerFunc(h.SubmitEnquiry))
	if deps.EnquiryLimiter != nil {
		submit = deps.EnquiryLimiter.Middleware(submit)
	}
	api.Handle("/enquiries", submit).Methods("POST", "OPTIONS")
}

func setupAuthRoutes(api *mux.Router, deps Dependencies) {
	debug.Debug("Setting up auth routes")
	h := deps.Auth

	login := http.Handler(http.HandlerFunc(h.Login))
	if deps.LoginLimiter != nil {
		login = deps.LoginLimiter.Middleware(login)
	}
	api.Handle("/auth/login", login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", h.Logout).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/me", h.Me).Methods("GET", "OPTIONS")
}

func setupAdminRoutes(api *mux.Router, deps Dependencies) {
	debug.Debug("Setting up admin routes")
	h := deps.Admin

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.RequireAuth(deps.Authenticator))
	adminRouter.Use(middleware.AdminOnly)

	adminRouter.HandleFunc("/about", h.UpdateAbout).Methods("PUT", "OPTIONS")
	adminRouter.HandleFunc("/contact", h.UpdateContact).Methods("PUT", "OPTIONS")

	adminRouter.HandleFunc("/projects", h.ListProjects).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/projects", h.CreateProject).Methods("POST")
	adminRouter.HandleFunc("/projects/{id}", h.GetProject).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/projects/{id}", h.UpdateProject).Methods("PUT")
	adminRouter.HandleFunc("/projects/{id}", h.DeleteProject).Methods("DELETE")

	adminRouter.HandleFunc("/case-studies", h.ListCaseStudies).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/case-studies", h.CreateCaseStudy).Methods("POST")
	adminRouter.HandleFunc("/case-studies/{id}", h.GetCaseStudy).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/case-studies/{id}", h.UpdateCaseStudy).Methods("PUT")
	adminRouter.HandleFunc("/case-studies/{id}", h.DeleteCaseStudy).Methods("DELETE")

	adminRouter.HandleFunc("/enquiries", h.ListEnquiries).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/enquiries/{id}", h.GetEnquiry).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/enquiries/{id}", h.DeleteEnquiry).Methods("DELETE")
	adminRouter.HandleFunc("/enquiries/{id}/status", h.UpdateEnquiryStatus).Methods("PATCH", "OPTIONS")
	adminRouter.HandleFunc("/enquiries/{id}/notes", h.UpdateEnquiryNotes).Methods("PATCH", "OPTIONS")

	adminRouter.HandleFunc("/dashboard", h.GetDashboard).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/dashboard/charts/{name}.png", h.GetChart).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/live", h.Live).Methods("GET")

	adminRouter.HandleFunc("/mfa/setup", deps.Auth.SetupMFA).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/mfa/enable", deps.Auth.EnableMFA).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/mfa/disable", deps.Auth.DisableMFA).Methods("POST", "OPTIONS")
}
