package site

import (
	"errors"
	"net/http"

	"github.com/northwind-labs/sitecms/internal/chart"
	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/internal/middleware"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/services"
	"github.com/northwind-labs/sitecms/pkg/debug"
)

type loginPage struct {
	Email       string
	Error       string
	MFARequired bool
}

// session resolves the request's cookie into a client session. Without a session
// store every visitor is unauthenticated.
func (s *Site) session(r *http.Request) *client.Session {
	session := client.NewSession()
	token := middleware.TokenFromRequest(r)
	if s.cfg.Sessions == nil || token == "" {
		session.Logout()
		return session
	}
	resp, err := s.cfg.Sessions.Session(r.Context(), token)
	if err != nil || resp.User.Role != models.RoleAdmin {
		session.Logout()
		return session
	}
	session.Login(resp.User, token)
	return session
}

func redirector(w http.ResponseWriter, r *http.Request) client.Navigator {
	return client.NavigatorFunc(func(path string) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	})
}

func (s *Site) loginForm(w http.ResponseWriter, r *http.Request) {
	if s.session(r).Authenticated() {
		http.Redirect(w, r, client.DashboardRoute, http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login", "Admin Login", loginPage{})
}

func (s *Site) login(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Sessions == nil {
		s.renderError(w, r, http.StatusServiceUnavailable, "Admin login is not available")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	email := r.PostForm.Get("email")
	page := loginPage{Email: email}

	resp, err := s.cfg.Sessions.Login(r.Context(), email, r.PostForm.Get("password"), r.PostForm.Get("code"))
	switch {
	case err == nil:
	case errors.Is(err, services.ErrMFARequired):
		page.MFARequired = true
		page.Error = "MFA code required"
		s.render(w, r, http.StatusUnauthorized, "login", "Admin Login", page)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		page.Error = "Invalid credentials"
		s.render(w, r, http.StatusUnauthorized, "login", "Admin Login", page)
		return
	default:
		debug.Error("Login from site failed: %v", err)
		page.Error = "Login failed"
		s.render(w, r, http.StatusInternalServerError, "login", "Admin Login", page)
		return
	}

	s.setCookie(w, resp.Token, s.cfg.Sessions.ExpiryMinutes()*60)
	http.Redirect(w, r, client.DashboardRoute, http.StatusSeeOther)
}

func (s *Site) logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" && s.cfg.Sessions != nil {
		if err := s.cfg.Sessions.Logout(r.Context(), token); err != nil {
			debug.Warning("Failed to revoke site session: %v", err)
		}
	}
	s.setCookie(w, "", -1)
	http.Redirect(w, r, client.LoginRoute, http.StatusSeeOther)
}

func (s *Site) setCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}

// dashboardPage is the data of the dashboard template
type dashboardPage struct {
	User             models.User
	Stats            *models.DashboardStats
	VisitorsChart    string
	EnquiriesChart   string
	VisitorsMissing  string
	EnquiriesMissing string
}

func (s *Site) dashboard(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if client.NewGuard(session, redirector(w, r)).Check(r.URL.Path) {
		return
	}

	page := dashboardPage{
		User:           session.User(),
		Stats:          &models.DashboardStats{},
		VisitorsChart:  "/api/admin/dashboard/charts/visitors.png?width=800",
		EnquiriesChart: "/api/admin/dashboard/charts/enquiries.png?width=400",
	}
	if s.cfg.Stats != nil {
		stats, err := s.cfg.Stats.Stats(r.Context())
		if err != nil {
			debug.Error("Failed to load dashboard stats: %v", err)
			s.renderError(w, r, http.StatusInternalServerError, "Failed to fetch dashboard stats")
			return
		}
		page.Stats = stats
	}
	if len(page.Stats.VisitorData) == 0 {
		page.VisitorsMissing = chart.NoVisitorData
	}
	if len(page.Stats.EnquiryTypes) == 0 {
		page.EnquiriesMissing = chart.NoEnquiryData
	}
	s.render(w, r, http.StatusOK, "dashboard", "Dashboard", page)
}
