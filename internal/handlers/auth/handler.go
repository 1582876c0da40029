package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/northwind-labs/sitecms/internal/middleware"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/services"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// Service is the part of the auth service the handlers use
type Service interface {
	Login(ctx context.Context, email, password, code string) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*models.AuthResponse, error)
	ExpiryMinutes() int
	BeginMFASetup(ctx context.Context, userID string) (*services.MFASetup, error)
	EnableMFA(ctx context.Context, userID, code string) error
	DisableMFA(ctx context.Context, userID, password string) error
}

// Handler handles authentication-related requests
type Handler struct {
	svc          Service
	secureCookie bool
}

// NewHandler creates a new auth handler. secureCookie marks the session cookie Secure.
func NewHandler(svc Service, secureCookie bool) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

// Login godoc
// @Summary Log in with email and password
// @Description Issues a session token, returned in the body and as the token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 429 {object} httputil.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.ParseJSONBody(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.svc.Login(r.Context(), req.Email, req.Password, req.Code)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		httputil.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, services.ErrMFARequired):
		httputil.RespondWithJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"error":       "MFA code required",
			"mfaRequired": true,
		})
		return
	case err != nil:
		debug.Error("Login failed for %s: %v", req.Email, err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setAuthCookie(w, resp.Token, h.svc.ExpiryMinutes()*60)
	httputil.RespondWithJSON(w, http.StatusOK, resp)
}

// Logout revokes the presented token and clears the cookie. It succeeds without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" {
		if err := h.svc.Logout(r.Context(), token); err != nil {
			debug.Error("Failed to revoke token on logout: %v", err)
		}
	}
	h.setAuthCookie(w, "", -1)
	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the current session
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	resp, err := h.svc.Session(r.Context(), token)
	if err != nil {
		debug.Debug("Session lookup failed: %v", err)
		httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, resp)
}

// setAuthCookie writes the session cookie; maxAge < 0 deletes it.
func (h *Handler) setAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}
