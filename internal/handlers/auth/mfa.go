package auth

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/skip2/go-qrcode"

	"github.com/northwind-labs/sitecms/internal/services"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
	"github.com/northwind-labs/sitecms/pkg/jwt"
)

const qrSize = 256

// MFASetupResponse carries the pending secret and its enrolment QR code (base64 PNG)
type MFASetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
	QRCode string `json:"qrCode"`
}

// MFACodeRequest is the body of POST /admin/mfa/enable
type MFACodeRequest struct {
	Code string `json:"code"`
}

// MFAPasswordRequest is the body of POST /admin/mfa/disable
type MFAPasswordRequest struct {
	Password string `json:"password"`
}

// SetupMFA godoc
// @Summary Start TOTP enrolment
// @Tags Auth
// @Produce json
// @Success 200 {object} MFASetupResponse
// @Router /admin/mfa/setup [post]
// @Security ApiKeyAuth
func (h *Handler) SetupMFA(w http.ResponseWriter, r *http.Request) {
	userID, ok := jwt.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	setup, err := h.svc.BeginMFASetup(r.Context(), userID)
	if err != nil {
		debug.Error("Failed to start MFA setup for %s: %v", userID, err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to start MFA setup")
		return
	}

	qr, err := qrcode.Encode(setup.URL, qrcode.Medium, qrSize)
	if err != nil {
		debug.Error("Failed to generate QR code: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, MFASetupResponse{
		Secret: setup.Secret,
		URL:    setup.URL,
		QRCode: base64.StdEncoding.EncodeToString(qr),
	})
}

// EnableMFA confirms enrolment with a code from the authenticator app.
func (h *Handler) EnableMFA(w http.ResponseWriter, r *http.Request) {
	userID, ok := jwt.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req MFACodeRequest
	if err := httputil.ParseJSONBody(r, &req); err != nil || req.Code == "" {
		httputil.RespondWithError(w, http.StatusBadRequest, "Code is required")
		return
	}

	if err := h.svc.EnableMFA(r.Context(), userID, req.Code); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httputil.RespondWithError(w, http.StatusBadRequest, "Invalid code")
			return
		}
		debug.Error("Failed to enable MFA for %s: %v", userID, err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to enable MFA")
		return
	}
	debug.Info("MFA enabled for user %s", userID)
	httputil.RespondWithJSON(w, http.StatusOK, map[string]bool{"mfaEnabled": true})
}

// DisableMFA turns MFA off after re-checking the password. Every session of the
// user is revoked, so the cookie is cleared as well.
func (h *Handler) DisableMFA(w http.ResponseWriter, r *http.Request) {
	userID, ok := jwt.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req MFAPasswordRequest
	if err := httputil.ParseJSONBody(r, &req); err != nil || req.Password == "" {
		httputil.RespondWithError(w, http.StatusBadRequest, "Password is required")
		return
	}

	if err := h.svc.DisableMFA(r.Context(), userID, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httputil.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		debug.Error("Failed to disable MFA for %s: %v", userID, err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to disable MFA")
		return
	}
	debug.Info("MFA disabled for user %s", userID)
	h.setAuthCookie(w, "", -1)
	httputil.RespondWithJSON(w, http.StatusOK, map[string]bool{"mfaEnabled": false})
}
