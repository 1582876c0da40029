package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/services"
	"github.com/northwind-labs/sitecms/internal/testutil"
	"github.com/northwind-labs/sitecms/pkg/jwt"
)

type stubService struct {
	loginErr   error
	revoked    []string
	sessions   map[string]models.User
	mfaErr     error
	mfaEnabled bool
}

var adminUser = models.User{ID: testutil.TestAdminID, Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}

func (s *stubService) Login(_ context.Context, email, password, code string) (*models.AuthResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	if email != "admin@example.com" || password != "correct" {
		return nil, services.ErrInvalidCredentials
	}
	return &models.AuthResponse{User: adminUser, Token: "abc"}, nil
}

func (s *stubService) Logout(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubService) Session(_ context.Context, token string) (*models.AuthResponse, error) {
	u, ok := s.sessions[token]
	if !ok {
		return nil, services.ErrSessionRevoked
	}
	return &models.AuthResponse{User: u, Token: token}, nil
}

func (s *stubService) ExpiryMinutes() int { return 60 }

func (s *stubService) BeginMFASetup(_ context.Context, userID string) (*services.MFASetup, error) {
	if s.mfaErr != nil {
		return nil, s.mfaErr
	}
	return &services.MFASetup{Secret: "JBSWY3DPEHPK3PXP", URL: "otpauth://totp/Site:admin@example.com?secret=JBSWY3DPEHPK3PXP"}, nil
}

func (s *stubService) EnableMFA(_ context.Context, userID, code string) error {
	if code != "123456" {
		return services.ErrInvalidCredentials
	}
	s.mfaEnabled = true
	return nil
}

func (s *stubService) DisableMFA(_ context.Context, userID, password string) error {
	if password != "correct" {
		return services.ErrInvalidCredentials
	}
	s.mfaEnabled = false
	return nil
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		loginErr   error
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid credentials",
			body:       LoginRequest{Email: "admin@example.com", Password: "correct"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       LoginRequest{Email: "admin@example.com", Password: "wrong"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name:       "mfa required",
			body:       LoginRequest{Email: "admin@example.com", Password: "correct"},
			loginErr:   services.ErrMFARequired,
			wantStatus: http.StatusUnauthorized,
			wantError:  "MFA code required",
		},
		{
			name:       "store failure",
			body:       LoginRequest{Email: "admin@example.com", Password: "correct"},
			loginErr:   errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to log in",
		},
		{
			name:       "missing password",
			body:       LoginRequest{Email: "admin@example.com"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{loginErr: tt.loginErr}, true)
			rr := httptest.NewRecorder()
			h.Login(rr, testutil.MakeRequest(t, http.MethodPost, "/api/auth/login", tt.body))

			if tt.wantError != "" {
				testutil.AssertErrorResponse(t, rr, tt.wantStatus, tt.wantError)
				assert.Empty(t, rr.Result().Cookies())
				return
			}

			var resp models.AuthResponse
			testutil.AssertJSONResponse(t, rr, tt.wantStatus, &resp)
			assert.Equal(t, "abc", resp.Token)
			assert.Equal(t, adminUser.Email, resp.User.Email)

			cookie := testutil.AssertCookieSet(t, rr, "token")
			require.NotNil(t, cookie)
			assert.Equal(t, "abc", cookie.Value)
			assert.True(t, cookie.HttpOnly)
			assert.True(t, cookie.Secure)
			assert.Equal(t, 3600, cookie.MaxAge)
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, false)

	req := testutil.MakeRequest(t, http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	testutil.AssertCookieDeleted(t, rr, "token")
	assert.Equal(t, []string{"abc"}, svc.revoked)

	rr = httptest.NewRecorder()
	h.Logout(rr, testutil.MakeRequest(t, http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, svc.revoked, 1)
}

func TestMe(t *testing.T) {
	h := NewHandler(&stubService{sessions: map[string]models.User{"abc": adminUser}}, false)

	req := testutil.MakeRequest(t, http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rr := httptest.NewRecorder()
	h.Me(rr, req)
	var resp models.AuthResponse
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &resp)
	assert.Equal(t, adminUser.ID, resp.User.ID)

	req = testutil.MakeRequest(t, http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "revoked"})
	rr = httptest.NewRecorder()
	h.Me(rr, req)
	testutil.AssertErrorResponse(t, rr, http.StatusUnauthorized, "Unauthorized")

	rr = httptest.NewRecorder()
	h.Me(rr, testutil.MakeRequest(t, http.MethodGet, "/api/auth/me", nil))
	testutil.AssertErrorResponse(t, rr, http.StatusUnauthorized, "Unauthorized")
}

func withUser(req *http.Request) *http.Request {
	return req.WithContext(jwt.WithUserID(req.Context(), testutil.TestAdminID))
}

func TestMFAFlow(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, false)

	rr := httptest.NewRecorder()
	h.SetupMFA(rr, withUser(testutil.MakeRequest(t, http.MethodPost, "/api/admin/mfa/setup", nil)))
	var setup MFASetupResponse
	testutil.AssertJSONResponse(t, rr, http.StatusOK, &setup)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", setup.Secret)
	qr, err := base64.StdEncoding.DecodeString(setup.QRCode)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), qr[:4])

	rr = httptest.NewRecorder()
	h.EnableMFA(rr, withUser(testutil.MakeRequest(t, http.MethodPost, "/x", MFACodeRequest{Code: "000000"})))
	testutil.AssertErrorResponse(t, rr, http.StatusBadRequest, "Invalid code")
	assert.False(t, svc.mfaEnabled)

	rr = httptest.NewRecorder()
	h.EnableMFA(rr, withUser(testutil.MakeRequest(t, http.MethodPost, "/x", MFACodeRequest{Code: "123456"})))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, svc.mfaEnabled)

	rr = httptest.NewRecorder()
	h.DisableMFA(rr, withUser(testutil.MakeRequest(t, http.MethodPost, "/x", MFAPasswordRequest{Password: "wrong"})))
	testutil.AssertErrorResponse(t, rr, http.StatusUnauthorized, "Invalid credentials")

	rr = httptest.NewRecorder()
	h.DisableMFA(rr, withUser(testutil.MakeRequest(t, http.MethodPost, "/x", MFAPasswordRequest{Password: "correct"})))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, svc.mfaEnabled)
	testutil.AssertCookieDeleted(t, rr, "token")
}

func TestMFARequiresUser(t *testing.T) {
	h := NewHandler(&stubService{}, false)
	rr := httptest.NewRecorder()
	h.SetupMFA(rr, testutil.MakeRequest(t, http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
