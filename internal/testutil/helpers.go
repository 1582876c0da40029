package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/pkg/jwt"
)

// TestJWTSecret signs every token issued in tests
const TestJWTSecret = "test-secret-key-for-unit-tests-only"

// SetTestJWTSecret sets the JWT_SECRET environment variable for testing
func SetTestJWTSecret(t *testing.T) {
	t.Helper()

	oldSecret, had := os.LookupEnv("JWT_SECRET")
	os.Setenv("JWT_SECRET", TestJWTSecret)

	t.Cleanup(func() {
		if had {
			os.Setenv("JWT_SECRET", oldSecret)
		} else {
			os.Unsetenv("JWT_SECRET")
		}
	})
}

// MakeRequest creates a basic HTTP request with an optional JSON body
func MakeRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			bodyReader = bytes.NewReader([]byte(b))
		default:
			bodyBytes, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}
			bodyReader = bytes.NewReader(bodyBytes)
		}
	}

	req := httptest.NewRequest(method, url, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// MakeAuthenticatedRequest creates an HTTP request carrying a valid session cookie
func MakeAuthenticatedRequest(t *testing.T, method, url string, body interface{}, userID, role string) *http.Request {
	t.Helper()

	req := MakeRequest(t, method, url, body)
	token, err := jwt.GenerateToken(userID, "admin@example.com", role, 60)
	if err != nil {
		t.Fatalf("Failed to generate auth token: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	return req
}

// WithVars attaches gorilla/mux path variables to a request built outside a router
func WithVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

// AssertJSONResponse checks that the response has the expected status and decodes JSON
func AssertJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, v interface{}) {
	t.Helper()

	if rr.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d. Body: %s", expectedStatus, rr.Code, rr.Body.String())
	}

	if v != nil && rr.Body.Len() > 0 {
		if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
			t.Errorf("Failed to decode JSON response: %v. Body: %s", err, rr.Body.String())
		}
	}
}

// AssertErrorResponse checks the status and the {"error": ...} message
func AssertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, rr, expectedStatus, &body)
	if expectedMessage != "" && body.Error != expectedMessage {
		t.Errorf("Expected error %q, got %q", expectedMessage, body.Error)
	}
}

// AssertCookieSet checks that a cookie with the given name was set
func AssertCookieSet(t *testing.T, rr *httptest.ResponseRecorder, cookieName string) *http.Cookie {
	t.Helper()

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == cookieName {
			return cookie
		}
	}

	t.Errorf("Expected cookie %s to be set, but it was not", cookieName)
	return nil
}

// AssertCookieDeleted checks that a cookie was deleted (MaxAge < 0)
func AssertCookieDeleted(t *testing.T, rr *httptest.ResponseRecorder, cookieName string) {
	t.Helper()

	cookie := AssertCookieSet(t, rr, cookieName)
	if cookie != nil && cookie.MaxAge >= 0 {
		t.Errorf("Expected cookie %s to be deleted (MaxAge < 0), but MaxAge was %d", cookieName, cookie.MaxAge)
	}
}
