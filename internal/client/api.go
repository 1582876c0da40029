// Package client is the admin-side data layer: an HTTP client for the CMS API and
// per-resource state containers that cache what the API returns.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/env"
)

// DefaultBaseURL is used when neither API_URL nor NEXT_PUBLIC_API_URL is set
const DefaultBaseURL = "http://localhost:8080"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 10 << 20

// BaseURLFromEnv returns API_URL, then NEXT_PUBLIC_API_URL, then the default.
func BaseURLFromEnv() string {
	return env.FirstOf(DefaultBaseURL, "API_URL", "NEXT_PUBLIC_API_URL")
}

// StatusError is a non-2xx API response
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("status %d", e.Code)
}

// API performs JSON requests against the CMS. Session cookies are kept in a jar and
// a bearer token is sent when one is set.
type API struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures an API
type Option func(*API)

// WithHTTPClient replaces the default HTTP client. Its cookie jar is kept if set.
func WithHTTPClient(c *http.Client) Option {
	return func(a *API) { a.http = c }
}

// WithToken presets the bearer token
func WithToken(token string) Option {
	return func(a *API) { a.token = token }
}

// NewAPI creates a client for baseURL
func NewAPI(baseURL string, opts ...Option) *API {
	jar, _ := cookiejar.New(nil)
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.http.Jar == nil {
		a.http.Jar = jar
	}
	return a
}

// BaseURL returns the API root
func (a *API) BaseURL() string { return a.baseURL }

// SetToken sets the bearer token sent with every request; empty clears it.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// Token returns the current bearer token
func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Do sends body as JSON and decodes a 2xx response into out. A non-2xx response
// yields a *StatusError carrying the server's error message.
func (a *API) Do(ctx context.Context, method, path string, body, out interface{}) error {
	data, _, err := a.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Raw fetches path and returns the body and its content type.
func (a *API) Raw(ctx context.Context, path string) ([]byte, string, error) {
	return a.send(ctx, http.MethodGet, path, nil)
}

func (a *API) send(ctx context.Context, method, path string, body interface{}) ([]byte, string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	debug.Debug("%s %s", method, req.URL)
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return data, "", &StatusError{Code: resp.StatusCode, Message: serverMessage(data)}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// serverMessage extracts {"error": ...} or {"message": ...} from an error body.
func serverMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
