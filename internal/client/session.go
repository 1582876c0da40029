package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/northwind-labs/sitecms/internal/models"
)

// AuthState is the position of a Session in its state machine
type AuthState int

const (
	// StateUnknown is the initial state while the session is being checked
	StateUnknown AuthState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Session is the signed-in administrator as seen by the client
type Session struct {
	mu    sync.RWMutex
	state AuthState
	user  models.User
	token string
	err   string
}

// NewSession returns a session in the unknown (loading) state
func NewSession() *Session {
	return &Session{}
}

// State returns the current state
func (s *Session) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the session has not been resolved yet
func (s *Session) Loading() bool { return s.State() == StateUnknown }

// Authenticated reports whether a user is signed in
func (s *Session) Authenticated() bool { return s.State() == StateAuthenticated }

// User returns the signed-in user
func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the session's bearer token
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Err returns the reason of the last failed check
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Login records a successful sign-in
func (s *Session) Login(user models.User, token string) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.token = token
	s.err = ""
	s.mu.Unlock()
}

// Logout clears the session locally
func (s *Session) Logout() {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = models.User{}
	s.token = ""
	s.err = ""
	s.mu.Unlock()
}

func (s *Session) fail(reason string) {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = models.User{}
	s.token = ""
	s.err = reason
	s.mu.Unlock()
}

// Check resolves the session against /api/auth/me. Any failure leaves the session
// unauthenticated.
func (s *Session) Check(ctx context.Context, api *API) error {
	var resp models.AuthResponse
	err := api.Do(ctx, http.MethodGet, "/api/auth/me", nil, &resp)
	if err != nil {
		reason := "Authentication check failed"
		var se *StatusError
		if errors.As(err, &se) {
			reason = "Not authenticated"
		}
		s.fail(reason)
		return newRequestError(reason, err)
	}
	token := resp.Token
	if token == "" {
		token = api.Token()
	}
	s.Login(resp.User, token)
	return nil
}

// SignOut revokes the token on the server and clears the session. The local session
// is cleared even when the request fails.
func (s *Session) SignOut(ctx context.Context, api *API) error {
	err := api.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	api.SetToken("")
	s.Logout()
	if err != nil {
		return newRequestError("Failed to log out", err)
	}
	return nil
}
