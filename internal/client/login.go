package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"github.com/northwind-labs/sitecms/internal/models"
)

// Credentials is the login form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

// loginPayload accepts both the direct and the session-wrapped login response.
type loginPayload struct {
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Session *struct {
		User        models.User `json:"user"`
		AccessToken string      `json:"accessToken"`
	} `json:"session"`
}

// decodeLogin extracts the user and token from a login response body.
func decodeLogin(raw map[string]interface{}) (models.User, string, error) {
	var p loginPayload
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &p,
	})
	if err != nil {
		return models.User{}, "", err
	}
	if err := dec.Decode(raw); err != nil {
		return models.User{}, "", fmt.Errorf("failed to decode login response: %w", err)
	}
	switch {
	case p.Token != "":
		var user models.User
		if p.User != nil {
			user = *p.User
		}
		return user, p.Token, nil
	case p.Session != nil && p.Session.AccessToken != "":
		return p.Session.User, p.Session.AccessToken, nil
	}
	return models.User{}, "", errors.New("login response carried no token")
}

// LoginFlow drives the admin login form
type LoginFlow struct {
	api      *API
	session  *Session
	notifier Notifier
	nav      Navigator
}

// NewLoginFlow wires the form to the API, the session, toasts and navigation
func NewLoginFlow(api *API, session *Session, notifier Notifier, nav Navigator) *LoginFlow {
	return &LoginFlow{api: api, session: session, notifier: notifier, nav: nav}
}

// Submit posts the credentials. On success the session is authenticated, the API
// carries the token and the flow navigates to the dashboard once. On failure the
// server's message is toasted and the session stays unauthenticated.
func (f *LoginFlow) Submit(ctx context.Context, creds Credentials) error {
	var raw map[string]interface{}
	err := f.api.Do(ctx, http.MethodPost, "/api/auth/login", creds, &raw)

	var user models.User
	var token string
	if err == nil {
		user, token, err = decodeLogin(raw)
	}
	if err != nil {
		message := "Login failed"
		var se *StatusError
		if errors.As(err, &se) && se.Message != "" {
			message = se.Message
		}
		if f.session.Loading() {
			f.session.fail(message)
		}
		f.notify(Toast{Title: "Login failed", Description: message, Variant: VariantDestructive})
		return &RequestError{Message: "Login failed", Detail: message, Status: statusOf(err), Err: err}
	}

	f.api.SetToken(token)
	f.session.Login(user, token)
	f.notify(Toast{Title: "Login successful", Description: "Welcome to the admin dashboard"})
	if f.nav != nil {
		f.nav.Navigate(DashboardRoute)
	}
	return nil
}

func (f *LoginFlow) notify(t Toast) {
	if f.notifier != nil {
		f.notifier.Notify(t)
	}
}

func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// MarshalSession encodes the session for a token file
func MarshalSession(s *Session) ([]byte, error) {
	return json.MarshalIndent(models.AuthResponse{User: s.User(), Token: s.Token()}, "", "  ")
}

// RestoreSession decodes a token file written by MarshalSession into s and api.
func RestoreSession(data []byte, s *Session, api *API) error {
	var resp models.AuthResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to decode session: %w", err)
	}
	if resp.Token == "" {
		s.Logout()
		return nil
	}
	api.SetToken(resp.Token)
	s.Login(resp.User, resp.Token)
	return nil
}
