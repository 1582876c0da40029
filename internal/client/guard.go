package client

import "strings"

const (
	LoginRoute     = "/admin/login"
	DashboardRoute = "/admin/dashboard"
)

// Navigator changes the current view
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Guard gates the admin views on the session state
type Guard struct {
	session *Session
	nav     Navigator
}

// NewGuard creates a guard. nav may be nil when the caller only needs the decision.
func NewGuard(session *Session, nav Navigator) *Guard {
	return &Guard{session: session, nav: nav}
}

// IsLoginRoute reports whether path is the login view or below it
func IsLoginRoute(path string) bool {
	return path == LoginRoute || strings.HasPrefix(path, LoginRoute+"/") || strings.HasPrefix(path, LoginRoute+"?")
}

// Check returns true and redirects to the login route when the session is resolved,
// not authenticated and path is not already the login route.
func (g *Guard) Check(path string) bool {
	if g.session.Loading() || g.session.Authenticated() || IsLoginRoute(path) {
		return false
	}
	if g.nav != nil {
		g.nav.Navigate(LoginRoute)
	}
	return true
}
