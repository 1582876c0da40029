package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
	"github.com/northwind-labs/sitecms/pkg/jwt"
)

// TokenCookie is the name of the session cookie
const TokenCookie = "token"

// Authenticator validates a session token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// TokenFromRequest returns the session token from the cookie or an Authorization bearer header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// RequireAuth middleware ensures that only authenticated users can access the route
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := TokenFromRequest(r)
			if token == "" {
				debug.Warning("[AUTH] No auth token for %s %s", r.Method, r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				debug.Warning("[AUTH] Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := jwt.WithUserID(r.Context(), claims.UserID)
			ctx = jwt.WithRole(ctx, claims.Role)
			ctx = jwt.WithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
