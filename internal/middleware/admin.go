package middleware

import (
	"net/http"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
	"github.com/northwind-labs/sitecms/pkg/jwt"
)

// AdminOnly middleware ensures that only admin users can access the route.
// It must run after RequireAuth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		role, ok := jwt.GetRole(r.Context())
		if !ok {
			httputil.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if role != models.RoleAdmin {
			debug.Warning("Non-admin user attempted to access admin route (role: %s)", role)
			httputil.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
