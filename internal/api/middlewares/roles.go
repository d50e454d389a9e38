package middlewares

import (
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
)

// RequireScope rejects requests whose token lacks scope. It must run after
// RequireAuth; without claims the caller is unauthorized.
func RequireScope(scope string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				unauthorized(w, r, "missing credentials")
				return
			}
			if !claims.HasScope(scope) {
				apperr.WriteStatus(w, r, http.StatusForbidden, "Forbidden", "token lacks scope "+scope)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
