package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
	jwtutil "github.com/5w1tchy/passwarden/internal/security/jwt"
)

// RequireAuth verifies the Bearer JWT and injects its claims into the context.
func RequireAuth(signer *jwtutil.Signer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signer == nil {
				unauthorized(w, r, "authentication is not configured")
				return
			}
			raw := r.Header.Get("Authorization")
			if raw == "" {
				unauthorized(w, r, "missing Authorization header")
				return
			}
			tokenStr, err := bearer(raw)
			if err != nil {
				unauthorized(w, r, "invalid Authorization header")
				return
			}
			claims, err := signer.Parse(tokenStr)
			if err != nil {
				unauthorized(w, r, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims if a valid Bearer is present; otherwise continues anonymously.
func OptionalAuth(signer *jwtutil.Signer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signer == nil {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr, err := bearer(r.Header.Get("Authorization"))
			if err != nil {
				next.ServeHTTP(w, r) // ignore bad header; act as anonymous
				return
			}
			claims, err := signer.Parse(tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearer(h string) (string, error) {
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return "", errors.New("no bearer")
	}
	return strings.TrimSpace(h[len("Bearer "):]), nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="passwarden"`)
	apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", detail)
}
