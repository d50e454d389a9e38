package middlewares

import (
	"net/http"
	"slices"

	"go.uber.org/zap"
)

// Cors allows browser calls from the listed origins. An empty list allows none
// but still answers preflights for same-origin tools.
func Cors(allowedOrigins []string, log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	allowed := func(origin string) bool { return slices.Contains(allowedOrigins, origin) }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !allowed(origin) {
				log.Info("cors: blocked origin",
					zap.String("origin", origin), zap.String("method", r.Method), zap.String("path", r.URL.Path))
				http.Error(w, "Origin not allowed", http.StatusForbidden)
				return
			}

			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}

			// Allow common headers + our Request-ID
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Expose useful response headers to the browser (incl. X-Request-ID)
			w.Header().Set("Access-Control-Expose-Headers",
				"X-Request-ID, X-RateLimit-Policy, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After, X-Response-Time")

			// Fast-path preflight
			if r.Method == http.MethodOptions {
				w.Header().Add("Vary", "Access-Control-Request-Method")
				w.Header().Add("Vary", "Access-Control-Request-Headers")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
