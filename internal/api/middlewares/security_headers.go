package middlewares

import "net/http"

// SecurityHeaders sets headers for a JSON-only API whose responses carry
// secrets: nothing may be cached, framed or sniffed.
func SecurityHeaders(strict bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			h.Set("Pragma", "no-cache")

			// HSTS should only be effective over HTTPS (r.TLS != nil)
			if r.TLS != nil {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
			}

			// no documents are served, so nothing needs to load
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			if strict {
				h.Set("Cross-Origin-Opener-Policy", "same-origin")
				h.Set("Cross-Origin-Embedder-Policy", "require-corp")
				h.Set("Cross-Origin-Resource-Policy", "same-origin")
			}

			// Clean server banner
			h.Set("Server", "")

			next.ServeHTTP(w, r)
		})
	}
}
