package middlewares

import (
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/reqid"
)

// RequestID keeps a well-formed inbound X-Request-ID or mints one, stores it
// on the request context and echoes it on the response before any handler
// writes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := reqid.Accept(r.Header.Get(reqid.Header))
		r = r.WithContext(reqid.NewContext(r.Context(), id))
		r.Header.Set(reqid.Header, id)
		w.Header().Set(reqid.Header, id)
		next.ServeHTTP(w, r)
	})
}

// GetRequestID returns the id RequestID assigned to r.
func GetRequestID(r *http.Request) string { return reqid.FromRequest(r) }
