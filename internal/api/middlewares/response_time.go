package middlewares

import (
	"net/http"
	"time"

	"github.com/5w1tchy/passwarden/internal/api/reqid"
	"go.uber.org/zap"
)

type rtWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
	status      int
	bytes       int
}

func (w *rtWriter) stamp() {
	if !w.wroteHeader {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
		w.wroteHeader = true
	}
}

func (w *rtWriter) WriteHeader(code int) {
	w.status = code
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *rtWriter) Write(b []byte) (int, error) {
	w.stamp()
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// AccessLog stamps X-Response-Time and logs one line per request. Bodies are
// never logged: they carry passwords.
func AccessLog(log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &rtWriter{
				ResponseWriter: w,
				start:          time.Now(),
				status:         http.StatusOK,
			}
			next.ServeHTTP(rw, r)

			// If nothing was written (e.g., 204/HEAD), set it now.
			if !rw.wroteHeader {
				rw.Header().Set("X-Response-Time", time.Since(rw.start).String())
			}

			log.Info("request",
				reqid.Field(r),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.status),
				zap.Int("bytes", rw.bytes),
				zap.Duration("elapsed", time.Since(rw.start)))
		})
	}
}
