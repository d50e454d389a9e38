// Package reqid carries the per-request correlation id between the HTTP
// middleware, problem responses and the access log.
package reqid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header is read on the way in and echoed on the way out.
const Header = "X-Request-ID"

type ctxKey struct{}

var wellFormed = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// New mints a random id of the form "pw-<uuid v4>".
func New() string { return "pw-" + uuid.NewString() }

// Accept returns id if a client may supply it, or a fresh one otherwise.
func Accept(id string) string {
	if wellFormed.MatchString(id) {
		return id
	}
	return New()
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromRequest prefers the context value and falls back to the header, so
// handlers mounted without the middleware still report what the client sent.
func FromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := FromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(Header)
}

// Field is the zap field attached to request-scoped log entries.
func Field(r *http.Request) zap.Field {
	id := FromRequest(r)
	if id == "" {
		id = "unknown"
	}
	return zap.String("request_id", id)
}
