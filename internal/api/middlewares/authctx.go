package middlewares

import (
	"context"

	jwtutil "github.com/5w1tchy/passwarden/internal/security/jwt"
)

type ctxKey int

const claimsKey ctxKey = 1

func WithClaims(ctx context.Context, c *jwtutil.ClientClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFrom(ctx context.Context) (*jwtutil.ClientClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtutil.ClientClaims)
	return c, ok && c != nil
}

// ClientID returns the token subject, or "" for anonymous requests.
func ClientID(ctx context.Context) string {
	if c, ok := ClaimsFrom(ctx); ok {
		return c.Subject
	}
	return ""
}
