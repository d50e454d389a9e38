package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClientClaims identify an API client. Scope is a space separated list, e.g. "generate analyze".
type ClientClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func NewClientClaims(clientID, jti, scope string, ttl time.Duration) ClientClaims {
	now := time.Now()
	return ClientClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
