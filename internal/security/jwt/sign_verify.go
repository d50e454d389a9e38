package jwtutil

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrWeakSecret = errors.New("jwt secret must be at least 32 bytes")

// Signer issues and verifies HS256 client tokens.
type Signer struct {
	cfg Config
}

func NewSigner(cfg Config) (*Signer, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrWeakSecret
	}
	return &Signer{cfg: cfg}, nil
}

// Sign returns (tokenString, jti).
func (s *Signer) Sign(clientID, scope string, ttl time.Duration) (string, string, error) {
	jti, err := randJTI()
	if err != nil {
		return "", "", err
	}
	claims := NewClientClaims(clientID, jti, scope, ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok, err := t.SignedString(s.cfg.Secret)
	return tok, jti, err
}

// Parse verifies HS256 signature and leeway, returning claims.
func (s *Signer) Parse(tokenStr string) (*ClientClaims, error) {
	parser := jwt.NewParser(jwt.WithLeeway(s.cfg.ClockSkew), jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &ClientClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ClientClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// HasScope reports whether want is one of the claim's scopes. An empty scope grants everything.
func (c *ClientClaims) HasScope(want string) bool {
	if c.Scope == "" {
		return true
	}
	for _, s := range strings.Fields(c.Scope) {
		if s == want {
			return true
		}
	}
	return false
}

func randJTI() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
