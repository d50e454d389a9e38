package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
	"github.com/5w1tchy/passwarden/internal/api/httpx"
	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

// Counter is implemented by checkers that know how often a password leaked.
type Counter interface {
	Count(ctx context.Context, pw string) (int, error)
}

type breachResp struct {
	Compromised bool `json:"compromised"`
	Count       *int `json:"count,omitempty"`
}

// Breach: POST /v1/breach
func Breach(chk breach.Checker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in passwordReq
		if !httpx.DecodeJSON(w, r, &in) || !requirePassword(w, r, "password", in.Password) {
			return
		}
		if chk == nil {
			apperr.HandleError(w, r, fmt.Errorf("%w: no breach source configured", pwerr.ErrUnconfigured))
			return
		}

		if c, ok := chk.(Counter); ok {
			n, err := c.Count(r.Context(), in.Password)
			if apperr.HandleError(w, r, err) {
				return
			}
			httpx.OK(w, breachResp{Compromised: n > 0, Count: &n})
			return
		}

		hit, err := chk.IsCompromised(r.Context(), in.Password)
		if apperr.HandleError(w, r, err) {
			return
		}
		httpx.OK(w, breachResp{Compromised: hit})
	})
}
