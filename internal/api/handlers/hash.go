package handlers

import (
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/apperr"
	"github.com/5w1tchy/passwarden/internal/api/httpx"
	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/5w1tchy/passwarden/internal/security/password"
)

type hashResp struct {
	Hash string `json:"hash"`
}

// Hash: POST /v1/hash with the configured hasher.
func Hash(h password.Hasher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in passwordReq
		if !httpx.DecodeJSON(w, r, &in) || !requirePassword(w, r, "password", in.Password) {
			return
		}
		out, err := h.Hash(in.Password)
		if apperr.HandleError(w, r, err) {
			return
		}
		httpx.OK(w, hashResp{Hash: out})
	})
}

type verifyReq struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

type verifyResp struct {
	Match bool `json:"match"`
}

// Verify: POST /v1/verify
func Verify(h password.Hasher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in verifyReq
		if !httpx.DecodeJSON(w, r, &in) || !requirePassword(w, r, "password", in.Password) {
			return
		}
		if in.Hash == "" {
			apperr.HandleError(w, r, pwerr.Invalid("hash", "must not be empty"))
			return
		}
		ok, err := h.Verify(in.Password, in.Hash)
		if err != nil {
			// malformed stored hash is the caller's input problem
			apperr.HandleError(w, r, pwerr.Invalid("hash", err.Error()))
			return
		}
		httpx.OK(w, verifyResp{Match: ok})
	})
}
