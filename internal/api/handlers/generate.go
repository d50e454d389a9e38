package handlers

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/passwarden/internal/analysis"
	"github.com/5w1tchy/passwarden/internal/api/apperr"
	"github.com/5w1tchy/passwarden/internal/api/httpx"
	"github.com/5w1tchy/passwarden/internal/generator"
	"github.com/5w1tchy/passwarden/internal/naming"
	"github.com/5w1tchy/passwarden/internal/pwerr"
	"github.com/5w1tchy/passwarden/internal/validate"
)

// maxRulesLength caps the total requested by /v1/generate/rules.
const maxRulesLength = 256

type generatedResp struct {
	Password string                   `json:"password"`
	Strength *analysis.StrengthResult `json:"strength,omitempty"`
}

func generated(w http.ResponseWriter, pw string) {
	out := generatedResp{Password: pw}
	if s, err := analysis.Strength(pw); err == nil {
		out.Strength = &s
	}
	httpx.OK(w, out)
}

// GenerateRules: POST /v1/generate/rules
func GenerateRules(g *generator.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in generator.GenerationRules
		if !httpx.DecodeJSON(w, r, &in) {
			return
		}
		if apperr.HandleError(w, r, in.Validate()) {
			return
		}
		if in.Length() > maxRulesLength {
			apperr.HandleError(w, r, pwerr.Invalid("rules", "total length too large"))
			return
		}
		pw, err := g.Generate(in)
		if apperr.HandleError(w, r, err) {
			return
		}
		generated(w, pw)
	})
}

// GenerateRandom: POST /v1/generate/random. Ends when the client goes away.
func GenerateRandom(g *generator.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pw, err := g.GenerateReliableRandom(r.Context())
		if apperr.HandleError(w, r, err) {
			return
		}
		generated(w, pw)
	})
}

type phraseReq struct {
	Phrase string `json:"phrase"`
}

// GeneratePhrase: POST /v1/generate/phrase
func GeneratePhrase(g *generator.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in phraseReq
		if !httpx.DecodeJSON(w, r, &in) {
			return
		}
		if apperr.HandleError(w, r, validate.RequirePassword("phrase", in.Phrase, MaxPasswordLen)) {
			return
		}
		pw, err := g.GenerateFromPhrase(in.Phrase)
		if apperr.HandleError(w, r, err) {
			return
		}
		generated(w, pw)
	})
}

type mnemonicReq struct {
	Convention string `json:"convention,omitempty"`
}

// GenerateMnemonic: POST /v1/generate/mnemonic; convention defaults to camel.
func GenerateMnemonic(g *generator.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in mnemonicReq
		if !httpx.DecodeJSON(w, r, &in) {
			return
		}
		conv := naming.Camel
		if strings.TrimSpace(in.Convention) != "" {
			c, err := naming.Parse(in.Convention)
			if apperr.HandleError(w, r, err) {
				return
			}
			conv = c
		}
		pw, err := g.GenerateMnemonic(r.Context(), conv)
		if apperr.HandleError(w, r, err) {
			return
		}
		generated(w, pw)
	})
}
