package handlers

import (
	"math"
	"net/http"
	"strings"

	"github.com/5w1tchy/passwarden/internal/analysis"
	"github.com/5w1tchy/passwarden/internal/api/apperr"
	"github.com/5w1tchy/passwarden/internal/api/httpx"
	"github.com/5w1tchy/passwarden/internal/bruteforce"
	"github.com/5w1tchy/passwarden/internal/pwerr"
)

type passwordReq struct {
	Password string `json:"password"`
}

// Analyze: POST /v1/analyze
func Analyze() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in passwordReq
		if !httpx.DecodeJSON(w, r, &in) || !requirePassword(w, r, "password", in.Password) {
			return
		}
		report, err := analysis.Analyze(in.Password)
		if apperr.HandleError(w, r, err) {
			return
		}
		httpx.OK(w, report)
	})
}

type similarityReq struct {
	A string `json:"a"`
	B string `json:"b"`
}

type similarityResp struct {
	Similarity float64 `json:"similarity"`
}

// Similarity: POST /v1/similarity. Empty strings are allowed and score 0.
func Similarity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in similarityReq
		if !httpx.DecodeJSON(w, r, &in) {
			return
		}
		if len([]rune(in.A)) > MaxPasswordLen || len([]rune(in.B)) > MaxPasswordLen {
			apperr.HandleError(w, r, pwerr.Invalid("a/b", "too long"))
			return
		}
		httpx.OK(w, similarityResp{Similarity: analysis.Similarity(in.A, in.B)})
	})
}

type crackTimeReq struct {
	Password          string  `json:"password"`
	Algorithm         string  `json:"algorithm,omitempty"`
	AttemptsPerSecond float64 `json:"attempts_per_second,omitempty"`
	Unit              string  `json:"unit,omitempty"`
}

type crackTimeResp struct {
	Time              float64 `json:"time"`
	Infinite          bool    `json:"infinite,omitempty"`
	Unit              string  `json:"unit"`
	Algorithm         string  `json:"algorithm,omitempty"`
	AttemptsPerSecond float64 `json:"attempts_per_second"`
	Combinations      string  `json:"combinations"`
}

// CrackTime: POST /v1/crack-time. An explicit attempts_per_second wins over algorithm.
func CrackTime(est *bruteforce.Estimator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in crackTimeReq
		if !httpx.DecodeJSON(w, r, &in) || !requirePassword(w, r, "password", in.Password) {
			return
		}
		unit := bruteforce.Years
		if strings.TrimSpace(in.Unit) != "" {
			u, err := bruteforce.ParseTimeUnit(in.Unit)
			if apperr.HandleError(w, r, err) {
				return
			}
			unit = u
		}

		out := crackTimeResp{Unit: unit.String(), AttemptsPerSecond: in.AttemptsPerSecond}
		if in.AttemptsPerSecond == 0 {
			if in.Algorithm == "" {
				apperr.HandleError(w, r, pwerr.Invalid("algorithm", "or attempts_per_second is required"))
				return
			}
			alg, err := bruteforce.ParseHashAlgorithm(in.Algorithm)
			if apperr.HandleError(w, r, err) {
				return
			}
			speed, err := est.Speed(alg)
			if apperr.HandleError(w, r, err) {
				return
			}
			out.Algorithm = string(alg)
			out.AttemptsPerSecond = speed
		}

		t, err := bruteforce.Estimate(in.Password, out.AttemptsPerSecond, unit)
		if apperr.HandleError(w, r, err) {
			return
		}
		// JSON has no infinity
		if math.IsInf(t, 1) {
			out.Infinite = true
			t = math.MaxFloat64
		}
		out.Time = t
		out.Combinations = bruteforce.Combinations(in.Password).String()
		httpx.OK(w, out)
	})
}
