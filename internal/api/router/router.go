package router

import (
	"net/http"

	"github.com/5w1tchy/passwarden/internal/api/handlers"
	mw "github.com/5w1tchy/passwarden/internal/api/middlewares"
	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/5w1tchy/passwarden/internal/bruteforce"
	"github.com/5w1tchy/passwarden/internal/generator"
	jwtutil "github.com/5w1tchy/passwarden/internal/security/jwt"
	"github.com/5w1tchy/passwarden/internal/security/password"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Generator *generator.Generator
	Estimator *bruteforce.Estimator
	Breach    breach.Checker
	Hasher    password.Hasher
	Redis     *redis.Client

	// Signer is nil when no AUTH_JWT_SECRET is configured.
	Signer      *jwtutil.Signer
	RequireAuth bool

	// Upstream guards routes that reach the breach corpus. Optional.
	Upstream mw.Middleware
}

// Router wires the v1 API onto a ServeMux using Go 1.22 method patterns.
func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	// generation and hashing hand out secrets: gate them when auth is required
	gated := func(scope string, h http.Handler) http.Handler {
		if !d.RequireAuth {
			return h
		}
		return mw.Apply(h, mw.RequireAuth(d.Signer), mw.RequireScope(scope))
	}
	upstream := func(h http.Handler) http.Handler { return mw.Apply(h, d.Upstream) }

	mux.Handle("GET /healthz", handlers.Health(d.Redis))

	// Analysis
	mux.Handle("POST /v1/analyze", handlers.Analyze())
	mux.Handle("POST /v1/similarity", handlers.Similarity())
	mux.Handle("POST /v1/crack-time", handlers.CrackTime(d.Estimator))
	mux.Handle("POST /v1/validate", handlers.Validate())
	mux.Handle("POST /v1/breach", upstream(handlers.Breach(d.Breach)))

	// Generation
	mux.Handle("POST /v1/generate/rules", gated("generate", handlers.GenerateRules(d.Generator)))
	mux.Handle("POST /v1/generate/random", gated("generate", upstream(handlers.GenerateRandom(d.Generator))))
	mux.Handle("POST /v1/generate/phrase", gated("generate", handlers.GeneratePhrase(d.Generator)))
	mux.Handle("POST /v1/generate/mnemonic", gated("generate", handlers.GenerateMnemonic(d.Generator)))

	// Hashing
	mux.Handle("POST /v1/hash", gated("hash", handlers.Hash(d.Hasher)))
	mux.Handle("POST /v1/verify", gated("hash", handlers.Verify(d.Hasher)))

	return mux
}
