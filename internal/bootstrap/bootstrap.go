// Package bootstrap turns a Config into the live components shared by the
// HTTP server and the command line tool.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/5w1tchy/passwarden/internal/breach"
	"github.com/5w1tchy/passwarden/internal/bruteforce"
	"github.com/5w1tchy/passwarden/internal/config"
	"github.com/5w1tchy/passwarden/internal/generator"
	"github.com/5w1tchy/passwarden/internal/metrics/lookupstats"
	"github.com/5w1tchy/passwarden/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/passwarden/internal/security/jwt"
	"github.com/5w1tchy/passwarden/internal/security/password"
	"github.com/5w1tchy/passwarden/internal/storage/s3"
	"github.com/5w1tchy/passwarden/internal/wordsource"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Config config.Config
	Log    *zap.Logger

	// Redis and DB are nil when not configured.
	Redis *redis.Client
	DB    *sql.DB

	// Breach is nil when every breach source is disabled.
	Breach    breach.Checker
	Estimator *bruteforce.Estimator
	Generator *generator.Generator
	Hasher    password.Hasher
	Signer    *jwtutil.Signer
	Stats     *lookupstats.Recorder
}

// Build connects every configured backend. On error, whatever was opened is closed.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger) (_ *App, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if a.Redis, err = cfg.NewRedisClient(); err != nil {
		return nil, err
	}
	if a.Redis != nil {
		if perr := config.PingRedis(ctx, a.Redis, 2*time.Second); perr != nil {
			// caching and rate limiting fail open; keep going
			log.Warn("redis unreachable", zap.Error(perr))
		} else {
			log.Info("connected to redis")
		}
	}

	if cfg.BreachDatabaseURL != "" {
		if a.DB, err = sqlconnect.ConnectDB(ctx, cfg.BreachDatabaseURL); err != nil {
			return nil, fmt.Errorf("breach database: %w", err)
		}
		log.Info("connected to breach database")
		if serr := lookupstats.EnsureSchema(ctx, a.DB); serr != nil {
			log.Warn("lookup stats table unavailable", zap.Error(serr))
		}
	}

	checker, err := buildBreach(cfg, a.Redis, a.DB, log)
	if err != nil {
		return nil, err
	}
	if checker != nil {
		a.Stats = lookupstats.Start(a.DB, 10000, 2, log)
		a.Breach = a.Stats.Wrap("api", checker)
	} else {
		log.Warn("no breach source configured")
	}

	if a.Estimator, err = buildEstimator(cfg); err != nil {
		return nil, err
	}

	src, err := buildWordSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []generator.Option{generator.WithWordSource(src), generator.WithLogger(log)}
	if a.Breach != nil {
		opts = append(opts, generator.WithBreachChecker(a.Breach))
	}
	a.Generator = generator.New(opts...)

	if a.Hasher, err = password.New(cfg.Hasher, password.LoadParamsFromEnv()); err != nil {
		return nil, err
	}

	if cfg.JWTSecret != "" {
		a.Signer, err = jwtutil.NewSigner(jwtutil.Config{Secret: []byte(cfg.JWTSecret), ClockSkew: cfg.ClockSkew})
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Close flushes stats and releases connections. It is safe on a partial App.
func (a *App) Close() {
	if a == nil {
		return
	}
	a.Stats.Shutdown()
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

// buildBreach chains the local sources before the remote range API so most
// hits never leave the process. A single source is returned unwrapped so it
// can still report leak counts.
func buildBreach(cfg config.Config, rdb *redis.Client, db *sql.DB, log *zap.Logger) (breach.Checker, error) {
	var chain breach.Chain

	if cfg.BreachBloomFile != "" {
		b, n, err := breach.LoadBloomFile(cfg.BreachBloomFile, cfg.BloomCapacity, cfg.BloomFPRate)
		if err != nil {
			return nil, fmt.Errorf("BREACH_BLOOM_FILE: %w", err)
		}
		log.Info("loaded breach bloom filter", zap.Int("hashes", n))
		chain = append(chain, b)
	}
	if db != nil {
		chain = append(chain, breach.NewSQLChecker(db))
	}
	if !cfg.PwnedDisabled {
		opts := []breach.Option{
			breach.WithBaseURL(cfg.PwnedURL),
			breach.WithHTTPClient(&http.Client{Timeout: cfg.PwnedTimeout}),
			breach.WithMaxRetries(uint64(cfg.PwnedMaxRetries)),
			breach.WithLogger(log),
		}
		if rdb != nil {
			opts = append(opts, breach.WithCache(breach.NewRedisCache(rdb, cfg.BreachCacheTTL, log)))
		}
		chain = append(chain, breach.NewPwnedClient(opts...))
	}

	switch len(chain) {
	case 0:
		return nil, nil
	case 1:
		return chain[0], nil
	}
	return chain, nil
}

func buildEstimator(cfg config.Config) (*bruteforce.Estimator, error) {
	speeds := bruteforce.DefaultSpeeds()
	if cfg.CrackSpeedFile != "" {
		t, err := bruteforce.LoadSpeedFile(cfg.CrackSpeedFile)
		if err != nil {
			return nil, fmt.Errorf("CRACK_SPEED_FILE: %w", err)
		}
		for alg, v := range t {
			speeds[alg] = v
		}
	}
	return bruteforce.NewEstimator(speeds.Override(os.LookupEnv)), nil
}

func buildWordSource(ctx context.Context, cfg config.Config) (wordsource.Source, error) {
	switch kind, arg := cfg.Wordlist(); kind {
	case "embedded", "":
		return wordsource.Embedded(), nil
	case "file":
		return wordsource.File{Path: arg}, nil
	case "s3":
		client, err := s3.NewClient(ctx, s3.Config{
			Endpoint:        cfg.AWSEndpoint,
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSBucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			PathStyle:       cfg.AWSEndpoint != "",
		})
		if err != nil {
			return nil, err
		}
		return wordsource.Object{Store: client, Key: arg}, nil
	default:
		return nil, errors.New("WORDLIST_SOURCE: unknown kind " + kind)
	}
}
