package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Validate fails fast on configuration that would break at request time.
func (c Config) Validate() error {
	if c.RequireAuth && len(c.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters when AUTH_REQUIRED is set")
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if u, err := url.Parse(c.PwnedURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PWNED_API_URL: invalid url %q", c.PwnedURL)
	}
	if c.PwnedTimeout <= 0 {
		return errors.New("PWNED_TIMEOUT must be > 0")
	}
	if c.PwnedMaxRetries < 0 {
		return errors.New("PWNED_MAX_RETRIES must be >= 0")
	}
	if c.BloomFPRate <= 0 || c.BloomFPRate >= 1 {
		return errors.New("BREACH_BLOOM_FP must be in (0, 1)")
	}
	switch kind, arg := c.Wordlist(); kind {
	case "embedded":
	case "file", "s3":
		if arg == "" {
			return fmt.Errorf("WORDLIST_SOURCE %q: missing %s argument", c.WordlistSource, kind)
		}
		if kind == "s3" && c.AWSBucket == "" {
			return errors.New("WORDLIST_SOURCE=s3:<key> requires AWS_BUCKET")
		}
	default:
		return fmt.Errorf("WORDLIST_SOURCE %q: want embedded, file:<path> or s3:<key>", c.WordlistSource)
	}
	switch strings.ToLower(c.Hasher) {
	case "argon2id", "bcrypt", "sha1":
	default:
		return fmt.Errorf("HASHER %q: want argon2id, bcrypt or sha1", c.Hasher)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_RPS must be > 0 and RATE_LIMIT_BURST >= 1")
	}
	if c.StatsRetentionDays < 1 {
		return errors.New("STATS_RETENTION_DAYS must be >= 1")
	}
	if _, err := time.LoadLocation(c.StatsRetentionTZ); err != nil {
		return fmt.Errorf("STATS_RETENTION_TZ: %w", err)
	}
	if c.MaxBodySize <= 0 {
		return errors.New("MAX_BODY_SIZE must be > 0")
	}

	// Argon2 lower bounds (only enforce if explicitly set)
	if err := envMinUint("ARGON2_MEMORY", 65536); err != nil { // >= 64MiB
		return fmt.Errorf("ARGON2_MEMORY: %w", err)
	}
	if err := envMinUint("ARGON2_ITER", 2); err != nil {
		return fmt.Errorf("ARGON2_ITER: %w", err)
	}
	if err := envMinUint("ARGON2_PAR", 1); err != nil {
		return fmt.Errorf("ARGON2_PAR: %w", err)
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings worth logging on startup.
func (c Config) HardeningWarnings() []string {
	var warns []string

	if strings.EqualFold(c.Hasher, "sha1") {
		warns = append(warns, "HASHER=sha1 is unsalted; use it only to index breach corpora")
	}
	if c.PwnedDisabled && c.BreachDatabaseURL == "" && c.BreachBloomFile == "" {
		warns = append(warns, "no breach source configured; /v1/generate/random and /v1/breach will fail")
	}

	if c.IsProduction() {
		if os.Getenv("ARGON2_MEMORY") == "" || os.Getenv("ARGON2_ITER") == "" {
			warns = append(warns, "ARGON2_* not explicitly set; using code defaults. Set strong values in production")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if c.RedisURL == "" && c.RedisAddr != "" && (c.RedisUser == "" || c.RedisPassword == "") {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
		if !c.RequireAuth {
			warns = append(warns, "AUTH_REQUIRED is off; generation endpoints are public")
		}
	}
	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(ctx context.Context, rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

func envMinUint(key string, min uint64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil // unset -> code defaults apply elsewhere
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return fmt.Errorf("must be >= %d", min)
	}
	return nil
}
