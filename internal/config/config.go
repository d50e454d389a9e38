// Package config reads the process configuration from the environment.
// Binaries call godotenv.Load first so a local .env file can fill the gaps.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/passwarden/internal/breach"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	// both set: serve TLS
	TLSCertFile string
	TLSKeyFile  string

	// comma separated browser origins allowed by CORS
	CORSOrigins []string

	// Breach range API
	PwnedURL        string
	PwnedTimeout    time.Duration
	PwnedMaxRetries int
	PwnedDisabled   bool

	// Redis: a URL wins over split fields; both empty disables caching and rate limiting.
	RedisURL      string
	RedisAddr     string
	RedisUser     string
	RedisPassword string

	BreachCacheTTL    time.Duration
	BreachDatabaseURL string
	BreachBloomFile   string
	BloomCapacity     uint
	BloomFPRate       float64

	// breach_lookup_events retention; only used with BreachDatabaseURL
	StatsRetentionDays int
	StatsRetentionAt   string
	StatsRetentionTZ   string

	CrackSpeedFile string

	// "embedded", "file:<path>" or "s3:<key>"
	WordlistSource string

	AWSEndpoint        string
	AWSRegion          string
	AWSBucket          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	Hasher string

	JWTSecret   string
	ClockSkew   time.Duration
	RequireAuth bool

	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodySize    int64
}

// Load reads every key with its default. It never fails; call Validate.
func Load() Config {
	return Config{
		AppEnv:   envString("APP_ENV", "development"),
		LogLevel: envString("LOG_LEVEL", ""),
		HTTPAddr: envString("HTTP_ADDR", ":3000"),

		TLSCertFile: os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:  os.Getenv("TLS_KEY_FILE"),
		CORSOrigins: envList("CORS_ORIGINS"),

		PwnedURL:        envString("PWNED_API_URL", breach.DefaultBaseURL),
		PwnedTimeout:    envDuration("PWNED_TIMEOUT", 5*time.Second),
		PwnedMaxRetries: envInt("PWNED_MAX_RETRIES", breach.DefaultMaxRetries),
		PwnedDisabled:   envBool("PWNED_DISABLE"),

		RedisURL:      firstNonEmpty(os.Getenv("REDIS_URL"), os.Getenv("UPSTASH_REDIS_URL")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		BreachCacheTTL:    envDuration("BREACH_CACHE_TTL", breach.DefaultCacheTTL),
		BreachDatabaseURL: os.Getenv("BREACH_DATABASE_URL"),
		BreachBloomFile:   os.Getenv("BREACH_BLOOM_FILE"),
		BloomCapacity:     uint(envInt("BREACH_BLOOM_CAPACITY", 1_000_000)),
		BloomFPRate:       envFloat("BREACH_BLOOM_FP", 0.001),

		StatsRetentionDays: envInt("STATS_RETENTION_DAYS", 30),
		StatsRetentionAt:   envString("STATS_RETENTION_AT", "03:00"),
		StatsRetentionTZ:   envString("STATS_RETENTION_TZ", "UTC"),

		CrackSpeedFile: os.Getenv("CRACK_SPEED_FILE"),
		WordlistSource: envString("WORDLIST_SOURCE", "embedded"),

		AWSEndpoint:        os.Getenv("AWS_ENDPOINT"),
		AWSRegion:          envString("AWS_REGION", "us-east-1"),
		AWSBucket:          os.Getenv("AWS_BUCKET"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),

		Hasher: envString("HASHER", "argon2id"),

		JWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		ClockSkew:   time.Duration(envInt("AUTH_CLOCK_SKEW_SEC", 60)) * time.Second,
		RequireAuth: envBool("AUTH_REQUIRED"),

		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),
		MaxBodySize:    int64(envInt("MAX_BODY_SIZE", 1<<16)),
	}
}

func (c Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

func (c Config) RedisConfigured() bool { return c.RedisURL != "" || c.RedisAddr != "" }

// Wordlist splits WordlistSource into its kind and argument.
func (c Config) Wordlist() (kind, arg string) {
	kind, arg, _ = strings.Cut(c.WordlistSource, ":")
	return strings.ToLower(strings.TrimSpace(kind)), strings.TrimSpace(arg)
}

// --- helpers ---

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// envDuration accepts Go durations ("5s") or bare seconds ("5").
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c Config) String() string {
	// secrets stay out of logs
	return fmt.Sprintf("env=%s addr=%s hasher=%s wordlist=%s redis=%t breach_db=%t bloom=%t",
		c.AppEnv, c.HTTPAddr, c.Hasher, c.WordlistSource, c.RedisConfigured(),
		c.BreachDatabaseURL != "", c.BreachBloomFile != "")
}
