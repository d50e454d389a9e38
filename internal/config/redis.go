package config

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from REDIS_URL, or from REDIS_ADDR and
// friends. It returns nil, nil when Redis is not configured.
func (c Config) NewRedisClient() (*redis.Client, error) {
	if c.RedisURL != "" {
		opt, err := redis.ParseURL(c.RedisURL) // e.g. rediss://default:<token>@host:port
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if opt.TLSConfig == nil && c.IsProduction() {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}
	if c.RedisAddr == "" {
		return nil, nil
	}
	opt := &redis.Options{
		Addr:         c.RedisAddr, // host:port (no scheme)
		Username:     c.RedisUser,
		Password:     c.RedisPassword,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if c.IsProduction() {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}
