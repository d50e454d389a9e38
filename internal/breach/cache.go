package breach

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RangeCache stores raw range responses by hash prefix.
type RangeCache interface {
	Get(ctx context.Context, prefix string) (string, bool)
	Set(ctx context.Context, prefix, body string)
}

const (
	rangeKeyPrefix  = "pw:range:"
	DefaultCacheTTL = 24 * time.Hour
	cacheOpTimeout  = 150 * time.Millisecond
)

// RedisCache is a fail-open RangeCache: any Redis error is a miss, logged once.
type RedisCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	shortTO time.Duration
	log     *zap.Logger
	warn    sync.Once
}

// NewRedisCache returns a cache over rdb. A nil client yields a cache that always misses.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{
		rdb:     rdb,
		ttl:     ttl,
		shortTO: cacheOpTimeout,
		log:     log.With(zap.String("component", "breach-cache")),
	}
}

func (c *RedisCache) key(prefix string) string { return rangeKeyPrefix + prefix }

func (c *RedisCache) Get(ctx context.Context, prefix string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, c.shortTO)
	defer cancel()

	body, err := c.rdb.Get(ctx, c.key(prefix)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.warnOnce("cache get failed; bypassing cache", err)
		return "", false
	}
	return body, true
}

func (c *RedisCache) Set(ctx context.Context, prefix, body string) {
	if c == nil || c.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.shortTO)
	defer cancel()

	if err := c.rdb.Set(ctx, c.key(prefix), body, c.ttl).Err(); err != nil {
		c.warnOnce("cache set failed (muted next)", err)
	}
}

func (c *RedisCache) warnOnce(msg string, err error) {
	c.warn.Do(func() {
		c.log.Warn(msg, zap.Error(err))
	})
}
