// Package redis provides the Redis-backed read cache for forecast and
// watchlist queries.  The filesystem stores remain the source of truth; the
// cache only absorbs read traffic from the HTTP API.
package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = apperrors.New(apperrors.ErrCodeNotFound, "cache miss")

// Options configures the client connection and cache behaviour.
type Options struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyPrefix    string
	DefaultTTL   time.Duration
}

// Cache is the read-cache contract the API layer depends on.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

type redisCache struct {
	client     *redis.Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
}

// NewCache connects to Redis with opts and returns a Cache.  The connection
// is lazy; use Ping to verify reachability at startup.
func NewCache(opts Options, logger logging.Logger) Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "georisk"
	}
	ttl := opts.DefaultTTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}

	return &redisCache{
		client:     client,
		logger:     logger.Named("redis"),
		prefix:     prefix + ":",
		defaultTTL: ttl,
	}
}

func (c *redisCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expirations by ±10% so cached cycles don't all expire in
// the same instant.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to get from cache").
			WithDetail(key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode cached value").
			WithDetail(key)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode value for cache").
			WithDetail(key)
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, jitterTTL(ttl)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to set cache key").
			WithDetail(key)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, fullKeys...).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to delete cache keys")
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeServiceUnavailable, "redis unreachable")
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// NopCache is the Cache used when Redis is disabled: every Get misses and
// writes are discarded.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) error { return ErrCacheMiss }
func (NopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NopCache) Delete(context.Context, ...string) error { return nil }
func (NopCache) Ping(context.Context) error              { return nil }
func (NopCache) Close() error                            { return nil }
