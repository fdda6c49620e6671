package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "jurimetrics/internal/errors"
	"jurimetrics/internal/logging"

	"jurimetrics/domain/report"
	"jurimetrics/ports"
)

// BaselineCache implements the fast baseline cache tier over Redis with
// graceful degradation. A disabled or unreachable backend reports misses and
// errors; it never takes the read path down.
type BaselineCache struct {
	client  *redis.Client
	enabled bool
	log     *logging.Logger
}

// New creates a Redis baseline cache. An empty addr disables the tier.
func New(addr, password string, db int, log *logging.Logger) *BaselineCache {
	if addr == "" {
		log.Warn("redis address not configured, baseline cache runs without a fast tier")
		return &BaselineCache{enabled: false, log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping failed, baseline cache runs without a fast tier: %v", err)
		return &BaselineCache{enabled: false, log: log}
	}

	log.Info("redis baseline cache connected at %s", addr)
	return &BaselineCache{client: client, enabled: true, log: log}
}

// Get returns (nil, false, nil) on miss and a non-nil error on backend
// failure so the caller can fall through to the next tier.
func (c *BaselineCache) Get(ctx context.Context, key string) (*report.Baseline, bool, error) {
	if !c.enabled {
		return nil, false, nil
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.CacheError("redis", err)
	}

	var baseline report.Baseline
	if err := json.Unmarshal(payload, &baseline); err != nil {
		// A corrupt row is treated as a miss; the write path will replace it.
		c.log.Warn("discarding corrupt baseline cache row %s: %v", key, err)
		return nil, false, nil
	}
	return &baseline, true, nil
}

// Set stores a baseline with the given TTL.
func (c *BaselineCache) Set(ctx context.Context, key string, baseline *report.Baseline, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	payload, err := json.Marshal(baseline)
	if err != nil {
		return apperrors.CacheError("redis", err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return apperrors.CacheError("redis", err)
	}
	return nil
}

// Enabled reports whether the fast tier is live.
func (c *BaselineCache) Enabled() bool {
	return c.enabled
}

// Close releases the Redis connection.
func (c *BaselineCache) Close() error {
	if c.enabled && c.client != nil {
		return c.client.Close()
	}
	return nil
}

var _ ports.BaselineCache = (*BaselineCache)(nil)
