package cache

import (
	"context"
	"sync"
	"time"

	"jurimetrics/domain/report"
)

// item is a cached baseline with its expiration.
type item struct {
	baseline  *report.Baseline
	expiresAt time.Time
}

func (i *item) expired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// BaselineCache is a thread-safe in-process baseline cache with TTL.
// It is the default cache tier and the fallback when the shared tier is
// unreachable.
type BaselineCache struct {
	mu    sync.RWMutex
	items map[string]*item
	now   func() time.Time
}

// NewBaselineCache creates an in-process cache and starts its cleanup loop.
func NewBaselineCache() *BaselineCache {
	c := &BaselineCache{
		items: make(map[string]*item),
		now:   time.Now,
	}
	go c.cleanup()
	return c
}

// newClockedCache is for tests that need deterministic expiry.
func newClockedCache(now func() time.Time) *BaselineCache {
	return &BaselineCache{
		items: make(map[string]*item),
		now:   now,
	}
}

// cleanup removes expired items periodically
func (c *BaselineCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := c.now()
		c.mu.Lock()
		for key, it := range c.items {
			if it.expired(now) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// Get retrieves a baseline; (nil, false, nil) on miss or expiry.
func (c *BaselineCache) Get(_ context.Context, key string) (*report.Baseline, bool, error) {
	c.mu.RLock()
	it, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}
	if it.expired(c.now()) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return it.baseline, true, nil
}

// Set stores a baseline for the given TTL.
func (c *BaselineCache) Set(_ context.Context, key string, baseline *report.Baseline, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &item{
		baseline:  baseline,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Len reports the current item count (expired entries included until swept).
func (c *BaselineCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
