package ports

import (
	"context"
	"time"

	"jurimetrics/domain/report"
)

// BaselineCache is a get/set cache port with TTL for computed baselines.
// Implementations must treat misses and backend failures as distinct: a miss
// returns (nil, false, nil); a backend failure returns a non-nil error so the
// caller can fall through to the next tier without aborting the read.
type BaselineCache interface {
	Get(ctx context.Context, key string) (*report.Baseline, bool, error)
	Set(ctx context.Context, key string, baseline *report.Baseline, ttl time.Duration) error
}

// BaselineStore persists computed baselines so a cold cache can warm from the
// last durable row before recomputing the peer pool.
type BaselineStore interface {
	Save(ctx context.Context, baseline *report.Baseline) error
	Load(ctx context.Context, scope report.BaselineScope, scopeID string) (*report.Baseline, error)
}
