package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"jurimetrics/domain/core"
	"jurimetrics/domain/report"
	"jurimetrics/ports"
)

// BaselineRepositoryImpl implements BaselineStore for PostgreSQL. Metrics are
// stored as JSONB so the metric set can grow without migrations.
type BaselineRepositoryImpl struct {
	db *sqlx.DB
}

// NewBaselineRepository creates a new PostgreSQL baseline repository.
func NewBaselineRepository(db *sqlx.DB) ports.BaselineStore {
	return &BaselineRepositoryImpl{db: db}
}

// Save upserts the latest baseline for a scope.
func (r *BaselineRepositoryImpl) Save(ctx context.Context, baseline *report.Baseline) error {
	metricsJSON, err := json.Marshal(baseline.Metrics)
	if err != nil {
		return fmt.Errorf("marshal baseline metrics: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO baselines (scope, scope_id, metrics, judge_count, generated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scope, scope_id) DO UPDATE SET
			metrics = EXCLUDED.metrics,
			judge_count = EXCLUDED.judge_count,
			generated_at = EXCLUDED.generated_at`,
		baseline.Scope, baseline.ScopeID, metricsJSON, baseline.JudgeCount, baseline.GeneratedAt.Time())
	if err != nil {
		return fmt.Errorf("upsert baseline %s/%s: %w", baseline.Scope, baseline.ScopeID, err)
	}
	return nil
}

// Load returns the last persisted baseline for a scope, or
// core.ErrBaselineNotFound when none exists.
func (r *BaselineRepositoryImpl) Load(ctx context.Context, scope report.BaselineScope, scopeID string) (*report.Baseline, error) {
	var row struct {
		Scope       report.BaselineScope `db:"scope"`
		ScopeID     string               `db:"scope_id"`
		Metrics     []byte               `db:"metrics"`
		JudgeCount  int                  `db:"judge_count"`
		GeneratedAt time.Time            `db:"generated_at"`
	}

	err := r.db.GetContext(ctx, &row, `
		SELECT scope, scope_id, metrics, judge_count, generated_at
		FROM baselines
		WHERE scope = $1 AND scope_id = $2`, scope, scopeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrBaselineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select baseline %s/%s: %w", scope, scopeID, err)
	}

	metrics := map[string]report.BaselineMetric{}
	if err := json.Unmarshal(row.Metrics, &metrics); err != nil {
		return nil, fmt.Errorf("unmarshal baseline metrics: %w", err)
	}

	return &report.Baseline{
		Scope:       row.Scope,
		ScopeID:     row.ScopeID,
		Metrics:     metrics,
		JudgeCount:  row.JudgeCount,
		GeneratedAt: core.NewTimestamp(row.GeneratedAt),
	}, nil
}
