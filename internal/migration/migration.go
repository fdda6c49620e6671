package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jurimetrics/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createJudgesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create judges table")
	}
	if err := r.createCasesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create cases table")
	}
	if err := r.createOpinionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create opinions table")
	}
	if err := r.createBaselinesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create baselines table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createJudgesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS judges (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			jurisdiction_id TEXT NOT NULL,
			court_id TEXT,
			appointed_at DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *MigrationRunner) createCasesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cases (
			id UUID PRIMARY KEY,
			judge_id UUID NOT NULL REFERENCES judges(id),
			case_type TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			case_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			filing_date DATE,
			decision_date DATE,
			summary TEXT,
			motion_type TEXT,
			judgment_amount DOUBLE PRECISION,
			claimed_amount DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *MigrationRunner) createOpinionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS opinions (
			id UUID PRIMARY KEY,
			case_id UUID NOT NULL REFERENCES cases(id),
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *MigrationRunner) createBaselinesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS baselines (
			scope TEXT NOT NULL,
			scope_id TEXT NOT NULL,
			metrics JSONB NOT NULL,
			judge_count INTEGER NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (scope, scope_id)
		)`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_cases_judge_filing ON cases (judge_id, filing_date)`,
		`CREATE INDEX IF NOT EXISTS idx_judges_jurisdiction ON judges (jurisdiction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_judges_court ON judges (court_id)`,
		`CREATE INDEX IF NOT EXISTS idx_opinions_case ON opinions (case_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
