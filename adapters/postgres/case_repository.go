package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
	"jurimetrics/ports"
)

// CaseRepositoryImpl implements CaseSource for PostgreSQL.
type CaseRepositoryImpl struct {
	db *sqlx.DB
}

// NewCaseRepository creates a new PostgreSQL case repository.
func NewCaseRepository(db *sqlx.DB) ports.CaseSource {
	return &CaseRepositoryImpl{db: db}
}

const caseColumns = `
	c.id, c.judge_id, c.case_type, c.outcome, c.status, c.case_value,
	COALESCE(to_char(c.filing_date, 'YYYY-MM-DD'), '') AS filing_date,
	COALESCE(to_char(c.decision_date, 'YYYY-MM-DD'), '') AS decision_date,
	COALESCE(c.summary, '') AS summary,
	COALESCE(c.motion_type, '') AS motion_type,
	c.judgment_amount, c.claimed_amount,
	COALESCE(o.text, '') AS opinion_text,
	c.created_at`

// CasesForJudge returns one judge's cases ordered by filing date, with
// opinion text joined in.
func (r *CaseRepositoryImpl) CasesForJudge(ctx context.Context, judgeID core.JudgeID) ([]caselaw.CaseRecord, error) {
	var cases []caselaw.CaseRecord
	err := r.db.SelectContext(ctx, &cases, `
		SELECT `+caseColumns+`
		FROM cases c
		LEFT JOIN opinions o ON o.case_id = c.id
		WHERE c.judge_id = $1
		ORDER BY c.filing_date NULLS LAST, c.id`, judgeID)
	if err != nil {
		return nil, fmt.Errorf("select cases for judge %s: %w", judgeID, err)
	}
	return cases, nil
}

// CasesForJudgeSince returns a judge's cases filed on or after the cutoff.
// Opinion text is skipped; baseline pools only need the structured fields.
func (r *CaseRepositoryImpl) CasesForJudgeSince(ctx context.Context, judgeID core.JudgeID, cutoff core.Timestamp) ([]caselaw.CaseRecord, error) {
	var cases []caselaw.CaseRecord
	err := r.db.SelectContext(ctx, &cases, `
		SELECT
			c.id, c.judge_id, c.case_type, c.outcome, c.status, c.case_value,
			COALESCE(to_char(c.filing_date, 'YYYY-MM-DD'), '') AS filing_date,
			COALESCE(to_char(c.decision_date, 'YYYY-MM-DD'), '') AS decision_date,
			COALESCE(c.summary, '') AS summary,
			COALESCE(c.motion_type, '') AS motion_type,
			c.judgment_amount, c.claimed_amount,
			'' AS opinion_text,
			c.created_at
		FROM cases c
		WHERE c.judge_id = $1 AND c.filing_date >= $2
		ORDER BY c.filing_date, c.id`, judgeID, cutoff.Time())
	if err != nil {
		return nil, fmt.Errorf("select cases for judge %s since %s: %w", judgeID, cutoff.Time().Format("2006-01-02"), err)
	}
	return cases, nil
}

// PeerJudges returns judge IDs sharing a jurisdiction or court scope.
func (r *CaseRepositoryImpl) PeerJudges(ctx context.Context, scope string, scopeID string) ([]core.JudgeID, error) {
	var column string
	switch scope {
	case "jurisdiction":
		column = "jurisdiction_id"
	case "court":
		column = "court_id"
	default:
		return nil, fmt.Errorf("unknown peer scope %q", scope)
	}

	var ids []core.JudgeID
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM judges WHERE `+column+` = $1 ORDER BY id`, scopeID)
	if err != nil {
		return nil, fmt.Errorf("select peer judges for %s %s: %w", scope, scopeID, err)
	}
	return ids, nil
}
