package ports

import (
	"context"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
)

// JudgeMetrics is the per-judge headline metric row used for peer baselines.
type JudgeMetrics struct {
	JudgeID                core.JudgeID
	CaseCount              int
	SettlementRate         float64
	MotionGrantRate        float64
	AvgDurationDays        float64
	PlaintiffFavorableRate float64
}

// CaseSource is the case-record source-of-record.
type CaseSource interface {
	// CasesForJudge returns one judge's cases ordered by filing date,
	// with opinion text joined in.
	CasesForJudge(ctx context.Context, judgeID core.JudgeID) ([]caselaw.CaseRecord, error)

	// PeerJudges returns judge IDs sharing the given scope.
	PeerJudges(ctx context.Context, scope string, scopeID string) ([]core.JudgeID, error)

	// CasesForJudgeSince returns a judge's cases filed on or after the cutoff,
	// for trailing-window baseline pools.
	CasesForJudgeSince(ctx context.Context, judgeID core.JudgeID, cutoff core.Timestamp) ([]caselaw.CaseRecord, error)
}
