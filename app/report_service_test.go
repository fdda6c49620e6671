package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
	"jurimetrics/domain/report"
	"jurimetrics/internal/logging"
	"jurimetrics/internal/weighting"
)

var referenceDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeSource struct {
	cases []caselaw.CaseRecord
	err   error
}

func (f *fakeSource) CasesForJudge(ctx context.Context, judgeID core.JudgeID) ([]caselaw.CaseRecord, error) {
	return f.cases, f.err
}

func (f *fakeSource) PeerJudges(ctx context.Context, scope string, scopeID string) ([]core.JudgeID, error) {
	return nil, nil
}

func (f *fakeSource) CasesForJudgeSince(ctx context.Context, judgeID core.JudgeID, cutoff core.Timestamp) ([]caselaw.CaseRecord, error) {
	return f.cases, f.err
}

func newService(source *fakeSource) *ReportService {
	return NewReportService(source, nil, nil, logging.NewDefaultLogger(),
		weighting.DefaultDecayRate, weighting.DefaultMinWeight)
}

func docketCase(i int, outcome, summary string) caselaw.CaseRecord {
	return caselaw.CaseRecord{
		ID:           core.CaseID(fmt.Sprintf("case-%03d", i)),
		JudgeID:      "judge-1",
		CaseType:     "civil",
		Outcome:      outcome,
		Summary:      summary,
		CaseValue:    25_000,
		FilingDate:   "2025-01-01",
		DecisionDate: "2025-07-01",
	}
}

func mixedDocket(n int) []caselaw.CaseRecord {
	cases := make([]caselaw.CaseRecord, 0, n)
	for i := 0; i < n; i++ {
		outcome := "settled"
		if i%3 == 0 {
			outcome = "dismissed"
		}
		cases = append(cases, docketCase(i, outcome, ""))
	}
	return cases
}

func TestBuildReportRejectsEmptyCaseSet(t *testing.T) {
	svc := newService(&fakeSource{})
	_, err := svc.BuildReport(context.Background(), nil, "judge-1", "ohio", referenceDate)
	assert.ErrorIs(t, err, core.ErrNoCases)
}

func TestBuildReportRejectsZeroReferenceDate(t *testing.T) {
	svc := newService(&fakeSource{})
	_, err := svc.BuildReport(context.Background(), mixedDocket(3), "judge-1", "ohio", time.Time{})
	assert.ErrorIs(t, err, core.ErrInvalidReference)
}

func TestBuildReportSmallDocket(t *testing.T) {
	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), mixedDocket(30), "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	assert.Equal(t, 30, rep.Metadata.CaseCount)
	assert.Equal(t, report.TierLimited, rep.ConfidenceTier.Tier)
	assert.True(t, rep.LimitedData)
	assert.NotEmpty(t, rep.Metadata.ReportID)
	assert.NotEmpty(t, rep.ExecutiveSummary)
	assert.NotEmpty(t, rep.MethodologyNotes)
	assert.Nil(t, rep.DetailedFindings.Deviation, "no baseline service wired")

	require.NotEmpty(t, rep.MetricsTable)
	for _, row := range rep.MetricsTable {
		assert.NotEmpty(t, row.Category)
		assert.NotEmpty(t, row.Metric)
		assert.NotEmpty(t, row.Interpretation)
		assert.Nil(t, row.BaselineValue)
	}

	// 20 of 30 settle.
	assert.InDelta(t, 2.0/3.0, rep.DetailedFindings.Outcomes.OverallSettlementRate, 1e-9)
}

func TestFindingsValidateFlagsMissingSummaries(t *testing.T) {
	var partial report.DetailedFindings
	assert.ErrorIs(t, partial.Validate(), core.ErrMissingSummaries)

	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), mixedDocket(5), "judge-1", "ohio", referenceDate)
	require.NoError(t, err)
	assert.NoError(t, rep.DetailedFindings.Validate())
}

func TestBuildReportIsDeterministic(t *testing.T) {
	svc := newService(&fakeSource{})
	cases := mixedDocket(40)

	first, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)
	second, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	assert.Equal(t, first.MetricsTable, second.MetricsTable)
	assert.Equal(t, first.FlaggedAnomalies, second.FlaggedAnomalies)
	assert.Equal(t, first.DetailedFindings, second.DetailedFindings)
	assert.Equal(t, first.ExecutiveSummary, second.ExecutiveSummary)
}

func TestGenerateReportFetchesCases(t *testing.T) {
	svc := newService(&fakeSource{cases: mixedDocket(10)})
	rep, err := svc.GenerateReport(context.Background(), "judge-1", "ohio", referenceDate)
	require.NoError(t, err)
	assert.Equal(t, 10, rep.Metadata.CaseCount)
}

func TestAnomalyHighMotionGrantRate(t *testing.T) {
	cases := make([]caselaw.CaseRecord, 0, 25)
	for i := 0; i < 25; i++ {
		rec := docketCase(i, "motion granted", "")
		rec.MotionType = "Motion to Dismiss"
		cases = append(cases, rec)
	}

	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	found := false
	for _, a := range rep.FlaggedAnomalies {
		if a.Category == "motion" {
			found = true
			assert.Equal(t, report.SeverityMedium, a.Severity)
			assert.Contains(t, a.Description, "unusually high")
		}
	}
	assert.True(t, found, "a grant rate above 80% across 25 motions must be flagged")
}

func TestAnomalyMotionRateNeedsMinimumSample(t *testing.T) {
	cases := make([]caselaw.CaseRecord, 0, 10)
	for i := 0; i < 10; i++ {
		rec := docketCase(i, "motion granted", "")
		rec.MotionType = "Motion to Dismiss"
		cases = append(cases, rec)
	}

	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	for _, a := range rep.FlaggedAnomalies {
		assert.NotEqual(t, "motion", a.Category, "10 motions are below the flag threshold")
	}
}

func TestAnomalyShortDurations(t *testing.T) {
	cases := make([]caselaw.CaseRecord, 0, 10)
	for i := 0; i < 10; i++ {
		rec := docketCase(i, "settled", "")
		rec.DecisionDate = "2025-01-20" // 19 days
		cases = append(cases, rec)
	}

	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	found := false
	for _, a := range rep.FlaggedAnomalies {
		if a.Metric == report.MetricAvgDuration {
			found = true
			assert.Equal(t, report.SeverityLow, a.Severity)
		}
	}
	assert.True(t, found, "a 19-day average duration must be flagged")
}

func TestAnomaliesSortedBySeverity(t *testing.T) {
	// Long durations (high) plus a lopsided motion grant rate (medium).
	cases := make([]caselaw.CaseRecord, 0, 25)
	for i := 0; i < 25; i++ {
		rec := docketCase(i, "motion granted", "")
		rec.MotionType = "Motion to Compel"
		rec.FilingDate = "2024-01-01"
		rec.DecisionDate = "2025-07-01" // 547 days
		cases = append(cases, rec)
	}

	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(rep.FlaggedAnomalies), 2)
	for i := 1; i < len(rep.FlaggedAnomalies); i++ {
		assert.GreaterOrEqual(t,
			report.SeverityRank(rep.FlaggedAnomalies[i-1].Severity),
			report.SeverityRank(rep.FlaggedAnomalies[i].Severity))
	}
	assert.Equal(t, report.SeverityHigh, rep.FlaggedAnomalies[0].Severity)
}

func TestExecutiveSummaryCitesTopAnomalies(t *testing.T) {
	cases := make([]caselaw.CaseRecord, 0, 25)
	for i := 0; i < 25; i++ {
		rec := docketCase(i, "motion granted", "")
		rec.MotionType = "Motion to Dismiss"
		cases = append(cases, rec)
	}

	svc := newService(&fakeSource{})
	rep, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio", referenceDate)
	require.NoError(t, err)

	require.NotEmpty(t, rep.FlaggedAnomalies)
	assert.Contains(t, rep.ExecutiveSummary, fmt.Sprintf("analyzes %d cases", len(cases)))
	assert.Contains(t, rep.ExecutiveSummary, rep.FlaggedAnomalies[0].Description)
}

func TestLegacyAnalytics(t *testing.T) {
	analytics := LegacyAnalytics(mixedDocket(30))

	assert.InDelta(t, 100*2.0/3.0, analytics.SettlementPct.Value, 1e-9)
	assert.Equal(t, 30, analytics.SettlementPct.SampleSize)
	// Settlements are plaintiff-favorable, dismissals are not.
	assert.InDelta(t, 100*2.0/3.0, analytics.PlaintiffFavorPct.Value, 1e-9)
	assert.InDelta(t, 100-analytics.PlaintiffFavorPct.Value, analytics.DefendantFavorPct.Value, 1e-9)
}

func TestGenerateAugmentedAnalyticsWithoutEngine(t *testing.T) {
	svc := newService(&fakeSource{cases: mixedDocket(12)})
	analytics, err := svc.GenerateAugmentedAnalytics(context.Background(), "judge-1")
	require.NoError(t, err)
	assert.InDelta(t, 100*2.0/3.0, analytics.SettlementPct.Value, 1e-9)
}

func TestGenerateAugmentedAnalyticsNoCases(t *testing.T) {
	svc := newService(&fakeSource{})
	_, err := svc.GenerateAugmentedAnalytics(context.Background(), "judge-1")
	assert.ErrorIs(t, err, core.ErrNoCases)
}
