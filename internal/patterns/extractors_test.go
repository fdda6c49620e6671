package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurimetrics/domain/caselaw"
)

func civilCase(outcome string, value float64) caselaw.CaseRecord {
	return caselaw.CaseRecord{
		JudgeID:   "judge-1",
		CaseType:  "civil",
		Outcome:   outcome,
		CaseValue: value,
	}
}

func TestExtractOutcomesThreeCivilCases(t *testing.T) {
	cases := []caselaw.CaseRecord{
		civilCase("settled at mediation", 40_000),
		civilCase("case settled", 90_000),
		civilCase("dismissed", 15_000),
	}
	analysis := ExtractOutcomes(cases)

	require.Len(t, analysis.Patterns, 1)
	p := analysis.Patterns[0]
	assert.Equal(t, "civil", p.CaseType)
	assert.Equal(t, 3, p.CaseCount)
	assert.Equal(t, 2, p.SettledCount)
	assert.Equal(t, 1, p.DismissedCount)
	assert.InDelta(t, 2.0/3.0, p.SettlementRate, 1e-9)
	assert.InDelta(t, 65, p.Confidence, 1e-9)

	assert.InDelta(t, 2.0/3.0, analysis.OverallSettlementRate, 1e-9)
	assert.Equal(t, 3, analysis.SampleSize)
	assert.InDelta(t, 65, analysis.Confidence, 1e-9)
}

func TestExtractOutcomesValueTrendEmitsEmptyBuckets(t *testing.T) {
	analysis := ExtractOutcomes([]caselaw.CaseRecord{civilCase("settled", 30_000)})

	require.Len(t, analysis.ValueTrend, 4)
	assert.Equal(t, "under_50k", analysis.ValueTrend[0].Label)
	assert.Equal(t, 1, analysis.ValueTrend[0].CaseCount)
	assert.InDelta(t, 1.0, analysis.ValueTrend[0].SettlementRate, 1e-9)
	for _, bucket := range analysis.ValueTrend[1:] {
		assert.Zero(t, bucket.CaseCount)
		assert.Zero(t, bucket.SettlementRate)
	}
}

func TestExtractOutcomesGroupsSortedByCaseType(t *testing.T) {
	cases := []caselaw.CaseRecord{
		{CaseType: "tort", Outcome: "settled"},
		{CaseType: "contract", Outcome: "dismissed"},
	}
	analysis := ExtractOutcomes(cases)
	require.Len(t, analysis.Patterns, 2)
	assert.Equal(t, "contract", analysis.Patterns[0].CaseType)
	assert.Equal(t, "tort", analysis.Patterns[1].CaseType)
}

func TestExtractMotions(t *testing.T) {
	cases := []caselaw.CaseRecord{
		{MotionType: "Motion to Dismiss", Outcome: "motion granted"},
		{MotionType: "Motion to Dismiss", Outcome: "motion denied"},
		{MotionType: "Motion to Dismiss", Outcome: "motion granted"},
		{Summary: "motion for summary judgment taken under advisement"},
		{Outcome: "settled", Summary: "resolved at mediation without dispositive filings"},
	}
	analysis := ExtractMotions(cases)

	// Four motion-bearing cases, three with a discernible ruling.
	assert.Equal(t, 4, analysis.SampleSize)
	assert.InDelta(t, 2.0/3.0, analysis.OverallGrantRate, 1e-9)

	require.Len(t, analysis.Patterns, 2)
	dismiss := analysis.Patterns[0]
	assert.Equal(t, "Motion to Dismiss", dismiss.MotionType)
	assert.Equal(t, 3, dismiss.MotionCount)
	assert.Equal(t, 2, dismiss.GrantedCount)
	assert.Equal(t, 1, dismiss.DeniedCount)
	assert.InDelta(t, 2.0/3.0, dismiss.GrantRate, 1e-9)
	assert.InDelta(t, 1.0/3.0, dismiss.DenyRate, 1e-9)

	msj := analysis.Patterns[1]
	assert.Equal(t, "Motion for Summary Judgment", msj.MotionType)
	assert.Zero(t, msj.GrantRate)
}

func TestExtractTimingSimpleTier(t *testing.T) {
	rec := caselaw.CaseRecord{
		CaseType:     "contract",
		CaseValue:    12_000,
		FilingDate:   "2025-01-01",
		DecisionDate: "2025-07-02",
	}
	analysis := ExtractTiming([]caselaw.CaseRecord{rec})

	require.Len(t, analysis.Tiers, 4)
	assert.Equal(t, 1, analysis.SampleSize)
	assert.InDelta(t, 182, analysis.OverallAvgDays, 1e-9)

	simple := analysis.Tiers[0]
	assert.Equal(t, caselaw.ComplexitySimple, simple.Tier)
	assert.Equal(t, 1, simple.CaseCount)
	assert.InDelta(t, 182, simple.AvgDays, 1e-9)
	assert.InDelta(t, 182, simple.MedianDays, 1e-9)
	assert.InDelta(t, 182, simple.MinDays, 1e-9)
	assert.InDelta(t, 182, simple.MaxDays, 1e-9)

	// The remaining tiers are emitted as empty placeholders.
	for _, tier := range analysis.Tiers[1:] {
		assert.Zero(t, tier.CaseCount)
		assert.Zero(t, tier.AvgDays)
	}
}

func TestExtractTimingExcludesOutlierDurations(t *testing.T) {
	negative := caselaw.CaseRecord{CaseType: "c", FilingDate: "2025-06-01", DecisionDate: "2025-01-01"}
	tooLong := caselaw.CaseRecord{CaseType: "c", FilingDate: "2010-01-01", DecisionDate: "2025-01-01"}
	undated := caselaw.CaseRecord{CaseType: "c"}
	ok := caselaw.CaseRecord{CaseType: "c", FilingDate: "2025-01-01", DecisionDate: "2025-03-01"}

	analysis := ExtractTiming([]caselaw.CaseRecord{negative, tooLong, undated, ok})
	assert.Equal(t, 1, analysis.SampleSize)
	assert.InDelta(t, 59, analysis.OverallAvgDays, 1e-9)
}

func TestExtractParties(t *testing.T) {
	cases := []caselaw.CaseRecord{
		{Summary: "Mr. Jones, pro se, against his landlord", Outcome: "settled"},
		{Summary: "Mrs. Smith, represented by counsel", Outcome: "dismissed"},
		{Summary: "Globex Corp, represented by counsel", Outcome: "dismissed"},
		{Summary: "Acme Inc. breach of contract", Outcome: "settled"},
	}
	analysis := ExtractParties(cases)

	assert.Equal(t, 4, analysis.SampleSize)
	assert.InDelta(t, 0.5, analysis.PlaintiffFavorableRate, 1e-9)
	assert.InDelta(t, 0.5, analysis.DefendantFavorableRate, 1e-9)
	assert.InDelta(t, 1.0, analysis.ProSeSuccessRate, 1e-9)
	assert.InDelta(t, 0.0, analysis.RepresentedSuccessRate, 1e-9)

	assert.InDelta(t, 0.5, analysis.IndividualFavorableRate, 1e-9)
	assert.InDelta(t, 0.5, analysis.CorporationFavorableRate, 1e-9)
	assert.InDelta(t, 0.5, analysis.IndividualVsCorporation, 1e-9)

	// Patterns are sorted by case count descending.
	require.NotEmpty(t, analysis.Patterns)
	for i := 1; i < len(analysis.Patterns); i++ {
		assert.GreaterOrEqual(t, analysis.Patterns[i-1].CaseCount, analysis.Patterns[i].CaseCount)
	}
}

func TestExtractValuesBracketCountInvariant(t *testing.T) {
	cases := []caselaw.CaseRecord{
		civilCase("settled", 5_000),
		civilCase("dismissed", 5_000),
		civilCase("judgment for plaintiff", 60_000),
		civilCase("pending", 60_000),
		civilCase("settled", 2_000_000),
	}
	analysis := ExtractValues(cases)

	require.Len(t, analysis.Brackets, 9)
	total := 0
	for _, b := range analysis.Brackets {
		assert.Equal(t, b.CaseCount, b.SettledCount+b.DismissedCount+b.JudgmentCount+b.OtherCount,
			"bracket %s disposition counts must sum to its case count", b.Label)
		total += b.CaseCount
	}
	assert.Equal(t, len(cases), total)
}

func TestExtractValuesHeadlineRates(t *testing.T) {
	cases := []caselaw.CaseRecord{
		civilCase("settled", 10_000),
		civilCase("dismissed", 20_000),
		civilCase("settled", 500_000),
		civilCase("settled", 1_500_000),
	}
	analysis := ExtractValues(cases)

	assert.InDelta(t, 0.5, analysis.LowValueSettlementRate, 1e-9)
	assert.InDelta(t, 1.0, analysis.HighValueSettlementRate, 1e-9)
	assert.InDelta(t, 0.75, analysis.OverallSettlementRate, 1e-9)
	assert.GreaterOrEqual(t, analysis.SettlementValueCorrelation, -1.0)
	assert.LessOrEqual(t, analysis.SettlementValueCorrelation, 1.0)
}

func TestSettlementValueCorrelationDegenerate(t *testing.T) {
	// Fewer than three valued cases yields a 0 signal, not an error.
	analysis := ExtractValues([]caselaw.CaseRecord{
		civilCase("settled", 1_000),
		civilCase("dismissed", 2_000),
	})
	assert.Zero(t, analysis.SettlementValueCorrelation)
}

func TestSampleConfidenceCurve(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 65}, {4, 65}, {5, 70}, {10, 75}, {20, 80}, {30, 85}, {50, 90}, {100, 95}, {5000, 95},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, SampleConfidence(tt.n), 1e-9, "n=%d", tt.n)
	}
}
