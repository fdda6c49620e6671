package weighting

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurimetrics/domain/caselaw"
)

var reference = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func caseFiledOn(date string) caselaw.CaseRecord {
	return caselaw.CaseRecord{
		ID:         "case-1",
		JudgeID:    "judge-1",
		CaseType:   "civil",
		FilingDate: date,
	}
}

func TestWeighBoundsAndMonotonicity(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	cases := []caselaw.CaseRecord{
		caseFiledOn("2025-12-01"),
		caseFiledOn("2024-01-01"),
		caseFiledOn("2021-01-01"),
		caseFiledOn("2010-01-01"),
	}
	weighted := engine.Weigh(cases)
	require.Len(t, weighted, 4)

	for _, w := range weighted {
		assert.GreaterOrEqual(t, w.Weight, DefaultMinWeight)
		assert.LessOrEqual(t, w.Weight, 1.0)
	}

	// Older cases never weigh more than newer ones.
	for i := 1; i < len(weighted); i++ {
		assert.GreaterOrEqual(t, weighted[i-1].Weight, weighted[i].Weight)
	}

	// A very old case bottoms out at the floor instead of decaying further.
	assert.Equal(t, DefaultMinWeight, weighted[3].Weight)
	assert.Less(t, weighted[3].DecayFactor, DefaultMinWeight)
}

func TestWeighDecayCurve(t *testing.T) {
	engine := NewEngine(Config{DecayRate: 0.95, MinWeight: 0.5, ReferenceDate: reference})

	weighted := engine.Weigh([]caselaw.CaseRecord{caseFiledOn("2024-01-01")})
	require.Len(t, weighted, 1)

	age := weighted[0].YearsOld
	assert.InDelta(t, 2.0, age, 0.01)
	assert.InDelta(t, math.Pow(0.95, age), weighted[0].Weight, 1e-9)
}

func TestWeighMissingDateGetsFloorAndOldestAge(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	undated := caselaw.CaseRecord{ID: "case-2", JudgeID: "judge-1", CaseType: "civil"}
	weighted := engine.Weigh([]caselaw.CaseRecord{caseFiledOn("2019-06-01"), undated})
	require.Len(t, weighted, 2)

	flagged := weighted[1]
	assert.True(t, flagged.DateMissing)
	assert.Equal(t, DefaultMinWeight, flagged.Weight)
	assert.Equal(t, weighted[0].YearsOld, flagged.YearsOld)
}

func TestWeighDecisionDatePreferredOverFiling(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	rec := caseFiledOn("2020-01-01")
	rec.DecisionDate = "2025-07-01"
	weighted := engine.Weigh([]caselaw.CaseRecord{rec})
	require.Len(t, weighted, 1)
	assert.Less(t, weighted[0].YearsOld, 1.0)
}

func TestEffectiveCount(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	weighted := engine.Weigh([]caselaw.CaseRecord{
		caseFiledOn("2025-12-31"),
		caseFiledOn("2010-01-01"),
	})
	total := EffectiveCount(weighted)
	assert.Greater(t, total, 1.4)
	assert.Less(t, total, 2.0)
}

func TestWeightedRate(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	recent := caseFiledOn("2025-12-01")
	recent.Outcome = "case settled"
	old := caseFiledOn("2015-01-01")
	old.Outcome = "dismissed"

	weighted := engine.Weigh([]caselaw.CaseRecord{recent, old})
	rate := WeightedRate(weighted, func(c caselaw.CaseRecord) bool {
		return c.Outcome == "case settled"
	})

	// The recent settled case carries more weight than the old dismissal.
	assert.Greater(t, rate, 0.5)
	assert.Less(t, rate, 1.0)

	assert.Zero(t, WeightedRate(nil, func(caselaw.CaseRecord) bool { return true }))
}

func TestWeightedMeanExcludesNonFinite(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	a := caseFiledOn("2025-01-01")
	a.CaseValue = 100
	b := caseFiledOn("2025-01-01")
	b.CaseValue = math.NaN()

	weighted := engine.Weigh([]caselaw.CaseRecord{a, b})
	mean, ok := WeightedMean(weighted, func(c caselaw.CaseRecord) (float64, bool) {
		return c.CaseValue, true
	})
	require.True(t, ok)
	assert.InDelta(t, 100, mean, 1e-9)

	_, ok = WeightedMean(nil, func(c caselaw.CaseRecord) (float64, bool) { return 0, false })
	assert.False(t, ok)
}

func TestRecencyDistribution(t *testing.T) {
	engine := NewEngine(Config{ReferenceDate: reference})

	weighted := engine.Weigh([]caselaw.CaseRecord{
		caseFiledOn("2025-09-01"),
		caseFiledOn("2025-03-01"),
		caseFiledOn("2021-01-01"),
		caseFiledOn("2024-06-01"),
	})
	withinOne, overThree, oldest := RecencyDistribution(weighted)
	assert.InDelta(t, 50.0, withinOne, 1e-9)
	assert.InDelta(t, 25.0, overThree, 1e-9)
	assert.InDelta(t, 5.0, oldest, 0.01)

	withinOne, overThree, oldest = RecencyDistribution(nil)
	assert.Zero(t, withinOne)
	assert.Zero(t, overThree)
	assert.Zero(t, oldest)
}
