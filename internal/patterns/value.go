package patterns

import (
	"math"

	"github.com/montanaflynn/stats"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/report"
)

// valueBrackets are the nine fixed monetary brackets. Upper bound 0 means
// unbounded. All nine are emitted even when empty.
var valueBrackets = []struct {
	label string
	lower float64
	upper float64
}{
	{"under_10k", 0, 10_000},
	{"10k_to_25k", 10_000, 25_000},
	{"25k_to_50k", 25_000, 50_000},
	{"50k_to_100k", 50_000, 100_000},
	{"100k_to_250k", 100_000, 250_000},
	{"250k_to_500k", 250_000, 500_000},
	{"500k_to_1m", 500_000, 1_000_000},
	{"1m_to_5m", 1_000_000, 5_000_000},
	{"5m_plus", 5_000_000, 0},
}

// Headline value thresholds.
const (
	highValueThreshold = 250_000.0
	lowValueThreshold  = 50_000.0
)

// ExtractValues buckets cases into the nine fixed monetary brackets and
// computes per-bracket disposition rates, judgment-to-claim ratios and
// durations, plus the headline settlement-by-value signals.
func ExtractValues(cases []caselaw.CaseRecord) report.ValueAnalysis {
	brackets := make([]report.ValueBracket, 0, len(valueBrackets))

	var (
		settledTotal, valuedTotal        int
		highSettled, highTotal           int
		lowSettled, lowTotal             int
		corrValues, corrSettledIndicator []float64
	)

	for _, b := range valueBrackets {
		bracket := report.ValueBracket{
			Label:      b.label,
			LowerBound: b.lower,
			UpperBound: b.upper,
		}
		var judgments, claims, durations []float64

		for _, c := range cases {
			v := c.CaseValue
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				continue
			}
			if v < b.lower || (b.upper > 0 && v >= b.upper) {
				continue
			}
			bracket.CaseCount++

			switch ClassifyOutcome(c.Outcome) {
			case caselaw.OutcomeSettled:
				bracket.SettledCount++
			case caselaw.OutcomeDismissed:
				bracket.DismissedCount++
			case caselaw.OutcomeJudgment:
				bracket.JudgmentCount++
			default:
				bracket.OtherCount++
			}

			if c.JudgmentAmount != nil && isFiniteNonNegative(*c.JudgmentAmount) {
				judgments = append(judgments, *c.JudgmentAmount)
			}
			if c.ClaimedAmount != nil && isFiniteNonNegative(*c.ClaimedAmount) {
				claims = append(claims, *c.ClaimedAmount)
			}
			if days, ok := c.DurationDays(); ok {
				durations = append(durations, days)
			}
		}

		n := float64(bracket.CaseCount)
		bracket.SettlementRate = ratio(float64(bracket.SettledCount), n)
		bracket.DismissalRate = ratio(float64(bracket.DismissedCount), n)
		bracket.JudgmentRate = ratio(float64(bracket.JudgmentCount), n)
		bracket.AvgJudgmentAmount = finiteMean(judgments)
		bracket.AvgClaimedAmount = finiteMean(claims)
		bracket.JudgmentClaimRatio = ratio(bracket.AvgJudgmentAmount, bracket.AvgClaimedAmount)
		bracket.AvgDurationDays = finiteMean(durations)
		bracket.Confidence = SampleConfidence(bracket.CaseCount)
		brackets = append(brackets, bracket)
	}

	for _, c := range cases {
		v := c.CaseValue
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		valuedTotal++
		settled := ClassifyOutcome(c.Outcome) == caselaw.OutcomeSettled
		if settled {
			settledTotal++
		}
		if v > highValueThreshold {
			highTotal++
			if settled {
				highSettled++
			}
		}
		if v < lowValueThreshold {
			lowTotal++
			if settled {
				lowSettled++
			}
		}
		corrValues = append(corrValues, v)
		indicator := 0.0
		if settled {
			indicator = 1.0
		}
		corrSettledIndicator = append(corrSettledIndicator, indicator)
	}

	return report.ValueAnalysis{
		Brackets:                   brackets,
		OverallSettlementRate:      ratio(float64(settledTotal), float64(valuedTotal)),
		HighValueSettlementRate:    ratio(float64(highSettled), float64(highTotal)),
		LowValueSettlementRate:     ratio(float64(lowSettled), float64(lowTotal)),
		HighValueCount:             highTotal,
		LowValueCount:              lowTotal,
		SettlementValueCorrelation: settlementValueCorrelation(corrValues, corrSettledIndicator),
		SampleSize:                 valuedTotal,
		Confidence:                 SampleConfidence(valuedTotal),
	}
}

// settlementValueCorrelation is a bounded [-1, 1] point-biserial signal
// between case value and settlement. Degenerate inputs (too few points,
// zero variance) yield 0.
func settlementValueCorrelation(values, indicators []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	r, err := stats.Correlation(values, indicators)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
