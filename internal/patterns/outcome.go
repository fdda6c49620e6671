package patterns

import (
	"math"
	"sort"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/report"
)

// trendBuckets are the four fixed value ranges for the settlement trend.
// Upper bound 0 means unbounded.
var trendBuckets = []struct {
	label string
	lower float64
	upper float64
}{
	{"under_50k", 0, 50_000},
	{"50k_to_250k", 50_000, 250_000},
	{"250k_to_1m", 250_000, 1_000_000},
	{"1m_plus", 1_000_000, 0},
}

// ExtractOutcomes groups cases by case type and computes per-type disposition
// rates plus the value-range settlement trend.
func ExtractOutcomes(cases []caselaw.CaseRecord) report.OutcomeAnalysis {
	byType := make(map[string][]caselaw.CaseRecord)
	for _, c := range cases {
		byType[c.CaseType] = append(byType[c.CaseType], c)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	patterns := make([]report.CaseTypePattern, 0, len(types))
	settledTotal := 0
	for _, t := range types {
		group := byType[t]
		p := report.CaseTypePattern{CaseType: t, CaseCount: len(group)}

		values := make([]float64, 0, len(group))
		for _, c := range group {
			switch ClassifyOutcome(c.Outcome) {
			case caselaw.OutcomeSettled:
				p.SettledCount++
			case caselaw.OutcomeDismissed:
				p.DismissedCount++
			case caselaw.OutcomeJudgment:
				p.JudgmentCount++
			default:
				p.OtherCount++
			}
			if c.CaseValue > 0 && !math.IsNaN(c.CaseValue) && !math.IsInf(c.CaseValue, 0) {
				values = append(values, c.CaseValue)
			}
		}

		p.SettlementRate = ratio(float64(p.SettledCount), float64(p.CaseCount))
		p.AverageCaseValue = finiteMean(values)
		p.Confidence = SampleConfidence(p.CaseCount)
		settledTotal += p.SettledCount
		patterns = append(patterns, p)
	}

	return report.OutcomeAnalysis{
		Patterns:              patterns,
		OverallSettlementRate: ratio(float64(settledTotal), float64(len(cases))),
		ValueTrend:            settlementTrend(cases),
		SampleSize:            len(cases),
		Confidence:            SampleConfidence(len(cases)),
	}
}

// settlementTrend computes the settlement rate across the four fixed value
// ranges. Empty buckets are emitted as placeholder rows.
func settlementTrend(cases []caselaw.CaseRecord) []report.ValueTrendBucket {
	out := make([]report.ValueTrendBucket, 0, len(trendBuckets))
	for _, b := range trendBuckets {
		bucket := report.ValueTrendBucket{
			Label:      b.label,
			LowerBound: b.lower,
			UpperBound: b.upper,
		}
		settled := 0
		for _, c := range cases {
			v := c.CaseValue
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				continue
			}
			if v < b.lower || (b.upper > 0 && v >= b.upper) {
				continue
			}
			bucket.CaseCount++
			if ClassifyOutcome(c.Outcome) == caselaw.OutcomeSettled {
				settled++
			}
		}
		bucket.SettlementRate = ratio(float64(settled), float64(bucket.CaseCount))
		out = append(out, bucket)
	}
	return out
}
