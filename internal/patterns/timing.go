package patterns

import (
	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/report"
)

// ExtractTiming tiers cases by complexity and computes the duration
// distribution per tier. Cases without a usable duration (unparseable dates,
// negative spans, spans beyond ten years) are excluded from duration stats,
// never zeroed. All four tiers are emitted even when empty.
func ExtractTiming(cases []caselaw.CaseRecord) report.TimingAnalysis {
	byTier := make(map[caselaw.ComplexityTier][]float64, len(caselaw.ComplexityTiers))
	counts := make(map[caselaw.ComplexityTier]int, len(caselaw.ComplexityTiers))

	all := make([]float64, 0, len(cases))
	usable := 0
	for _, c := range cases {
		tier := ClassifyComplexity(c)
		counts[tier]++
		days, ok := c.DurationDays()
		if !ok {
			continue
		}
		usable++
		byTier[tier] = append(byTier[tier], days)
		all = append(all, days)
	}

	tiers := make([]report.ComplexityTiming, 0, len(caselaw.ComplexityTiers))
	for _, tier := range caselaw.ComplexityTiers {
		durations := byTier[tier]
		timing := report.ComplexityTiming{
			Tier:       tier,
			CaseCount:  counts[tier],
			Confidence: SampleConfidence(len(durations)),
		}
		if len(durations) > 0 {
			timing.AvgDays = finiteMean(durations)
			timing.MedianDays = finiteMedian(durations)
			timing.P25Days = finitePercentile(durations, 25)
			timing.P75Days = finitePercentile(durations, 75)
			timing.P90Days = finitePercentile(durations, 90)
			timing.MinDays = finiteMin(durations)
			timing.MaxDays = finiteMax(durations)
		}
		tiers = append(tiers, timing)
	}

	return report.TimingAnalysis{
		Tiers:          tiers,
		OverallAvgDays: finiteMean(all),
		SampleSize:     usable,
		Confidence:     SampleConfidence(usable),
	}
}
