package patterns

import (
	"sort"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/report"
)

// ExtractMotions infers a canonical motion type for every motion-bearing
// case, reads granted/denied from directional keywords, and computes
// per-type grant rates and decision timing.
func ExtractMotions(cases []caselaw.CaseRecord) report.MotionAnalysis {
	type motionGroup struct {
		granted   int
		denied    int
		total     int
		durations []float64
	}
	groups := make(map[string]*motionGroup)

	motionCases := 0
	grantedTotal, ruledTotal := 0, 0
	for _, c := range cases {
		if !HasMotion(c) {
			continue
		}
		motionCases++

		motionType := ClassifyMotionType(c)
		g, ok := groups[motionType]
		if !ok {
			g = &motionGroup{}
			groups[motionType] = g
		}
		g.total++

		switch ClassifyRuling(c) {
		case RulingGranted:
			g.granted++
			grantedTotal++
			ruledTotal++
		case RulingDenied:
			g.denied++
			ruledTotal++
		}

		if days, ok := c.DurationDays(); ok {
			g.durations = append(g.durations, days)
		}
	}

	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Strings(types)

	patterns := make([]report.MotionTypePattern, 0, len(types))
	for _, t := range types {
		g := groups[t]
		ruled := g.granted + g.denied
		patterns = append(patterns, report.MotionTypePattern{
			MotionType:      t,
			MotionCount:     g.total,
			GrantedCount:    g.granted,
			DeniedCount:     g.denied,
			GrantRate:       ratio(float64(g.granted), float64(ruled)),
			DenyRate:        ratio(float64(g.denied), float64(ruled)),
			AvgDecisionDays: finiteMean(g.durations),
			MedianDays:      finiteMedian(g.durations),
			Confidence:      SampleConfidence(g.total),
		})
	}

	return report.MotionAnalysis{
		Patterns:         patterns,
		OverallGrantRate: ratio(float64(grantedTotal), float64(ruledTotal)),
		SampleSize:       motionCases,
		Confidence:       SampleConfidence(motionCases),
	}
}
