// Package confidence maps raw case counts and data-quality signals to the
// tiered reliability score carried on every report.
package confidence

import (
	"math"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/report"
	"jurimetrics/internal/patterns"
	"jurimetrics/internal/weighting"
)

// Tier thresholds on raw case count.
const (
	Tier1Threshold = 1000
	Tier2Threshold = 750
	Tier3Threshold = 500

	// FullAnalyticsThreshold gates downstream display, not core computation.
	FullAnalyticsThreshold = 500
)

// Tier base percentages. Limited-tier scores scale 40 -> 69 with count.
const (
	tier1Percentage   = 93
	tier2Percentage   = 85
	tier3Percentage   = 75
	limitedFloor      = 40
	limitedCeiling    = 69
	maxPercentage     = 95
	adjustedFloor     = 60
	qualityNeutral    = 70
	qualityShiftScale = 10
)

// Score maps a raw case count to its confidence tier.
func Score(caseCount int) report.ConfidenceScore {
	switch {
	case caseCount >= Tier1Threshold:
		return tierScore(report.Tier1, tier1Percentage, "Very High", caseCount)
	case caseCount >= Tier2Threshold:
		return tierScore(report.Tier2, tier2Percentage, "High", caseCount)
	case caseCount >= Tier3Threshold:
		return tierScore(report.Tier3, tier3Percentage, "Moderate", caseCount)
	default:
		pct := limitedFloor + (limitedCeiling-limitedFloor)*float64(caseCount)/float64(Tier3Threshold)
		return report.ConfidenceScore{
			Tier:        report.TierLimited,
			Percentage:  pct,
			Label:       "Limited",
			Reliability: "Sample below the full-analytics threshold; treat findings as directional only.",
			SampleSize:  caseCount,
		}
	}
}

// ScoreWithQuality shifts the tier score by (quality-70)/10 and clamps the
// result to [60, 95].
func ScoreWithQuality(caseCount int, quality report.DataQualityMetrics) report.ConfidenceScore {
	score := Score(caseCount)
	adjusted := score.Percentage + (quality.OverallQualityScore-qualityNeutral)/qualityShiftScale
	score.Percentage = math.Max(adjustedFloor, math.Min(maxPercentage, adjusted))
	return score
}

// MetricConfidence caps a metric's confidence by its own sample size,
// regardless of the overall tier.
func MetricConfidence(overall report.ConfidenceScore, metricSampleSize int) float64 {
	return math.Min(overall.Percentage, patterns.SampleConfidence(metricSampleSize))
}

// ShouldProvideFullAnalytics reports whether the case count clears the
// presentation-layer display gate. The core computes regardless.
func ShouldProvideFullAnalytics(caseCount int) bool {
	return caseCount >= FullAnalyticsThreshold
}

func tierScore(tier report.ConfidenceTier, pct float64, label string, caseCount int) report.ConfidenceScore {
	reliability := map[string]string{
		"Very High": "Large sample; patterns are statistically dependable.",
		"High":      "Substantial sample; patterns are broadly dependable.",
		"Moderate":  "Adequate sample; expect some variance in finer-grained splits.",
	}[label]
	return report.ConfidenceScore{
		Tier:        tier,
		Percentage:  pct,
		Label:       label,
		Reliability: reliability,
		SampleSize:  caseCount,
	}
}

// ============================================================================
// DATA QUALITY
// ============================================================================

// AssessQuality computes the data-quality metrics over a weighted case set.
// Ages are read off the weights, so the engine's reference date governs.
func AssessQuality(weighted []caselaw.WeightedCase) report.DataQualityMetrics {
	metrics := report.DataQualityMetrics{
		TotalCases:     len(weighted),
		EffectiveCases: weighting.EffectiveCount(weighted),
	}
	if len(weighted) == 0 {
		return metrics
	}

	temporalSum := 0.0
	fresh := 0
	distinctTypes := make(map[string]bool)
	for _, w := range weighted {
		temporalSum += temporalScore(w.YearsOld)
		if !w.DateMissing && w.YearsOld <= 2 {
			fresh++
		}
		if w.Record.CaseType != "" {
			distinctTypes[w.Record.CaseType] = true
		}
	}

	n := float64(len(weighted))
	metrics.TemporalDistributionScore = temporalSum / n
	metrics.CategoryDiversityScore = math.Min(100, float64(len(distinctTypes))/10*100)
	metrics.DataFreshnessScore = float64(fresh) / n * 100
	metrics.OverallQualityScore = 0.4*metrics.TemporalDistributionScore +
		0.3*metrics.CategoryDiversityScore +
		0.3*metrics.DataFreshnessScore
	return metrics
}

// temporalScore rewards recency: full credit within a year, none past three.
func temporalScore(yearsOld float64) float64 {
	switch {
	case yearsOld <= 1:
		return 100
	case yearsOld <= 2:
		return 70
	case yearsOld <= 3:
		return 40
	default:
		return 0
	}
}
