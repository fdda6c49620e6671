package baseline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"jurimetrics/domain/report"
	"jurimetrics/ports"
)

// SignificanceThreshold flags a metric when |sigma| exceeds it.
const SignificanceThreshold = 2.0

// deviationScoreScale converts mean |sigma| to the 0-100 deviation score.
const deviationScoreScale = 25.0

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// metricLabels render baseline metric names for interpretation text.
var metricLabels = map[string]string{
	report.MetricSettlementRate:         "settlement rate",
	report.MetricMotionGrantRate:        "motion grant rate",
	report.MetricAvgDuration:            "average case duration",
	report.MetricPlaintiffFavorableRate: "plaintiff favorable rate",
}

// Analyze compares a judge's headline metrics against a baseline, producing
// per-metric deviations and the bucketed overall score. Advisory only, never
// a bias determination.
func Analyze(judge ports.JudgeMetrics, b *report.Baseline) report.DeviationAnalysis {
	values := map[string]float64{
		report.MetricSettlementRate:         judge.SettlementRate,
		report.MetricMotionGrantRate:        judge.MotionGrantRate,
		report.MetricAvgDuration:            judge.AvgDurationDays,
		report.MetricPlaintiffFavorableRate: judge.PlaintiffFavorableRate,
	}

	order := []string{
		report.MetricSettlementRate,
		report.MetricMotionGrantRate,
		report.MetricAvgDuration,
		report.MetricPlaintiffFavorableRate,
	}

	comparisons := make([]report.MetricComparison, 0, len(order))
	absSum := 0.0
	for _, metric := range order {
		bm := b.Metrics[metric]
		z := Deviation(values[metric], bm)
		absSum += math.Abs(z)
		comparisons = append(comparisons, report.MetricComparison{
			Metric:         metric,
			JudgeValue:     values[metric],
			BaselineMean:   bm.Mean,
			BaselineStdDev: bm.StdDev,
			StdDeviations:  z,
			PValue:         twoSidedP(z),
			IsSignificant:  math.Abs(z) > SignificanceThreshold,
			Interpretation: interpret(metric, z),
		})
	}

	score := int(math.Round(absSum / float64(len(order)) * deviationScoreScale))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	band, severity := bandFor(score)
	return report.DeviationAnalysis{
		Scope:                 b.Scope,
		Comparisons:           comparisons,
		OverallDeviationScore: score,
		Band:                  band,
		Severity:              severity,
		Interpretation:        bandInterpretation(band),
	}
}

// Deviation computes (judge - mean) / std_dev; a zero std-dev yields 0,
// never a division error.
func Deviation(judgeValue float64, bm report.BaselineMetric) float64 {
	if bm.StdDev == 0 {
		return 0
	}
	return (judgeValue - bm.Mean) / bm.StdDev
}

// twoSidedP attaches a two-sided p-value under a normal reference.
func twoSidedP(z float64) float64 {
	if z == 0 {
		return 1
	}
	return 2 * stdNormal.Survival(math.Abs(z))
}

func interpret(metric string, z float64) string {
	label := metricLabels[metric]
	abs := math.Abs(z)
	direction := "above"
	if z < 0 {
		direction = "below"
	}
	switch {
	case abs > 3:
		return fmt.Sprintf("The judge's %s is far %s the peer norm (%.1f standard deviations).", label, direction, abs)
	case abs > SignificanceThreshold:
		return fmt.Sprintf("The judge's %s is notably %s the peer norm (%.1f standard deviations).", label, direction, abs)
	case abs > 1:
		return fmt.Sprintf("The judge's %s is moderately %s the peer norm.", label, direction)
	default:
		return fmt.Sprintf("The judge's %s is in line with the peer norm.", label)
	}
}

func bandFor(score int) (report.DeviationBand, report.AnomalySeverity) {
	switch {
	case score < 25:
		return report.BandWellWithinNorms, report.SeverityLow
	case score < 50:
		return report.BandMinorVariance, report.SeverityLow
	case score < 75:
		return report.BandNotableDeviation, report.SeverityMedium
	default:
		return report.BandSignificantDeviation, report.SeverityHigh
	}
}

func bandInterpretation(band report.DeviationBand) string {
	switch band {
	case report.BandWellWithinNorms:
		return "Headline metrics sit well within peer norms."
	case report.BandMinorVariance:
		return "Headline metrics show minor variance from peer norms."
	case report.BandNotableDeviation:
		return "Headline metrics show notable deviation from peer norms; review the flagged metrics."
	default:
		return "Headline metrics deviate significantly from peer norms; review the flagged metrics."
	}
}
