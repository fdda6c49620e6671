package narrative

import (
	"fmt"
	"sort"
	"strings"

	"jurimetrics/domain/report"
)

// Generator renders a report into deterministic markdown prose. Sections are
// template-composed from computed metrics; identical reports produce
// identical documents.
type Generator struct{}

// NewGenerator creates a markdown narrative generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Render produces the full markdown narrative for a report.
func (g *Generator) Render(rep *report.JudicialBiasReport) string {
	var b strings.Builder

	b.WriteString("# Judicial Analytics Report\n\n")
	b.WriteString(fmt.Sprintf("- **Judge:** %s\n", judgeLabel(rep)))
	b.WriteString(fmt.Sprintf("- **Jurisdiction:** %s\n", rep.Metadata.JurisdictionID))
	b.WriteString(fmt.Sprintf("- **Reference date:** %s\n", rep.Metadata.ReferenceDate.Time().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("- **Generated:** %s\n", rep.Metadata.GeneratedAt.Time().Format("2006-01-02 15:04 MST")))
	b.WriteString(fmt.Sprintf("- **Cases analyzed:** %d\n\n", rep.Metadata.CaseCount))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString(rep.ExecutiveSummary)
	b.WriteString("\n\n")

	g.writeConfidence(&b, rep)
	g.writeMetricsTable(&b, rep.MetricsTable)
	g.writeAnomalies(&b, rep.FlaggedAnomalies)
	g.writeFindings(&b, rep)
	g.writeMethodology(&b, rep.MethodologyNotes)

	return b.String()
}

func judgeLabel(rep *report.JudicialBiasReport) string {
	if rep.Metadata.JudgeName != "" {
		return rep.Metadata.JudgeName
	}
	return rep.Metadata.JudgeID.String()
}

func (g *Generator) writeConfidence(b *strings.Builder, rep *report.JudicialBiasReport) {
	b.WriteString("## Confidence and Data Quality\n\n")
	b.WriteString(fmt.Sprintf("Overall confidence: **%s (%.0f%%)**. %s\n\n",
		rep.ConfidenceTier.Label, rep.ConfidenceTier.Percentage, rep.ConfidenceTier.Reliability))
	if rep.LimitedData {
		b.WriteString("> **Limited data.** This judge falls below the full-analytics threshold; treat every figure below as directional only.\n\n")
	}
	q := rep.DataQuality
	b.WriteString(fmt.Sprintf(
		"The sample holds %d cases (%.1f effective after recency weighting). "+
			"Temporal distribution scores %.0f/100, category diversity %.0f/100 and data freshness %.0f/100, for an overall data quality of %.0f/100.\n\n",
		q.TotalCases, q.EffectiveCases,
		q.TemporalDistributionScore, q.CategoryDiversityScore, q.DataFreshnessScore, q.OverallQualityScore))
}

func (g *Generator) writeMetricsTable(b *strings.Builder, rows []report.MetricsRow) {
	b.WriteString("## Metrics\n\n")
	b.WriteString("| Category | Metric | Value | Baseline | Deviation | Confidence | N |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, row := range rows {
		baselineCell := "n/a"
		deviationCell := "n/a"
		if row.BaselineValue != nil {
			baselineCell = formatMetricValue(row.Metric, *row.BaselineValue)
		}
		if row.Deviation != nil {
			deviationCell = fmt.Sprintf("%+.2fσ", *row.Deviation)
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %.0f%% | %d |\n",
			row.Category, row.Metric, formatMetricValue(row.Metric, row.JudgeValue),
			baselineCell, deviationCell, row.Confidence, row.SampleSize))
	}
	b.WriteString("\n")
}

// formatMetricValue renders durations in days and everything else as a
// percentage or ratio.
func formatMetricValue(metric string, v float64) string {
	switch metric {
	case report.MetricAvgDuration:
		return fmt.Sprintf("%.0f days", v)
	case "settlement_value_correlation", "individual_vs_corporation", "settlement_value_gap":
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.1f%%", v*100)
	}
}

func (g *Generator) writeAnomalies(b *strings.Builder, anomalies []report.Anomaly) {
	b.WriteString("## Flagged Findings\n\n")
	if len(anomalies) == 0 {
		b.WriteString("No statistical anomalies were flagged for this judge.\n\n")
		return
	}
	for _, a := range anomalies {
		b.WriteString(fmt.Sprintf("- **[%s]** %s (%s/%s)\n", strings.ToUpper(string(a.Severity)), a.Description, a.Category, a.Metric))
	}
	b.WriteString("\n")
}

func (g *Generator) writeFindings(b *strings.Builder, rep *report.JudicialBiasReport) {
	f := rep.DetailedFindings

	b.WriteString("## Detailed Findings\n\n")

	b.WriteString("### Outcomes\n\n")
	b.WriteString(fmt.Sprintf("%.1f%% of cases settle overall (N=%d). ",
		f.Outcomes.OverallSettlementRate*100, f.Outcomes.SampleSize))
	if top := dominantCaseType(f.Outcomes.Patterns); top != nil {
		b.WriteString(fmt.Sprintf("The docket is dominated by %s cases (%d, settling at %.1f%%).",
			top.CaseType, top.CaseCount, top.SettlementRate*100))
	}
	b.WriteString("\n\n")

	b.WriteString("### Motions\n\n")
	b.WriteString(fmt.Sprintf("Across %d motions with a discernible ruling, %.1f%% are granted.\n\n",
		f.Motions.SampleSize, f.Motions.OverallGrantRate*100))

	b.WriteString("### Timing\n\n")
	b.WriteString(fmt.Sprintf("Cases resolve in %.0f days on average (N=%d with usable dates). ",
		f.Timing.OverallAvgDays, f.Timing.SampleSize))
	b.WriteString(timingSpread(f.Timing))
	b.WriteString("\n\n")

	b.WriteString("### Parties\n\n")
	b.WriteString(fmt.Sprintf(
		"%.1f%% of classifiable outcomes favor the claimant. Pro se litigants succeed %.1f%% of the time versus %.1f%% for represented parties. "+
			"Individuals hold a %.2f share of favorability against corporations.\n\n",
		f.Parties.PlaintiffFavorableRate*100, f.Parties.ProSeSuccessRate*100,
		f.Parties.RepresentedSuccessRate*100, f.Parties.IndividualVsCorporation))

	b.WriteString("### Case Values\n\n")
	b.WriteString(fmt.Sprintf(
		"High-value cases settle at %.1f%% against %.1f%% for low-value cases, with a settlement-value correlation of %.2f.\n\n",
		f.Values.HighValueSettlementRate*100, f.Values.LowValueSettlementRate*100,
		f.Values.SettlementValueCorrelation))

	b.WriteString("### Recency\n\n")
	b.WriteString(fmt.Sprintf(
		"%.0f%% of cases are under a year old and %.0f%% are over three years old; the oldest case is %.1f years old. "+
			"After decay weighting the sample carries %.1f effective cases.\n\n",
		f.Temporal.PctWithinOneYear, f.Temporal.PctOverThreeYears,
		f.Temporal.OldestYears, f.Temporal.EffectiveCases))

	if f.Deviation != nil {
		b.WriteString("### Peer Comparison\n\n")
		b.WriteString(f.Deviation.Interpretation)
		b.WriteString(fmt.Sprintf(" The overall deviation score is %d/100 (%s).\n\n",
			f.Deviation.OverallDeviationScore, strings.ReplaceAll(string(f.Deviation.Band), "_", " ")))
	}
}

func dominantCaseType(patterns []report.CaseTypePattern) *report.CaseTypePattern {
	var top *report.CaseTypePattern
	for i := range patterns {
		if top == nil || patterns[i].CaseCount > top.CaseCount {
			top = &patterns[i]
		}
	}
	return top
}

func timingSpread(t report.TimingAnalysis) string {
	tiers := make([]report.ComplexityTiming, len(t.Tiers))
	copy(tiers, t.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].AvgDays < tiers[j].AvgDays })
	populated := tiers[:0]
	for _, tier := range tiers {
		if tier.CaseCount > 0 {
			populated = append(populated, tier)
		}
	}
	if len(populated) < 2 {
		return ""
	}
	fastest := populated[0]
	slowest := populated[len(populated)-1]
	return fmt.Sprintf("%s cases move fastest (%.0f days) and %s cases slowest (%.0f days).",
		fastest.Tier, fastest.AvgDays, slowest.Tier, slowest.AvgDays)
}

func (g *Generator) writeMethodology(b *strings.Builder, notes []string) {
	b.WriteString("## Methodology\n\n")
	for _, note := range notes {
		b.WriteString("- " + note + "\n")
	}
}
