package narrative

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurimetrics/app"
	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
	"jurimetrics/domain/report"
	"jurimetrics/internal/logging"
	"jurimetrics/internal/weighting"
)

func fixtureReport(t *testing.T) *report.JudicialBiasReport {
	t.Helper()

	cases := make([]caselaw.CaseRecord, 0, 30)
	for i := 0; i < 30; i++ {
		outcome := "settled"
		if i%3 == 0 {
			outcome = "dismissed"
		}
		cases = append(cases, caselaw.CaseRecord{
			ID:           core.CaseID(fmt.Sprintf("case-%03d", i)),
			JudgeID:      "judge-1",
			CaseType:     "civil",
			Outcome:      outcome,
			CaseValue:    25_000,
			FilingDate:   "2025-01-01",
			DecisionDate: "2025-07-01",
		})
	}

	svc := app.NewReportService(nil, nil, nil, logging.NewDefaultLogger(),
		weighting.DefaultDecayRate, weighting.DefaultMinWeight)
	rep, err := svc.BuildReport(context.Background(), cases, "judge-1", "ohio",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return rep
}

func TestRenderIsDeterministic(t *testing.T) {
	rep := fixtureReport(t)
	gen := NewGenerator()
	assert.Equal(t, gen.Render(rep), gen.Render(rep))
}

func TestRenderSections(t *testing.T) {
	rep := fixtureReport(t)
	doc := NewGenerator().Render(rep)

	assert.Contains(t, doc, "# Judicial Analytics Report")
	assert.Contains(t, doc, "## Executive Summary")
	assert.Contains(t, doc, "## Confidence and Data Quality")
	assert.Contains(t, doc, "## Metrics")
	assert.Contains(t, doc, "## Flagged Findings")
	assert.Contains(t, doc, "## Detailed Findings")
	assert.Contains(t, doc, "## Methodology")
	assert.Contains(t, doc, "- **Jurisdiction:** ohio")
	assert.Contains(t, doc, "- **Cases analyzed:** 30")
	assert.Contains(t, doc, "| outcomes | settlement_rate | 66.7% |")
}

func TestRenderLimitedDataWarning(t *testing.T) {
	rep := fixtureReport(t)
	require.True(t, rep.LimitedData)
	doc := NewGenerator().Render(rep)
	assert.Contains(t, doc, "> **Limited data.**")
}

func TestRenderPrefersJudgeName(t *testing.T) {
	rep := fixtureReport(t)
	rep.Metadata.JudgeName = "Hon. A. Example"
	doc := NewGenerator().Render(rep)
	assert.Contains(t, doc, "- **Judge:** Hon. A. Example")
}

func TestRenderNoAnomalies(t *testing.T) {
	rep := fixtureReport(t)
	rep.FlaggedAnomalies = nil
	doc := NewGenerator().Render(rep)
	assert.Contains(t, doc, "No statistical anomalies were flagged for this judge.")
}

func TestRenderPeerComparisonSection(t *testing.T) {
	rep := fixtureReport(t)
	require.Nil(t, rep.DetailedFindings.Deviation)

	doc := NewGenerator().Render(rep)
	assert.NotContains(t, doc, "### Peer Comparison")

	rep.DetailedFindings.Deviation = &report.DeviationAnalysis{
		Interpretation:        "This judge sits close to the peer norm.",
		OverallDeviationScore: 12,
		Band:                  report.BandWellWithinNorms,
	}
	doc = NewGenerator().Render(rep)
	assert.Contains(t, doc, "### Peer Comparison")
	assert.Contains(t, doc, "12/100")
}

func TestFormatMetricValue(t *testing.T) {
	assert.Equal(t, "181 days", formatMetricValue(report.MetricAvgDuration, 181.2))
	assert.Equal(t, "0.42", formatMetricValue("settlement_value_correlation", 0.42))
	assert.Equal(t, "0.50", formatMetricValue("individual_vs_corporation", 0.5))
	assert.Equal(t, "66.7%", formatMetricValue(report.MetricSettlementRate, 2.0/3.0))
}

func TestTimingSpreadNeedsTwoPopulatedTiers(t *testing.T) {
	timing := report.TimingAnalysis{
		Tiers: []report.ComplexityTiming{
			{Tier: "simple", CaseCount: 10, AvgDays: 90},
			{Tier: "moderate", CaseCount: 0},
		},
	}
	assert.Empty(t, timingSpread(timing))

	timing.Tiers[1] = report.ComplexityTiming{Tier: "complex", CaseCount: 4, AvgDays: 320}
	spread := timingSpread(timing)
	assert.Contains(t, spread, "simple cases move fastest (90 days)")
	assert.Contains(t, spread, "complex cases slowest (320 days)")
}

func TestTextFormatter(t *testing.T) {
	rep := fixtureReport(t)
	f := NewTextFormatter()
	assert.Equal(t, "text/markdown; charset=utf-8", f.ContentType())

	out, err := f.Format(rep)
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Judicial Analytics Report")
}

func TestHTMLFormatter(t *testing.T) {
	rep := fixtureReport(t)
	f := NewHTMLFormatter()
	assert.Equal(t, "text/html; charset=utf-8", f.ContentType())

	out, err := f.Format(rep)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Judicial Analytics Report: judge-1</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "settlement_rate")
	assert.NotContains(t, html, "%!")
}
