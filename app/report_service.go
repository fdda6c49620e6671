package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
	"jurimetrics/domain/legacy"
	"jurimetrics/domain/report"
	"jurimetrics/internal/augment"
	"jurimetrics/internal/baseline"
	"jurimetrics/internal/confidence"
	"jurimetrics/internal/logging"
	"jurimetrics/internal/patterns"
	"jurimetrics/internal/weighting"
	"jurimetrics/ports"
)

// Anomaly rule thresholds.
const (
	severeDeviationSigma    = 3.0
	motionRateHighThreshold = 0.80
	motionRateLowThreshold  = 0.20
	motionRateMinSamples    = 20
	settlementGapThreshold  = 0.35
	longDurationDays        = 400.0
	shortDurationDays       = 60.0
	favorabilityHighRatio   = 0.75
	favorabilityLowRatio    = 0.25
	maxSummaryAnomalies     = 3
)

// ReportService is the aggregate root of the analytics pipeline: it
// orchestrates weighting, quality assessment, the five extractors, baseline
// comparison, anomaly detection and summary synthesis.
type ReportService struct {
	source    ports.CaseSource
	baselines *baseline.Service
	augmenter *augment.Engine
	log       *logging.Logger
	decayRate float64
	minWeight float64
}

// NewReportService wires the pipeline. baselines and augmenter may be nil;
// the corresponding report sections are then omitted or left unblended.
func NewReportService(source ports.CaseSource, baselines *baseline.Service, augmenter *augment.Engine, log *logging.Logger, decayRate, minWeight float64) *ReportService {
	return &ReportService{
		source:    source,
		baselines: baselines,
		augmenter: augmenter,
		log:       log,
		decayRate: decayRate,
		minWeight: minWeight,
	}
}

// GenerateReport fetches a judge's cases and builds the full report.
func (s *ReportService) GenerateReport(ctx context.Context, judgeID core.JudgeID, jurisdictionID core.JurisdictionID, referenceDate time.Time) (*report.JudicialBiasReport, error) {
	cases, err := s.source.CasesForJudge(ctx, judgeID)
	if err != nil {
		return nil, fmt.Errorf("fetch cases for judge %s: %w", judgeID, err)
	}
	return s.BuildReport(ctx, cases, judgeID, jurisdictionID, referenceDate)
}

// BuildReport runs the pipeline over an already-materialized case set.
// Zero cases is a contract violation; everything else degrades to honest
// low-confidence output.
func (s *ReportService) BuildReport(ctx context.Context, cases []caselaw.CaseRecord, judgeID core.JudgeID, jurisdictionID core.JurisdictionID, referenceDate time.Time) (*report.JudicialBiasReport, error) {
	if len(cases) == 0 {
		return nil, core.ErrNoCases
	}
	if referenceDate.IsZero() {
		return nil, core.ErrInvalidReference
	}

	engine := weighting.NewEngine(weighting.Config{
		DecayRate:     s.decayRate,
		MinWeight:     s.minWeight,
		ReferenceDate: referenceDate,
	})
	weighted := engine.Weigh(cases)
	quality := confidence.AssessQuality(weighted)
	tier := confidence.ScoreWithQuality(len(cases), quality)

	findings := s.extractAll(ctx, cases, weighted)
	if err := findings.Validate(); err != nil {
		return nil, err
	}

	judgeMetrics := ports.JudgeMetrics{
		JudgeID:                judgeID,
		CaseCount:              len(cases),
		SettlementRate:         findings.Outcomes.OverallSettlementRate,
		MotionGrantRate:        findings.Motions.OverallGrantRate,
		AvgDurationDays:        findings.Timing.OverallAvgDays,
		PlaintiffFavorableRate: findings.Parties.PlaintiffFavorableRate,
	}

	var deviation *report.DeviationAnalysis
	if s.baselines != nil {
		if b, err := s.baselines.GetBaseline(ctx, report.ScopeJurisdiction, jurisdictionID.String()); err != nil {
			s.log.Warn("baseline unavailable for %s, reporting without comparison: %v", jurisdictionID, err)
		} else if b.JudgeCount > 0 {
			d := baseline.Analyze(judgeMetrics, b)
			deviation = &d
		}
	}
	findings.Deviation = deviation

	anomalies := detectAnomalies(findings, deviation)
	table := buildMetricsTable(findings, deviation, tier)

	rep := &report.JudicialBiasReport{
		Metadata: report.ReportMetadata{
			ReportID:       core.ReportID(core.NewID()),
			JudgeID:        judgeID,
			JurisdictionID: jurisdictionID,
			ReferenceDate:  core.NewTimestamp(referenceDate),
			GeneratedAt:    core.Now(),
			CaseCount:      len(cases),
		},
		ConfidenceTier:   tier,
		DataQuality:      quality,
		MetricsTable:     table,
		FlaggedAnomalies: anomalies,
		DetailedFindings: findings,
		MethodologyNotes: methodologyNotes(engine),
		LimitedData:      !confidence.ShouldProvideFullAnalytics(len(cases)),
	}
	rep.ExecutiveSummary = executiveSummary(rep)
	return rep, nil
}

// extractAll runs the five extractors in parallel; they are pure functions
// over the case array.
func (s *ReportService) extractAll(ctx context.Context, cases []caselaw.CaseRecord, weighted []caselaw.WeightedCase) report.DetailedFindings {
	var findings report.DetailedFindings

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		findings.Outcomes = patterns.ExtractOutcomes(cases)
		return nil
	})
	g.Go(func() error {
		findings.Motions = patterns.ExtractMotions(cases)
		return nil
	})
	g.Go(func() error {
		findings.Timing = patterns.ExtractTiming(cases)
		return nil
	})
	g.Go(func() error {
		findings.Parties = patterns.ExtractParties(cases)
		return nil
	})
	g.Go(func() error {
		withinOne, overThree, oldest := weighting.RecencyDistribution(weighted)
		findings.Temporal = report.TemporalPattern{
			PctWithinOneYear:  withinOne,
			PctOverThreeYears: overThree,
			EffectiveCases:    weighting.EffectiveCount(weighted),
			OldestYears:       oldest,
		}
		findings.Values = patterns.ExtractValues(cases)
		return nil
	})
	_ = g.Wait()
	return findings
}

// ============================================================================
// ANOMALY DETECTION (Threshold rules, not learned)
// ============================================================================

func detectAnomalies(findings report.DetailedFindings, deviation *report.DeviationAnalysis) []report.Anomaly {
	anomalies := []report.Anomaly{}

	if deviation != nil {
		for _, cmp := range deviation.Comparisons {
			if !cmp.IsSignificant {
				continue
			}
			severity := report.SeverityMedium
			if math.Abs(cmp.StdDeviations) > severeDeviationSigma {
				severity = report.SeverityHigh
			}
			anomalies = append(anomalies, report.Anomaly{
				Category:      "baseline",
				Metric:        cmp.Metric,
				Severity:      severity,
				JudgeValue:    cmp.JudgeValue,
				BaselineValue: cmp.BaselineMean,
				StdDeviations: cmp.StdDeviations,
				Description:   cmp.Interpretation,
			})
		}
	}

	motions := findings.Motions
	if motions.SampleSize >= motionRateMinSamples {
		if motions.OverallGrantRate > motionRateHighThreshold {
			anomalies = append(anomalies, report.Anomaly{
				Category:    "motion",
				Metric:      report.MetricMotionGrantRate,
				Severity:    report.SeverityMedium,
				JudgeValue:  motions.OverallGrantRate,
				Description: fmt.Sprintf("Motions are granted at an unusually high rate (%.0f%% across %d motions).", motions.OverallGrantRate*100, motions.SampleSize),
			})
		} else if motions.OverallGrantRate < motionRateLowThreshold {
			anomalies = append(anomalies, report.Anomaly{
				Category:    "motion",
				Metric:      report.MetricMotionGrantRate,
				Severity:    report.SeverityMedium,
				JudgeValue:  motions.OverallGrantRate,
				Description: fmt.Sprintf("Motions are granted at an unusually low rate (%.0f%% across %d motions).", motions.OverallGrantRate*100, motions.SampleSize),
			})
		}
	}

	values := findings.Values
	gap := values.HighValueSettlementRate - values.LowValueSettlementRate
	if values.HighValueCount > 0 && values.LowValueCount > 0 && math.Abs(gap) > settlementGapThreshold {
		anomalies = append(anomalies, report.Anomaly{
			Category:    "value",
			Metric:      "settlement_value_gap",
			Severity:    report.SeverityMedium,
			JudgeValue:  gap,
			Description: fmt.Sprintf("Settlement rates differ sharply between high-value (%.0f%%) and low-value (%.0f%%) cases.", values.HighValueSettlementRate*100, values.LowValueSettlementRate*100),
		})
	}

	timing := findings.Timing
	if timing.SampleSize > 0 {
		if timing.OverallAvgDays > longDurationDays {
			anomalies = append(anomalies, report.Anomaly{
				Category:    "timing",
				Metric:      report.MetricAvgDuration,
				Severity:    report.SeverityHigh,
				JudgeValue:  timing.OverallAvgDays,
				Description: fmt.Sprintf("Cases take %.0f days on average to resolve, well beyond typical dockets.", timing.OverallAvgDays),
			})
		} else if timing.OverallAvgDays < shortDurationDays {
			anomalies = append(anomalies, report.Anomaly{
				Category:    "timing",
				Metric:      report.MetricAvgDuration,
				Severity:    report.SeverityLow,
				JudgeValue:  timing.OverallAvgDays,
				Description: fmt.Sprintf("Cases resolve unusually quickly (%.0f days on average).", timing.OverallAvgDays),
			})
		}
	}

	parties := findings.Parties
	if ratio := parties.IndividualVsCorporation; ratio > 0 {
		if ratio > favorabilityHighRatio {
			anomalies = append(anomalies, report.Anomaly{
				Category:    "party",
				Metric:      "individual_vs_corporation",
				Severity:    report.SeverityMedium,
				JudgeValue:  ratio,
				Description: "Outcomes favor individual litigants over corporations at a lopsided rate.",
			})
		} else if ratio < favorabilityLowRatio {
			anomalies = append(anomalies, report.Anomaly{
				Category:    "party",
				Metric:      "individual_vs_corporation",
				Severity:    report.SeverityMedium,
				JudgeValue:  ratio,
				Description: "Outcomes favor corporations over individual litigants at a lopsided rate.",
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return report.SeverityRank(anomalies[i].Severity) > report.SeverityRank(anomalies[j].Severity)
	})
	return anomalies
}

// ============================================================================
// METRICS TABLE
// ============================================================================

func buildMetricsTable(findings report.DetailedFindings, deviation *report.DeviationAnalysis, tier report.ConfidenceScore) []report.MetricsRow {
	baselineFor := map[string]report.MetricComparison{}
	if deviation != nil {
		for _, cmp := range deviation.Comparisons {
			baselineFor[cmp.Metric] = cmp
		}
	}

	row := func(category, metric string, value float64, sampleSize int, interpretation string) report.MetricsRow {
		r := report.MetricsRow{
			Category:       category,
			Metric:         metric,
			JudgeValue:     value,
			Interpretation: interpretation,
			Confidence:     confidence.MetricConfidence(tier, sampleSize),
			SampleSize:     sampleSize,
		}
		if cmp, ok := baselineFor[metric]; ok {
			mean := cmp.BaselineMean
			dev := cmp.StdDeviations
			r.BaselineValue = &mean
			r.Deviation = &dev
			r.Interpretation = cmp.Interpretation
		}
		return r
	}

	outcomes := findings.Outcomes
	motions := findings.Motions
	timing := findings.Timing
	parties := findings.Parties
	values := findings.Values

	return []report.MetricsRow{
		row("outcomes", report.MetricSettlementRate, outcomes.OverallSettlementRate, outcomes.SampleSize,
			fmt.Sprintf("%.0f%% of cases settle.", outcomes.OverallSettlementRate*100)),
		row("motions", report.MetricMotionGrantRate, motions.OverallGrantRate, motions.SampleSize,
			fmt.Sprintf("%.0f%% of decided motions are granted.", motions.OverallGrantRate*100)),
		row("timing", report.MetricAvgDuration, timing.OverallAvgDays, timing.SampleSize,
			fmt.Sprintf("Cases resolve in %.0f days on average.", timing.OverallAvgDays)),
		row("parties", report.MetricPlaintiffFavorableRate, parties.PlaintiffFavorableRate, parties.SampleSize,
			fmt.Sprintf("%.0f%% of classifiable outcomes favor the claimant.", parties.PlaintiffFavorableRate*100)),
		row("parties", "pro_se_success_rate", parties.ProSeSuccessRate, parties.SampleSize,
			fmt.Sprintf("Pro se litigants succeed in %.0f%% of classifiable outcomes.", parties.ProSeSuccessRate*100)),
		row("parties", "individual_vs_corporation", parties.IndividualVsCorporation, parties.SampleSize,
			"Share of favorability accruing to individuals versus corporations."),
		row("values", "high_value_settlement_rate", values.HighValueSettlementRate, values.SampleSize,
			fmt.Sprintf("%.0f%% of high-value cases settle.", values.HighValueSettlementRate*100)),
		row("values", "low_value_settlement_rate", values.LowValueSettlementRate, values.SampleSize,
			fmt.Sprintf("%.0f%% of low-value cases settle.", values.LowValueSettlementRate*100)),
		row("values", "settlement_value_correlation", values.SettlementValueCorrelation, values.SampleSize,
			"Bounded correlation between case value and settlement."),
	}
}

// ============================================================================
// SUMMARY AND METHODOLOGY
// ============================================================================

// executiveSummary is template-composed, never generative.
func executiveSummary(rep *report.JudicialBiasReport) string {
	summary := fmt.Sprintf(
		"This report analyzes %d cases. Confidence is %s (%.0f%%): %s",
		rep.Metadata.CaseCount,
		rep.ConfidenceTier.Label,
		rep.ConfidenceTier.Percentage,
		rep.ConfidenceTier.Reliability,
	)
	if dev := rep.DetailedFindings.Deviation; dev != nil {
		summary += " " + dev.Interpretation
	}
	if len(rep.FlaggedAnomalies) > 0 {
		summary += " Flagged findings:"
		for i, anomaly := range rep.FlaggedAnomalies {
			if i >= maxSummaryAnomalies {
				break
			}
			summary += " " + anomaly.Description
		}
	}
	return summary
}

func methodologyNotes(engine *weighting.Engine) []string {
	return []string{
		"Cases are weighted by recency with continuous exponential decay; no case falls below the configured floor weight.",
		fmt.Sprintf("Undated cases receive the floor weight (%.2f) and are excluded from duration statistics.", engine.MinWeight()),
		"Outcome, motion and party classifications use keyword tables over case text and are a behavioral baseline, not a validated classifier.",
		"Peer baselines cover judges with at least 10 qualifying cases in a trailing 3-year window; deviations flag statistical distance only.",
		"This report flags statistical deviation from peer norms. It is not a finding of bias and supports no causal inference.",
	}
}

// ============================================================================
// LEGACY ANALYTICS AND AI AUGMENTATION
// ============================================================================

// LegacyAnalytics renders the case set in the legacy percentage shape the
// AI augmentation path blends over.
func LegacyAnalytics(cases []caselaw.CaseRecord) legacy.Analytics {
	outcomes := patterns.ExtractOutcomes(cases)
	motions := patterns.ExtractMotions(cases)
	parties := patterns.ExtractParties(cases)

	a := legacy.Analytics{
		SettlementPct: legacy.Metric{
			Value:      outcomes.OverallSettlementRate * 100,
			Confidence: outcomes.Confidence,
			SampleSize: outcomes.SampleSize,
		},
		MotionGrantPct: legacy.Metric{
			Value:      motions.OverallGrantRate * 100,
			Confidence: motions.Confidence,
			SampleSize: motions.SampleSize,
		},
		PlaintiffFavorPct: legacy.Metric{
			Value:      parties.PlaintiffFavorableRate * 100,
			Confidence: parties.Confidence,
			SampleSize: parties.SampleSize,
		},
		ProSeSuccessPct: legacy.Metric{
			Value:      parties.ProSeSuccessRate * 100,
			Confidence: parties.Confidence,
			SampleSize: parties.SampleSize,
		},
	}
	return a.Normalize()
}

// GenerateAugmentedAnalytics computes the legacy analytics and blends in an
// AI provider's independent read of the judge's case documents. Failures
// anywhere in the augmentation path degrade to the base analytics; if even
// the base cannot be computed, a labeled conservative default is returned.
func (s *ReportService) GenerateAugmentedAnalytics(ctx context.Context, judgeID core.JudgeID) (legacy.Analytics, error) {
	cases, err := s.source.CasesForJudge(ctx, judgeID)
	if err != nil {
		s.log.Error("fetch cases for augmented analytics: %v", err)
		return augment.ConservativeDefault(), nil
	}
	if len(cases) == 0 {
		return legacy.Analytics{}, core.ErrNoCases
	}

	base := LegacyAnalytics(cases)
	if s.augmenter == nil {
		return base, nil
	}

	docs := make([]ports.DocumentSample, 0, len(cases))
	for _, c := range cases {
		docs = append(docs, ports.DocumentSample{
			CaseID:   c.ID.String(),
			CaseType: c.CaseType,
			Outcome:  c.Outcome,
			Text:     c.OpinionText,
		})
	}
	return s.augmenter.Augment(ctx, base, s.augmenter.SelectDocuments(docs)), nil
}
