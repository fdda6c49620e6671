package report

import (
	"fmt"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// ConfidenceTier maps case-count ranges to reliability bands.
type ConfidenceTier int

const (
	TierLimited ConfidenceTier = 0
	Tier3       ConfidenceTier = 3 // >= 500 cases, "Moderate"
	Tier2       ConfidenceTier = 2 // >= 750 cases, "High"
	Tier1       ConfidenceTier = 1 // >= 1000 cases, "Very High"
)

// ConfidenceScore expresses how much weight a reader should give the report.
// INVARIANTS:
// - Percentage in [0, 95]; never exceeds 95 regardless of sample size
// - Percentage is non-decreasing in sample size within a tier
type ConfidenceScore struct {
	Tier        ConfidenceTier `json:"tier"`
	Percentage  float64        `json:"percentage"`
	Label       string         `json:"label"`       // "Very High", "High", "Moderate", "Limited"
	Reliability string         `json:"reliability"` // One-line reader guidance
	SampleSize  int            `json:"sample_size"`
}

// DataQualityMetrics captures sample adequacy signals beyond raw count.
type DataQualityMetrics struct {
	TotalCases                int     `json:"total_cases"`
	EffectiveCases            float64 `json:"effective_cases"` // Sum of temporal decay weights
	TemporalDistributionScore float64 `json:"temporal_distribution_score"`
	CategoryDiversityScore    float64 `json:"category_diversity_score"`
	DataFreshnessScore        float64 `json:"data_freshness_score"`
	OverallQualityScore       float64 `json:"overall_quality_score"`
}

// ============================================================================
// PATTERN SUMMARIES (Per-extractor outputs)
// ============================================================================

// CaseTypePattern summarizes outcomes for one case type.
type CaseTypePattern struct {
	CaseType         string  `json:"case_type"`
	CaseCount        int     `json:"case_count"`
	SettledCount     int     `json:"settled_count"`
	DismissedCount   int     `json:"dismissed_count"`
	JudgmentCount    int     `json:"judgment_count"`
	OtherCount       int     `json:"other_count"`
	SettlementRate   float64 `json:"settlement_rate"`
	AverageCaseValue float64 `json:"average_case_value"`
	Confidence       float64 `json:"confidence"`
}

// ValueTrendBucket captures the settlement trend within one value range.
type ValueTrendBucket struct {
	Label          string  `json:"label"`
	LowerBound     float64 `json:"lower_bound"`
	UpperBound     float64 `json:"upper_bound"` // 0 means unbounded
	CaseCount      int     `json:"case_count"`
	SettlementRate float64 `json:"settlement_rate"`
}

// OutcomeAnalysis is the case-type extractor's aggregate output.
type OutcomeAnalysis struct {
	Patterns              []CaseTypePattern  `json:"patterns"`
	OverallSettlementRate float64            `json:"overall_settlement_rate"`
	ValueTrend            []ValueTrendBucket `json:"value_trend"`
	SampleSize            int                `json:"sample_size"`
	Confidence            float64            `json:"confidence"`
}

// MotionTypePattern summarizes rulings for one canonical motion type.
type MotionTypePattern struct {
	MotionType      string  `json:"motion_type"`
	MotionCount     int     `json:"motion_count"`
	GrantedCount    int     `json:"granted_count"`
	DeniedCount     int     `json:"denied_count"`
	GrantRate       float64 `json:"grant_rate"`
	DenyRate        float64 `json:"deny_rate"`
	AvgDecisionDays float64 `json:"avg_decision_days"`
	MedianDays      float64 `json:"median_days"`
	Confidence      float64 `json:"confidence"`
}

// MotionAnalysis is the motion extractor's aggregate output.
type MotionAnalysis struct {
	Patterns         []MotionTypePattern `json:"patterns"`
	OverallGrantRate float64             `json:"overall_grant_rate"`
	SampleSize       int                 `json:"sample_size"`
	Confidence       float64             `json:"confidence"`
}

// ComplexityTiming summarizes decision timing for one complexity tier.
type ComplexityTiming struct {
	Tier       caselaw.ComplexityTier `json:"tier"`
	CaseCount  int                    `json:"case_count"`
	AvgDays    float64                `json:"avg_days"`
	MedianDays float64                `json:"median_days"`
	P25Days    float64                `json:"p25_days"`
	P75Days    float64                `json:"p75_days"`
	P90Days    float64                `json:"p90_days"`
	MinDays    float64                `json:"min_days"`
	MaxDays    float64                `json:"max_days"`
	Confidence float64                `json:"confidence"`
}

// TimingAnalysis is the timing extractor's aggregate output.
type TimingAnalysis struct {
	Tiers          []ComplexityTiming `json:"tiers"`
	OverallAvgDays float64            `json:"overall_avg_days"`
	SampleSize     int                `json:"sample_size"` // Cases with usable durations
	Confidence     float64            `json:"confidence"`
}

// PartyPattern summarizes outcomes for one party type.
type PartyPattern struct {
	PartyType     caselaw.PartyType `json:"party_type"`
	CaseCount     int               `json:"case_count"`
	FavorableRate float64           `json:"favorable_rate"`
	AvgCaseValue  float64           `json:"avg_case_value"`
	AvgDuration   float64           `json:"avg_duration"`
	Confidence    float64           `json:"confidence"`
}

// PartyAnalysis is the party extractor's aggregate output, including the
// headline comparative ratios.
type PartyAnalysis struct {
	Patterns                 []PartyPattern `json:"patterns"`
	IndividualFavorableRate  float64        `json:"individual_favorable_rate"`
	CorporationFavorableRate float64        `json:"corporation_favorable_rate"`
	IndividualVsCorporation  float64        `json:"individual_vs_corporation"` // individual / (individual + corporation)
	PlaintiffFavorableRate   float64        `json:"plaintiff_favorable_rate"`
	DefendantFavorableRate   float64        `json:"defendant_favorable_rate"`
	ProSeSuccessRate         float64        `json:"pro_se_success_rate"`
	RepresentedSuccessRate   float64        `json:"represented_success_rate"`
	SampleSize               int            `json:"sample_size"`
	Confidence               float64        `json:"confidence"`
}

// ValueBracket summarizes dispositions within one monetary bracket.
// INVARIANT: SettledCount + DismissedCount + JudgmentCount + OtherCount ==
// CaseCount for every bracket.
type ValueBracket struct {
	Label              string  `json:"label"`
	LowerBound         float64 `json:"lower_bound"`
	UpperBound         float64 `json:"upper_bound"` // 0 means unbounded
	CaseCount          int     `json:"case_count"`
	SettledCount       int     `json:"settled_count"`
	DismissedCount     int     `json:"dismissed_count"`
	JudgmentCount      int     `json:"judgment_count"`
	OtherCount         int     `json:"other_count"`
	SettlementRate     float64 `json:"settlement_rate"`
	DismissalRate      float64 `json:"dismissal_rate"`
	JudgmentRate       float64 `json:"judgment_rate"`
	AvgJudgmentAmount  float64 `json:"avg_judgment_amount"`
	AvgClaimedAmount   float64 `json:"avg_claimed_amount"`
	JudgmentClaimRatio float64 `json:"judgment_claim_ratio"`
	AvgDurationDays    float64 `json:"avg_duration_days"`
	Confidence         float64 `json:"confidence"`
}

// ValueAnalysis is the value extractor's aggregate output.
type ValueAnalysis struct {
	Brackets                   []ValueBracket `json:"brackets"`
	OverallSettlementRate      float64        `json:"overall_settlement_rate"`
	HighValueSettlementRate    float64        `json:"high_value_settlement_rate"` // > $250K
	LowValueSettlementRate     float64        `json:"low_value_settlement_rate"`  // < $50K
	HighValueCount             int            `json:"high_value_count"`
	LowValueCount              int            `json:"low_value_count"`
	SettlementValueCorrelation float64        `json:"settlement_value_correlation"` // Bounded [-1, 1]
	SampleSize                 int            `json:"sample_size"`
	Confidence                 float64        `json:"confidence"`
}

// TemporalPattern reports the recency distribution of the case set.
type TemporalPattern struct {
	PctWithinOneYear  float64 `json:"pct_within_one_year"`
	PctOverThreeYears float64 `json:"pct_over_three_years"`
	EffectiveCases    float64 `json:"effective_cases"`
	OldestYears       float64 `json:"oldest_years"`
}

// ============================================================================
// BASELINES AND DEVIATION
// ============================================================================

// BaselineScope identifies the peer group a baseline was computed over.
type BaselineScope string

const (
	ScopeJurisdiction BaselineScope = "jurisdiction"
	ScopeCourt        BaselineScope = "court"
)

// Baseline metric names compared against peers.
const (
	MetricSettlementRate         = "settlement_rate"
	MetricMotionGrantRate        = "motion_grant_rate"
	MetricAvgDuration            = "avg_duration"
	MetricPlaintiffFavorableRate = "plaintiff_favorable_rate"
)

// BaselineMetric holds peer-group distribution parameters for one metric.
type BaselineMetric struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"` // Population std-dev
	SampleSize int     `json:"sample_size"`
}

// Baseline is the peer-group comparison reference for one scope.
type Baseline struct {
	Scope       BaselineScope             `json:"scope"`
	ScopeID     string                    `json:"scope_id"`
	Metrics     map[string]BaselineMetric `json:"metrics"`
	JudgeCount  int                       `json:"judge_count"`
	GeneratedAt core.Timestamp            `json:"generated_at"`
}

// MetricComparison holds one judge-vs-baseline metric deviation.
// INVARIANT: StdDev of 0 yields StdDeviations of 0, never a division error.
type MetricComparison struct {
	Metric         string  `json:"metric"`
	JudgeValue     float64 `json:"judge_value"`
	BaselineMean   float64 `json:"baseline_mean"`
	BaselineStdDev float64 `json:"baseline_std_dev"`
	StdDeviations  float64 `json:"std_deviations"`
	PValue         float64 `json:"p_value"`        // Two-sided, under a normal reference
	IsSignificant  bool    `json:"is_significant"` // |sigma| > 2
	Interpretation string  `json:"interpretation"`
}

// DeviationBand buckets the overall deviation score.
type DeviationBand string

const (
	BandWellWithinNorms      DeviationBand = "well_within_norms"
	BandMinorVariance        DeviationBand = "minor_variance"
	BandNotableDeviation     DeviationBand = "notable_deviation"
	BandSignificantDeviation DeviationBand = "significant_deviation"
)

// DeviationAnalysis compares a judge's headline metrics to a baseline.
// Advisory only; never a bias determination.
type DeviationAnalysis struct {
	Scope                 BaselineScope      `json:"scope"`
	Comparisons           []MetricComparison `json:"comparisons"`
	OverallDeviationScore int                `json:"overall_deviation_score"` // [0, 100]
	Band                  DeviationBand      `json:"band"`
	Severity              AnomalySeverity    `json:"severity"`
	Interpretation        string             `json:"interpretation"`
}

// ============================================================================
// ANOMALIES AND THE REPORT
// ============================================================================

// AnomalySeverity orders flagged anomalies for display.
type AnomalySeverity string

const (
	SeverityLow    AnomalySeverity = "low"
	SeverityMedium AnomalySeverity = "medium"
	SeverityHigh   AnomalySeverity = "high"
)

// SeverityRank returns a sortable rank (higher is more severe).
func SeverityRank(s AnomalySeverity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Anomaly is one rule-based statistical deviation flag.
type Anomaly struct {
	Category      string          `json:"category"` // e.g. "baseline", "motion", "timing"
	Metric        string          `json:"metric"`
	Severity      AnomalySeverity `json:"severity"`
	JudgeValue    float64         `json:"judge_value"`
	BaselineValue float64         `json:"baseline_value,omitempty"`
	StdDeviations float64         `json:"std_deviations,omitempty"`
	Description   string          `json:"description"`
}

// MetricsRow is one line of the report's metrics table.
type MetricsRow struct {
	Category       string   `json:"category"`
	Metric         string   `json:"metric"`
	JudgeValue     float64  `json:"judge_value"`
	BaselineValue  *float64 `json:"baseline_value,omitempty"`
	Deviation      *float64 `json:"deviation,omitempty"`
	Interpretation string   `json:"interpretation"`
	Confidence     float64  `json:"confidence"`
	SampleSize     int      `json:"sample_size"`
}

// DetailedFindings bundles the five pattern summaries plus the optional
// baseline comparison.
type DetailedFindings struct {
	Outcomes  OutcomeAnalysis    `json:"outcomes"`
	Motions   MotionAnalysis     `json:"motions"`
	Timing    TimingAnalysis     `json:"timing"`
	Parties   PartyAnalysis      `json:"parties"`
	Values    ValueAnalysis      `json:"values"`
	Temporal  TemporalPattern    `json:"temporal"`
	Deviation *DeviationAnalysis `json:"deviation,omitempty"`
}

// Validate confirms every pattern summary was computed. Computed summaries
// always carry a non-zero confidence, even over empty buckets; a zero value
// means a summary never ran.
func (f DetailedFindings) Validate() error {
	computed := []float64{
		f.Outcomes.Confidence,
		f.Motions.Confidence,
		f.Timing.Confidence,
		f.Parties.Confidence,
		f.Values.Confidence,
	}
	for _, c := range computed {
		if c == 0 {
			return core.ErrMissingSummaries
		}
	}
	return nil
}

// ReportMetadata identifies what a report was computed over.
type ReportMetadata struct {
	ReportID       core.ReportID       `json:"report_id"`
	JudgeID        core.JudgeID        `json:"judge_id"`
	JudgeName      string              `json:"judge_name,omitempty"`
	JurisdictionID core.JurisdictionID `json:"jurisdiction_id"`
	ReferenceDate  core.Timestamp      `json:"reference_date"`
	GeneratedAt    core.Timestamp      `json:"generated_at"`
	CaseCount      int                 `json:"case_count"`
}

// JudicialBiasReport is the sole externally consumed artifact.
type JudicialBiasReport struct {
	Metadata         ReportMetadata     `json:"metadata"`
	ConfidenceTier   ConfidenceScore    `json:"confidence_tier"`
	DataQuality      DataQualityMetrics `json:"data_quality"`
	MetricsTable     []MetricsRow       `json:"metrics_table"`
	FlaggedAnomalies []Anomaly          `json:"flagged_anomalies"`
	DetailedFindings DetailedFindings   `json:"detailed_findings"`
	ExecutiveSummary string             `json:"executive_summary"`
	MethodologyNotes []string           `json:"methodology_notes"`
	LimitedData      bool               `json:"limited_data"` // Presentation hint below the 500-case gate
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// NewBaseline creates a baseline with validation of scope identity.
func NewBaseline(scope BaselineScope, scopeID string, judgeCount int) (*Baseline, error) {
	if scopeID == "" {
		return nil, fmt.Errorf("baseline scope ID must be set")
	}
	if scope != ScopeJurisdiction && scope != ScopeCourt {
		return nil, fmt.Errorf("unknown baseline scope %q", scope)
	}
	return &Baseline{
		Scope:       scope,
		ScopeID:     scopeID,
		Metrics:     make(map[string]BaselineMetric),
		JudgeCount:  judgeCount,
		GeneratedAt: core.Now(),
	}, nil
}

// CacheKey returns the canonical cache key for a baseline scope.
func (b *Baseline) CacheKey() string {
	return BaselineCacheKey(b.Scope, b.ScopeID)
}

// BaselineCacheKey builds the canonical cache key for a scope without an
// instantiated baseline.
func BaselineCacheKey(scope BaselineScope, scopeID string) string {
	return fmt.Sprintf("baseline:%s:%s", scope, scopeID)
}
