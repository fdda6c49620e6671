// Package legacy carries the percentage-based analytics shape the AI
// augmentation path blends over. It is deliberately kept apart from the
// structured report artifacts: the blend operates on flat per-category
// percentages with their own confidence and sample size, nothing else.
package legacy

// Metric is one percentage-valued analytic paired with its provenance.
type Metric struct {
	Value      float64 `json:"value"`      // 0-100
	Confidence float64 `json:"confidence"` // 0-100
	SampleSize int     `json:"sample_size"`
}

// Analytics is the legacy per-category percentage shape.
// DefendantFavorPct and PlaintiffFavorPct are complementary: defendant is
// always recomputed as 100 - plaintiff, never blended independently.
type Analytics struct {
	SettlementPct     Metric `json:"settlement_pct"`
	MotionGrantPct    Metric `json:"motion_grant_pct"`
	PlaintiffFavorPct Metric `json:"plaintiff_favor_pct"`
	DefendantFavorPct Metric `json:"defendant_favor_pct"`
	ProSeSuccessPct   Metric `json:"pro_se_success_pct"`

	PatternNotes    []string `json:"pattern_notes,omitempty"`
	LimitationNotes []string `json:"limitation_notes,omitempty"`
}

// Normalize enforces the complementary-pair invariant and clamps every
// metric to [0, 100].
func (a Analytics) Normalize() Analytics {
	a.SettlementPct = clampMetric(a.SettlementPct)
	a.MotionGrantPct = clampMetric(a.MotionGrantPct)
	a.PlaintiffFavorPct = clampMetric(a.PlaintiffFavorPct)
	a.ProSeSuccessPct = clampMetric(a.ProSeSuccessPct)

	// Complementary metric recomputed from the primary.
	a.DefendantFavorPct = Metric{
		Value:      100 - a.PlaintiffFavorPct.Value,
		Confidence: a.PlaintiffFavorPct.Confidence,
		SampleSize: a.PlaintiffFavorPct.SampleSize,
	}
	return a
}

func clampMetric(m Metric) Metric {
	if m.Value < 0 {
		m.Value = 0
	}
	if m.Value > 100 {
		m.Value = 100
	}
	if m.Confidence < 0 {
		m.Confidence = 0
	}
	if m.Confidence > 100 {
		m.Confidence = 100
	}
	if m.SampleSize < 0 {
		m.SampleSize = 0
	}
	return m
}
