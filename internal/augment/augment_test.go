package augment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurimetrics/domain/legacy"
	"jurimetrics/internal/logging"
	"jurimetrics/ports"
)

// scriptedProvider returns a fixed analysis, error, or fallback.
type scriptedProvider struct {
	name     string
	analysis *ports.ProviderAnalysis
	err      error
	calls    int
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) AnalyzeDocuments(ctx context.Context, docs []ports.DocumentSample) (*ports.ProviderAnalysis, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.analysis, nil
}

func baseAnalytics() legacy.Analytics {
	return legacy.Analytics{
		SettlementPct:     legacy.Metric{Value: 60, Confidence: 80, SampleSize: 100},
		MotionGrantPct:    legacy.Metric{Value: 55, Confidence: 80, SampleSize: 80},
		PlaintiffFavorPct: legacy.Metric{Value: 50, Confidence: 75, SampleSize: 100},
		ProSeSuccessPct:   legacy.Metric{Value: 30, Confidence: 70, SampleSize: 20},
		PatternNotes:      []string{"Settlements cluster in contract disputes."},
	}
}

func sampleDocs(n int) []ports.DocumentSample {
	docs := make([]ports.DocumentSample, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, ports.DocumentSample{
			CaseID: string(rune('a' + i)),
			Text:   "opinion text",
		})
	}
	return docs
}

func TestAugmentEmptyChainReturnsBase(t *testing.T) {
	engine := NewEngine(nil, logging.NewDefaultLogger(), 0)
	base := baseAnalytics()

	got := engine.Augment(context.Background(), base, sampleDocs(3))
	assert.Equal(t, base.Normalize(), got)
}

func TestAugmentFallbackSentinelLeavesBaseUnchanged(t *testing.T) {
	provider := &scriptedProvider{
		name:     "primary",
		analysis: &ports.ProviderAnalysis{Fallback: true, Provider: "primary"},
	}
	engine := NewEngine([]ports.AnalysisProvider{provider}, logging.NewDefaultLogger(), 0)
	base := baseAnalytics()

	got := engine.Augment(context.Background(), base, sampleDocs(3))
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, base.Normalize(), got)
}

func TestAugmentFailedPrimaryFallsToSecondary(t *testing.T) {
	primary := &scriptedProvider{name: "primary", err: errors.New("timeout")}
	secondary := &scriptedProvider{
		name: "secondary",
		analysis: &ports.ProviderAnalysis{
			Analytics: legacy.Analytics{
				SettlementPct: legacy.Metric{Value: 80, Confidence: 70, SampleSize: 50},
			},
			DocumentCount: 3,
			Provider:      "secondary",
		},
	}
	engine := NewEngine([]ports.AnalysisProvider{primary, secondary}, logging.NewDefaultLogger(), 0)

	got := engine.Augment(context.Background(), baseAnalytics(), sampleDocs(3))
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	// 60*100 + 80*50 over 150.
	assert.InDelta(t, 200.0/3.0, got.SettlementPct.Value, 1e-9)
}

func TestBlendMetricSampleSizeWeighting(t *testing.T) {
	base := legacy.Metric{Value: 60, Confidence: 80, SampleSize: 100}
	ai := legacy.Metric{Value: 80, Confidence: 60, SampleSize: 50}

	blended := BlendMetric(base, ai)
	assert.InDelta(t, (60.0*100+80.0*50)/150.0, blended.Value, 1e-9)
	assert.InDelta(t, (80.0*100+60.0*50)/150.0, blended.Confidence, 1e-9)
	assert.Equal(t, 150, blended.SampleSize)
}

func TestBlendMetricZeroSamplesUnweightedMean(t *testing.T) {
	blended := BlendMetric(
		legacy.Metric{Value: 40, Confidence: 50},
		legacy.Metric{Value: 60, Confidence: 70},
	)
	assert.InDelta(t, 50, blended.Value, 1e-9)
	assert.InDelta(t, 60, blended.Confidence, 1e-9)
	assert.Zero(t, blended.SampleSize)
}

func TestAugmentRecomputesDefendantComplement(t *testing.T) {
	provider := &scriptedProvider{
		name: "primary",
		analysis: &ports.ProviderAnalysis{
			Analytics: legacy.Analytics{
				PlaintiffFavorPct: legacy.Metric{Value: 70, Confidence: 60, SampleSize: 100},
				// A provider-supplied defendant figure must be ignored.
				DefendantFavorPct: legacy.Metric{Value: 99, Confidence: 99, SampleSize: 100},
			},
			DocumentCount: 5,
		},
	}
	engine := NewEngine([]ports.AnalysisProvider{provider}, logging.NewDefaultLogger(), 0)

	got := engine.Augment(context.Background(), baseAnalytics(), sampleDocs(3))
	assert.InDelta(t, 100-got.PlaintiffFavorPct.Value, got.DefendantFavorPct.Value, 1e-9)
	assert.InDelta(t, 60, got.PlaintiffFavorPct.Value, 1e-9) // (50*100 + 70*100) / 200
}

func TestAugmentUnionsAndSynthesizesNotes(t *testing.T) {
	provider := &scriptedProvider{
		name: "primary",
		analysis: &ports.ProviderAnalysis{
			Analytics: legacy.Analytics{
				PatternNotes: []string{
					"Settlements cluster in contract disputes.", // duplicate of base
					"Pro se litigants fare poorly in motions.",
				},
			},
			DocumentCount: 7,
		},
	}
	engine := NewEngine([]ports.AnalysisProvider{provider}, logging.NewDefaultLogger(), 10)

	got := engine.Augment(context.Background(), baseAnalytics(), sampleDocs(3))
	assert.Equal(t, []string{
		"Settlements cluster in contract disputes.",
		"Pro se litigants fare poorly in motions.",
	}, got.PatternNotes)

	require.NotEmpty(t, got.LimitationNotes)
	assert.Contains(t, got.LimitationNotes[len(got.LimitationNotes)-1], "7 case documents")
}

func TestConservativeDefault(t *testing.T) {
	d := ConservativeDefault()
	assert.InDelta(t, 50, d.SettlementPct.Value, 1e-9)
	assert.InDelta(t, 40, d.SettlementPct.Confidence, 1e-9)
	assert.Zero(t, d.SettlementPct.SampleSize)
	assert.InDelta(t, 50, d.DefendantFavorPct.Value, 1e-9)
	require.Len(t, d.LimitationNotes, 1)
}

func TestSelectDocumentsPrefersTextAndCaps(t *testing.T) {
	engine := NewEngine(nil, logging.NewDefaultLogger(), 2)

	docs := []ports.DocumentSample{
		{CaseID: "a", Text: ""},
		{CaseID: "b", Text: "opinion"},
		{CaseID: "c", Text: "opinion"},
		{CaseID: "d", Text: "opinion"},
	}
	selected := engine.SelectDocuments(docs)
	require.Len(t, selected, 2)
	assert.Equal(t, "d", selected[0].CaseID)
	assert.Equal(t, "c", selected[1].CaseID)
}
