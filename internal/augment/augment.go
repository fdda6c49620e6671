// Package augment blends the legacy percentage analytics with an external
// generative model's independent read of case documents. The blend is
// sample-size-weighted and the provider chain degrades to the base
// analytics, never to an error.
package augment

import (
	"context"
	"fmt"
	"sort"

	"jurimetrics/domain/legacy"
	"jurimetrics/internal/logging"
	"jurimetrics/ports"
)

// DefaultMaxDocuments caps the documents handed to a provider per run.
const DefaultMaxDocuments = 60

// Engine runs the provider fallback chain and blends results.
type Engine struct {
	providers []ports.AnalysisProvider
	log       *logging.Logger
	maxDocs   int
}

// NewEngine creates a blend engine over an ordered provider chain. An empty
// chain is valid: Augment then returns the base analytics unchanged.
func NewEngine(providers []ports.AnalysisProvider, log *logging.Logger, maxDocs int) *Engine {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxDocuments
	}
	return &Engine{providers: providers, log: log, maxDocs: maxDocs}
}

// Augment attempts each provider in order and blends the first usable
// analysis into the base analytics. A provider error or fallback sentinel
// moves to the next provider; exhausting the chain leaves base unchanged.
func (e *Engine) Augment(ctx context.Context, base legacy.Analytics, docs []ports.DocumentSample) legacy.Analytics {
	base = base.Normalize()
	if len(e.providers) == 0 || len(docs) == 0 {
		return base
	}
	if len(docs) > e.maxDocs {
		docs = docs[:e.maxDocs]
	}

	for _, provider := range e.providers {
		analysis, err := provider.AnalyzeDocuments(ctx, docs)
		if err != nil {
			e.log.Warn("analysis provider %s failed: %v", provider.Name(), err)
			continue
		}
		if analysis.Fallback {
			e.log.Info("analysis provider %s returned fallback sentinel", provider.Name())
			continue
		}
		return e.blend(base, analysis)
	}

	e.log.Info("all analysis providers exhausted; keeping base analytics")
	return base
}

// blend merges the provider's read into the base analytics metric by metric.
func (e *Engine) blend(base legacy.Analytics, analysis *ports.ProviderAnalysis) legacy.Analytics {
	ai := analysis.Analytics.Normalize()

	merged := legacy.Analytics{
		SettlementPct:     BlendMetric(base.SettlementPct, ai.SettlementPct),
		MotionGrantPct:    BlendMetric(base.MotionGrantPct, ai.MotionGrantPct),
		PlaintiffFavorPct: BlendMetric(base.PlaintiffFavorPct, ai.PlaintiffFavorPct),
		ProSeSuccessPct:   BlendMetric(base.ProSeSuccessPct, ai.ProSeSuccessPct),
	}

	merged.PatternNotes = unionNotes(base.PatternNotes, ai.PatternNotes)
	merged.LimitationNotes = unionNotes(base.LimitationNotes, ai.LimitationNotes)
	merged.LimitationNotes = append(merged.LimitationNotes, fmt.Sprintf(
		"AI augmentation blended an independent review of %d case documents (analysis window: up to %d most recent documents).",
		analysis.DocumentCount, e.maxDocs))

	// Normalize recomputes the complementary defendant metric from the
	// blended plaintiff primary.
	return merged.Normalize()
}

// BlendMetric is the sample-size-weighted average of the base and AI reads.
// Zero total weight falls back to the unweighted mean. Confidence blends
// identically to the value.
func BlendMetric(base, ai legacy.Metric) legacy.Metric {
	baseW := float64(base.SampleSize)
	aiW := float64(ai.SampleSize)
	total := baseW + aiW

	if total == 0 {
		return legacy.Metric{
			Value:      (base.Value + ai.Value) / 2,
			Confidence: (base.Confidence + ai.Confidence) / 2,
			SampleSize: 0,
		}
	}
	return legacy.Metric{
		Value:      (base.Value*baseW + ai.Value*aiW) / total,
		Confidence: (base.Confidence*baseW + ai.Confidence*aiW) / total,
		SampleSize: base.SampleSize + ai.SampleSize,
	}
}

// unionNotes merges note lists, deduplicating while keeping first-seen order.
func unionNotes(a, b []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(a)+len(b))
	for _, note := range append(append([]string{}, a...), b...) {
		if note == "" || seen[note] {
			continue
		}
		seen[note] = true
		out = append(out, note)
	}
	return out
}

// ConservativeDefault is the clearly-labeled analytics object returned when
// even the base computation cannot complete.
func ConservativeDefault() legacy.Analytics {
	neutral := legacy.Metric{Value: 50, Confidence: 40, SampleSize: 0}
	a := legacy.Analytics{
		SettlementPct:     neutral,
		MotionGrantPct:    neutral,
		PlaintiffFavorPct: neutral,
		ProSeSuccessPct:   neutral,
		LimitationNotes: []string{
			"Conservative default analytics: the underlying computation could not complete and no AI augmentation was applied.",
		},
	}
	return a.Normalize()
}

// SelectDocuments picks the most recent analyzable documents up to the
// engine's cap, preferring cases that actually carry opinion text.
func (e *Engine) SelectDocuments(docs []ports.DocumentSample) []ports.DocumentSample {
	withText := make([]ports.DocumentSample, 0, len(docs))
	for _, d := range docs {
		if d.Text != "" {
			withText = append(withText, d)
		}
	}
	sort.SliceStable(withText, func(i, j int) bool {
		return withText[i].CaseID > withText[j].CaseID
	})
	if len(withText) > e.maxDocs {
		withText = withText[:e.maxDocs]
	}
	return withText
}
