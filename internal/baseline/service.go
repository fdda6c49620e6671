// Package baseline computes and caches peer-group comparison references and
// analyzes a judge's deviation from them.
package baseline

import (
	"context"
	"time"

	"github.com/montanaflynn/stats"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
	"jurimetrics/domain/report"
	"jurimetrics/internal/logging"
	"jurimetrics/internal/patterns"
	"jurimetrics/ports"
)

// MinQualifyingCases is the floor a peer judge must clear to join the pool.
const MinQualifyingCases = 10

// DefaultTTL bounds baseline staleness across all cache tiers.
const DefaultTTL = time.Hour

// DefaultWindow is the trailing peer-pool window.
const DefaultWindow = 3 * 365 * 24 * time.Hour

// Service resolves baselines read-through: fast cache, then process-local
// cache, then the durable store, else recompute and write back to every
// tier. Cache failures never abort the read.
type Service struct {
	source ports.CaseSource
	fast   ports.BaselineCache // Optional shared tier (redis); may be nil
	local  ports.BaselineCache
	store  ports.BaselineStore // Optional durable tier; may be nil
	log    *logging.Logger
	ttl    time.Duration
	window time.Duration
}

// NewService wires the baseline resolution chain. fast and store may be nil.
func NewService(source ports.CaseSource, fast ports.BaselineCache, local ports.BaselineCache, store ports.BaselineStore, log *logging.Logger, ttl, window time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{
		source: source,
		fast:   fast,
		local:  local,
		store:  store,
		log:    log,
		ttl:    ttl,
		window: window,
	}
}

// GetBaseline resolves the baseline for a scope through the cache chain.
func (s *Service) GetBaseline(ctx context.Context, scope report.BaselineScope, scopeID string) (*report.Baseline, error) {
	key := report.BaselineCacheKey(scope, scopeID)

	if s.fast != nil {
		if b, ok, err := s.fast.Get(ctx, key); err != nil {
			s.log.Warn("fast baseline cache read failed, falling through: %v", err)
		} else if ok {
			return b, nil
		}
	}

	if b, ok, err := s.local.Get(ctx, key); err != nil {
		s.log.Warn("local baseline cache read failed, falling through: %v", err)
	} else if ok {
		// Refresh the fast tier opportunistically.
		s.writeBack(ctx, key, b, true, false)
		return b, nil
	}

	if s.store != nil {
		if b, err := s.store.Load(ctx, scope, scopeID); err == nil && b != nil && s.fresh(b) {
			s.writeBack(ctx, key, b, true, true)
			return b, nil
		}
	}

	b, err := s.Compute(ctx, scope, scopeID)
	if err != nil {
		return nil, err
	}
	s.writeBack(ctx, key, b, true, true)
	if s.store != nil {
		if err := s.store.Save(ctx, b); err != nil {
			s.log.Warn("baseline store write failed: %v", err)
		}
	}
	return b, nil
}

// writeBack populates cache tiers; failures are logged, never surfaced.
func (s *Service) writeBack(ctx context.Context, key string, b *report.Baseline, toFast, toLocal bool) {
	if toLocal {
		if err := s.local.Set(ctx, key, b, s.ttl); err != nil {
			s.log.Warn("local baseline cache write failed: %v", err)
		}
	}
	if toFast && s.fast != nil {
		if err := s.fast.Set(ctx, key, b, s.ttl); err != nil {
			s.log.Warn("fast baseline cache write failed: %v", err)
		}
	}
}

func (s *Service) fresh(b *report.Baseline) bool {
	return time.Since(b.GeneratedAt.Time()) < s.ttl
}

// Compute builds a baseline from the peer pool: every judge in the scope
// with at least MinQualifyingCases cases in the trailing window contributes
// one value per headline metric; the baseline stores the population mean and
// std-dev of those values.
func (s *Service) Compute(ctx context.Context, scope report.BaselineScope, scopeID string) (*report.Baseline, error) {
	peers, err := s.source.PeerJudges(ctx, string(scope), scopeID)
	if err != nil {
		return nil, err
	}

	cutoff := core.NewTimestamp(time.Now().Add(-s.window))
	samples := map[string][]float64{
		report.MetricSettlementRate:         {},
		report.MetricMotionGrantRate:        {},
		report.MetricAvgDuration:            {},
		report.MetricPlaintiffFavorableRate: {},
	}

	qualifying := 0
	for _, judgeID := range peers {
		cases, err := s.source.CasesForJudgeSince(ctx, judgeID, cutoff)
		if err != nil {
			s.log.Warn("skipping peer %s: %v", judgeID, err)
			continue
		}
		if len(cases) < MinQualifyingCases {
			continue
		}
		qualifying++

		m := JudgeHeadlineMetrics(cases)
		samples[report.MetricSettlementRate] = append(samples[report.MetricSettlementRate], m.SettlementRate)
		samples[report.MetricMotionGrantRate] = append(samples[report.MetricMotionGrantRate], m.MotionGrantRate)
		samples[report.MetricAvgDuration] = append(samples[report.MetricAvgDuration], m.AvgDurationDays)
		samples[report.MetricPlaintiffFavorableRate] = append(samples[report.MetricPlaintiffFavorableRate], m.PlaintiffFavorableRate)
	}

	b, err := report.NewBaseline(scope, scopeID, qualifying)
	if err != nil {
		return nil, err
	}
	for metric, values := range samples {
		b.Metrics[metric] = summarize(values)
	}
	return b, nil
}

// JudgeHeadlineMetrics computes the four baseline metrics for one judge's
// case set using the same extractors the report pipeline runs.
func JudgeHeadlineMetrics(cases []caselaw.CaseRecord) ports.JudgeMetrics {
	outcomes := patterns.ExtractOutcomes(cases)
	motions := patterns.ExtractMotions(cases)
	timing := patterns.ExtractTiming(cases)
	parties := patterns.ExtractParties(cases)

	return ports.JudgeMetrics{
		CaseCount:              len(cases),
		SettlementRate:         outcomes.OverallSettlementRate,
		MotionGrantRate:        motions.OverallGrantRate,
		AvgDurationDays:        timing.OverallAvgDays,
		PlaintiffFavorableRate: parties.PlaintiffFavorableRate,
	}
}

// summarize computes the population mean/std-dev of a peer metric sample.
func summarize(values []float64) report.BaselineMetric {
	if len(values) == 0 {
		return report.BaselineMetric{}
	}
	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StdDevP(values)
	return report.BaselineMetric{
		Mean:       mean,
		StdDev:     stdDev,
		SampleSize: len(values),
	}
}
