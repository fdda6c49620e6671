// Package weighting assigns recency-decay weights to case records.
// Continuous decay avoids discontinuities at bucket edges while still
// privileging recent behavior.
package weighting

import (
	"math"
	"time"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/core"
)

// Defaults for the decay curve.
const (
	DefaultDecayRate = 0.95
	DefaultMinWeight = 0.5
)

// Config controls the decay curve and reference point.
type Config struct {
	DecayRate     float64
	MinWeight     float64
	ReferenceDate time.Time
}

// Engine computes temporal decay weights relative to a reference date.
type Engine struct {
	decayRate float64
	minWeight float64
	reference time.Time
}

// NewEngine creates a weighting engine, filling zero-valued config fields
// with defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.DecayRate <= 0 || cfg.DecayRate > 1 {
		cfg.DecayRate = DefaultDecayRate
	}
	if cfg.MinWeight <= 0 || cfg.MinWeight > 1 {
		cfg.MinWeight = DefaultMinWeight
	}
	if cfg.ReferenceDate.IsZero() {
		cfg.ReferenceDate = time.Now()
	}
	return &Engine{
		decayRate: cfg.DecayRate,
		minWeight: cfg.MinWeight,
		reference: cfg.ReferenceDate,
	}
}

// MinWeight returns the configured floor weight.
func (e *Engine) MinWeight() float64 {
	return e.minWeight
}

// Weigh computes a WeightedCase for every record. A case with no resolvable
// date gets the floor weight and is flagged as oldest for distribution stats.
func (e *Engine) Weigh(cases []caselaw.CaseRecord) []caselaw.WeightedCase {
	weighted := make([]caselaw.WeightedCase, 0, len(cases))
	oldest := e.oldestAge(cases)

	for _, c := range cases {
		effective, ok := c.EffectiveDate()
		if !ok {
			weighted = append(weighted, caselaw.WeightedCase{
				Record:      c,
				Weight:      e.minWeight,
				YearsOld:    oldest,
				DecayFactor: 0,
				DateMissing: true,
			})
			continue
		}

		age := core.YearsBetween(effective, e.reference)
		decay := math.Pow(e.decayRate, age)
		weight := math.Max(e.minWeight, decay)
		weighted = append(weighted, caselaw.WeightedCase{
			Record:      c,
			Weight:      weight,
			YearsOld:    age,
			DecayFactor: decay,
		})
	}
	return weighted
}

// oldestAge finds the oldest resolvable age in the set, used as the stand-in
// age for undated records in distribution stats only.
func (e *Engine) oldestAge(cases []caselaw.CaseRecord) float64 {
	oldest := 0.0
	for _, c := range cases {
		if effective, ok := c.EffectiveDate(); ok {
			if age := core.YearsBetween(effective, e.reference); age > oldest {
				oldest = age
			}
		}
	}
	return oldest
}

// EffectiveCount returns the sum of weights, the discounted case count used
// in confidence math.
func EffectiveCount(weighted []caselaw.WeightedCase) float64 {
	total := 0.0
	for _, w := range weighted {
		total += w.Weight
	}
	return total
}

// WeightedRate computes a weighted boolean-predicate rate:
// sum(weight * indicator) / sum(weight). Zero total weight yields 0.
func WeightedRate(weighted []caselaw.WeightedCase, predicate func(caselaw.CaseRecord) bool) float64 {
	num, den := 0.0, 0.0
	for _, w := range weighted {
		den += w.Weight
		if predicate(w.Record) {
			num += w.Weight
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// WeightedMean computes the weight-adjusted mean of a numeric projection.
// Non-finite projected values are excluded. The second return is false when
// no finite value contributed.
func WeightedMean(weighted []caselaw.WeightedCase, value func(caselaw.CaseRecord) (float64, bool)) (float64, bool) {
	num, den := 0.0, 0.0
	for _, w := range weighted {
		v, ok := value(w.Record)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		num += w.Weight * v
		den += w.Weight
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// WeightedStdDev computes the weighted population standard deviation of a
// numeric projection, with the same exclusion policy as WeightedMean.
func WeightedStdDev(weighted []caselaw.WeightedCase, value func(caselaw.CaseRecord) (float64, bool)) (float64, bool) {
	mean, ok := WeightedMean(weighted, value)
	if !ok {
		return 0, false
	}
	num, den := 0.0, 0.0
	for _, w := range weighted {
		v, vok := value(w.Record)
		if !vok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		d := v - mean
		num += w.Weight * d * d
		den += w.Weight
	}
	if den == 0 {
		return 0, false
	}
	return math.Sqrt(num / den), true
}

// RecencyDistribution reports the share of cases at most one year old and
// more than three years old, plus the oldest observed age. Undated cases
// count as oldest.
func RecencyDistribution(weighted []caselaw.WeightedCase) (pctWithinOneYear, pctOverThreeYears, oldestYears float64) {
	if len(weighted) == 0 {
		return 0, 0, 0
	}
	withinOne, overThree := 0, 0
	for _, w := range weighted {
		if w.YearsOld > oldestYears {
			oldestYears = w.YearsOld
		}
		if w.YearsOld <= 1 {
			withinOne++
		}
		if w.YearsOld > 3 {
			overThree++
		}
	}
	n := float64(len(weighted))
	return float64(withinOne) / n * 100, float64(overThree) / n * 100, oldestYears
}
