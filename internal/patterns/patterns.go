// Package patterns holds the five independent pattern extractors. Each is a
// pure function over a case array, safe to run in parallel across judges or
// extractor types.
package patterns

import (
	"math"

	"github.com/montanaflynn/stats"
)

// SampleConfidence is the shared confidence curve from sample size.
func SampleConfidence(n int) float64 {
	switch {
	case n >= 100:
		return 95
	case n >= 50:
		return 90
	case n >= 30:
		return 85
	case n >= 20:
		return 80
	case n >= 10:
		return 75
	case n >= 5:
		return 70
	default:
		return 65
	}
}

// finiteMean averages the finite values in vs; 0 when none contribute.
// Non-finite and negative-sentinel handling is the caller's concern.
func finiteMean(vs []float64) float64 {
	filtered := finite(vs)
	if len(filtered) == 0 {
		return 0
	}
	m, err := stats.Mean(filtered)
	if err != nil {
		return 0
	}
	return m
}

func finiteMedian(vs []float64) float64 {
	filtered := finite(vs)
	if len(filtered) == 0 {
		return 0
	}
	m, err := stats.Median(filtered)
	if err != nil {
		return 0
	}
	return m
}

func finitePercentile(vs []float64, p float64) float64 {
	filtered := finite(vs)
	if len(filtered) == 0 {
		return 0
	}
	v, err := stats.Percentile(filtered, p)
	if err != nil {
		return 0
	}
	return v
}

func finiteMin(vs []float64) float64 {
	filtered := finite(vs)
	if len(filtered) == 0 {
		return 0
	}
	v, err := stats.Min(filtered)
	if err != nil {
		return 0
	}
	return v
}

func finiteMax(vs []float64) float64 {
	filtered := finite(vs)
	if len(filtered) == 0 {
		return 0
	}
	v, err := stats.Max(filtered)
	if err != nil {
		return 0
	}
	return v
}

func finite(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ratio returns num/den, 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
