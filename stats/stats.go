// Package stats keeps running summaries of solver scores.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Running accumulates a sample one value at a time using Welford's method,
// so the mean and variance never need the whole sample in memory.
type Running struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (r *Running) Add(x float64) {
	r.n++
	if r.n == 1 {
		r.mean, r.m2 = x, 0
		r.min, r.max = x, x
		return
	}
	delta := x - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (x - r.mean)
	r.min = math.Min(r.min, x)
	r.max = math.Max(r.max, x)
}

func (r *Running) Count() int {
	return r.n
}

func (r *Running) Mean() float64 {
	return r.mean
}

func (r *Running) Min() float64 {
	return r.min
}

func (r *Running) Max() float64 {
	return r.max
}

// Variance is the sample variance.
func (r *Running) Variance() float64 {
	if r.n <= 1 {
		return 0
	}
	return r.m2 / float64(r.n-1)
}

func (r *Running) Stdev() float64 {
	return math.Sqrt(r.Variance())
}

func (r *Running) StandardError() float64 {
	if r.n == 0 {
		return 0
	}
	return math.Sqrt(r.Variance() / float64(r.n))
}

// Interval is the half-width of the confidence interval around the mean.
// confidence is a percentage, e.g. 95.
func (r *Running) Interval(confidence float64) float64 {
	return ZVal(confidence) * r.StandardError()
}

// ZVal returns the two-tailed z-value for a confidence percentage.
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// Percent is 100*part/whole, or 0 for an empty whole.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
