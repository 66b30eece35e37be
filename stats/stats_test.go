package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunning(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores   []float64
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]float64{0.14, 0.35, 0.71, 1.24, 0.10, 0.24, 0.55, 0.33, 0.87, 0.19}, 0.472, 0.36937785531891, 0.10, 1.24},
		{[]float64{1}, 1, 0, 1, 1},
		{[]float64{}, 0, 0, 0, 0},
		{[]float64{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		r := &Running{}
		for _, s := range c.scores {
			r.Add(s)
		}
		is.Equal(r.Count(), len(c.scores))
		is.True(FuzzyEqual(r.Mean(), c.mean))
		is.True(FuzzyEqual(r.Stdev(), c.stdev))
		is.Equal(r.Min(), c.min)
		is.Equal(r.Max(), c.max)
	}
}

func TestInterval(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	r := &Running{}
	for _, s := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Add(s)
	}
	is.True(FuzzyEqual(r.Interval(95), ZVal(95)*r.StandardError()))
	is.True((&Running{}).Interval(95) == 0)
}

func TestPercent(t *testing.T) {
	is := is.New(t)
	is.Equal(Percent(1, 4), 25.0)
	is.Equal(Percent(3, 0), 0.0)
}
