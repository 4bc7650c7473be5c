package analysis

import (
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"gonum.org/v1/gonum/stat"
)

// AxisStats summarises one coordinate of an orbit.
type AxisStats struct {
	Mean, Variance float64
	Min, Max       float64
}

// Summary describes both axes of an orbit.
type Summary struct {
	Points int
	X, Y   AxisStats
}

// Describe computes per-axis statistics. Variance is the unbiased estimate.
func Describe(tr dynamo.Trajectory) Summary {
	s := Summary{Points: len(tr)}
	if len(tr) == 0 {
		return s
	}
	s.X = axis(tr.Xs())
	s.Y = axis(tr.Ys())
	return s
}

func axis(v []float64) AxisStats {
	mean, variance := stat.MeanVariance(v, nil)
	a := AxisStats{Mean: mean, Variance: variance, Min: v[0], Max: v[0]}
	for _, x := range v[1:] {
		if x < a.Min {
			a.Min = x
		}
		if x > a.Max {
			a.Max = x
		}
	}
	return a
}
