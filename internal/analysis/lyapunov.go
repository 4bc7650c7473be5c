package analysis

import (
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/maps"
)

// DefaultThreshold separates order from chaos for exponents measured over a
// few thousand iterations. Regular orbits sit near 1e-3, chaotic ones above 0.02.
const DefaultThreshold = 0.01

// Lyapunov estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two trajectories d0 apart along x
// 2. Accumulate ln(d/d0) after every step
// 3. Pull the companion back to distance d0 along the current separation
//
// On the torus the separation is measured through the seam.
func Lyapunov(step maps.Stepper, x0, y0 float64, n int, d0 float64) (float64, error) {
	if n <= 0 {
		return 0, dynamo.Configf("iterations", "must be positive, got %d", n)
	}
	if d0 <= 0 {
		return 0, dynamo.Configf("perturbation", "must be positive, got %g", d0)
	}

	wraps := step.Wraps()
	if wraps {
		x0, y0 = maps.Wrap(x0), maps.Wrap(y0)
	}

	xa, ya := x0, y0
	xb, yb := x0+d0, y0
	sumLog := 0.0

	for i := 0; i < n; i++ {
		xa, ya = step.Step(xa, ya)
		xb, yb = step.Step(xb, yb)

		if p := (dynamo.Point{X: xa, Y: ya}); !p.IsValid() || math.Abs(xa) > maps.DefaultBound || math.Abs(ya) > maps.DefaultBound {
			return 0, &dynamo.DivergenceError{Step: i, Point: p, Bound: maps.DefaultBound}
		}

		dx, dy := xb-xa, yb-ya
		if wraps {
			dx, dy = maps.Wrap(dx), maps.Wrap(dy)
		}
		d := math.Hypot(dx, dy)
		if d == 0 || math.IsNaN(d) {
			// The orbits merged; nothing more to learn.
			return sumLog / float64(i+1), nil
		}

		sumLog += math.Log(d / d0)
		xb = xa + dx*d0/d
		yb = ya + dy*d0/d
	}

	return sumLog / float64(n), nil
}

// Classify maps an exponent to LabelChaos or LabelOrder.
func Classify(lambda, threshold float64) int {
	if lambda > threshold {
		return dynamo.LabelChaos
	}
	return dynamo.LabelOrder
}
