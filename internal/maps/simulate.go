package maps

import (
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// Stepper advances a point by one iteration of a map.
type Stepper interface {
	Step(x, y float64) (float64, float64)
	// Wraps reports whether the map lives on the torus [-π, π)².
	Wraps() bool
}

// Wrap folds an angle into [-π, π).
func Wrap(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// StepperFor returns the one-step map of a simulated family.
func StepperFor(p Params) (Stepper, error) {
	if p == nil {
		return nil, dynamo.Configf("params", "map family is required")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	switch v := p.(type) {
	case StandardParams:
		return v, nil
	case DeVogelaereParams:
		return v, nil
	case WebParams:
		return v, nil
	default:
		return nil, dynamo.Configf("family", "%v has no stepper", p.Kind())
	}
}

// Simulate produces spec.Iterations points, excluding the initial point.
func Simulate(spec Spec) (dynamo.Trajectory, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch p := spec.Params.(type) {
	case ExternalParams:
		if len(p.Points) < spec.Iterations {
			return nil, &dynamo.ShapeError{Got: len(p.Points), Want: spec.Iterations, What: "external points"}
		}
		tr := p.Points.Head(spec.Iterations)
		if !tr.IsValid() {
			return nil, &dynamo.DivergenceError{Step: firstInvalid(tr), Point: tr[firstInvalid(tr)], Bound: DefaultBound}
		}
		return tr, nil
	default:
		step, err := StepperFor(p)
		if err != nil {
			return nil, err
		}
		return iterate(step, spec.X0, spec.Y0, spec.Iterations, DefaultBound)
	}
}

func iterate(step Stepper, x, y float64, n int, bound float64) (dynamo.Trajectory, error) {
	if step.Wraps() {
		x, y = Wrap(x), Wrap(y)
	}

	tr := make(dynamo.Trajectory, 0, n)
	for i := 0; i < n; i++ {
		x, y = step.Step(x, y)

		p := dynamo.Point{X: x, Y: y}
		if !p.IsValid() || math.Abs(x) > bound || math.Abs(y) > bound {
			return nil, &dynamo.DivergenceError{Step: i, Point: p, Bound: bound}
		}
		tr = append(tr, p)
	}
	return tr, nil
}

func firstInvalid(tr dynamo.Trajectory) int {
	for i, p := range tr {
		if !p.IsValid() {
			return i
		}
	}
	return 0
}
