package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/orbitgrid/internal/maps"
)

// Sweep is the cartesian grid of starting conditions to scan.
type Sweep struct {
	K  []float64
	X0 []float64
	Y0 []float64
}

// Candidate is a scanned starting condition with its estimated exponent.
// Label comes from Classify and still needs a human to confirm it before it
// goes into a curated table.
type Candidate struct {
	K, X0, Y0 float64
	Label     int
	Exponent  float64
}

// Scan estimates the exponent for every K × x0 × y0 combination, in that
// nesting order. params builds the family record for one K. Orbits that
// diverge are skipped.
func Scan(ctx context.Context, params func(k float64) maps.Params, sw Sweep, iterations int, threshold float64) ([]Candidate, error) {
	out := make([]Candidate, 0, len(sw.K)*len(sw.X0)*len(sw.Y0))
	for _, k := range sw.K {
		step, err := maps.StepperFor(params(k))
		if err != nil {
			return nil, fmt.Errorf("K=%g: %w", k, err)
		}

		for _, x0 := range sw.X0 {
			for _, y0 := range sw.Y0 {
				if err := ctx.Err(); err != nil {
					return out, err
				}
				lambda, err := Lyapunov(step, x0, y0, iterations, 1e-8)
				if err != nil {
					continue
				}
				out = append(out, Candidate{
					K: k, X0: x0, Y0: y0,
					Label:    Classify(lambda, threshold),
					Exponent: lambda,
				})
			}
		}
	}
	return out, nil
}
