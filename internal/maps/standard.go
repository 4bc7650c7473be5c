package maps

import (
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// StandardParams configures the Chirikov standard map
//
//	y' = y + K sin(x)
//	x' = x + y'
//
// with both coordinates folded into [-π, π).
type StandardParams struct {
	K float64
}

func NewStandard(k float64) StandardParams { return StandardParams{K: k} }

func (p StandardParams) Kind() Kind { return Standard }

func (p StandardParams) validate() error {
	if !finite(p.K) {
		return dynamo.Configf("k", "%v is not finite", p.K)
	}
	return nil
}

func (p StandardParams) Step(x, y float64) (float64, float64) {
	y = Wrap(y + p.K*math.Sin(x))
	x = Wrap(x + y)
	return x, y
}

func (p StandardParams) Wraps() bool { return true }
