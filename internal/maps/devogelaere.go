package maps

import (
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// quadCoeff scales the parabolic kick so it peaks at ±1 like sin.
const quadCoeff = 4 / (math.Pi * math.Pi)

// DeVogelaereParams configures the quadratic kicked map
//
//	y' = y + K q(x),  q(x) = (4/π²) x (π - |x|)
//	x' = x + y'
//
// on the same torus as the standard map. Each half step is a shear, so the
// map preserves area for every K and reduces to a pure twist at K = 0.
type DeVogelaereParams struct {
	K float64
}

func NewDeVogelaere(k float64) DeVogelaereParams { return DeVogelaereParams{K: k} }

func (p DeVogelaereParams) Kind() Kind { return DeVogelaere }

func (p DeVogelaereParams) validate() error {
	if !finite(p.K) {
		return dynamo.Configf("k", "%v is not finite", p.K)
	}
	return nil
}

// Kick is the quadratic force term; x must already lie in [-π, π).
func Kick(x float64) float64 {
	return quadCoeff * x * (math.Pi - math.Abs(x))
}

func (p DeVogelaereParams) Step(x, y float64) (float64, float64) {
	y = Wrap(y + p.K*Kick(x))
	x = Wrap(x + y)
	return x, y
}

func (p DeVogelaereParams) Wraps() bool { return true }
