package maps

import (
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// WebParams configures the Zaslavsky web map with rotation α = 2π/Q:
//
//	u  = x + K sin(y)
//	x' =  u cos α + y sin α
//	y' = -u sin α + y cos α
//
// The plane is not folded; chaotic orbits spread along the stochastic web.
type WebParams struct {
	K float64
	Q int
}

func NewWeb(k float64, q int) WebParams { return WebParams{K: k, Q: q} }

func (p WebParams) Kind() Kind { return Web }

func (p WebParams) validate() error {
	if !finite(p.K) {
		return dynamo.Configf("k", "%v is not finite", p.K)
	}
	if p.Q == 0 {
		return dynamo.Configf("q", "symmetry order is required for the web map")
	}
	if p.Q < 3 {
		return dynamo.Configf("q", "symmetry order must be at least 3, got %d", p.Q)
	}
	return nil
}

func (p WebParams) Step(x, y float64) (float64, float64) {
	sin, cos := math.Sincos(2 * math.Pi / float64(p.Q))
	u := x + p.K*math.Sin(y)
	return u*cos + y*sin, -u*sin + y*cos
}

func (p WebParams) Wraps() bool { return false }

// CheckStride reports whether keeping every m-th point of a web orbit
// samples all Q rotations. A stride sharing a factor with Q lands on the
// same sectors each time and leaves the rest of the web empty.
func (p WebParams) CheckStride(m int) error {
	if m < 1 {
		return dynamo.Configf("multiplier", "must be at least 1, got %d", m)
	}
	if p.Q > 0 {
		if g := gcd(m, p.Q); g > 1 {
			return dynamo.Configf("multiplier", "stride %d shares factor %d with symmetry order %d", m, g, p.Q)
		}
	}
	return nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
