package grid

import (
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// DefaultResolution matches 450 points per orbit.
const DefaultResolution = 30

// ResolutionFor returns ceil(sqrt(2·n)), the smallest side holding n interleaved points.
func ResolutionFor(nPoints int) int {
	if nPoints <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(2 * nPoints))))
}

// PointsFor is the number of points that exactly fill a res×res grid, or 0
// when res² is odd.
func PointsFor(res int) int {
	if res <= 0 || (res*res)%2 != 0 {
		return 0
	}
	return res * res / 2
}

// Normalize divides each axis by its largest absolute value. An axis whose
// maximum is zero is left as is.
func Normalize(tr dynamo.Trajectory) dynamo.Trajectory {
	mx, my := tr.MaxAbs()
	out := make(dynamo.Trajectory, len(tr))
	for i, p := range tr {
		if mx != 0 {
			p.X = clamp(p.X / mx)
		}
		if my != 0 {
			p.Y = clamp(p.Y / my)
		}
		out[i] = p
	}
	return out
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Discretize normalizes tr and reshapes x0, y0, x1, y1, ... row-major into a
// res×res grid. The layout follows iteration order, so tr must not be
// reordered beforehand.
func Discretize(tr dynamo.Trajectory, res int) (Grid, error) {
	if res <= 0 {
		return Grid{}, dynamo.Configf("resolution", "must be positive, got %d", res)
	}
	if want := res * res; 2*len(tr) != want {
		return Grid{}, &dynamo.ShapeError{Got: 2 * len(tr), Want: want, What: "trajectory values"}
	}
	if !tr.IsValid() {
		return Grid{}, &dynamo.DivergenceError{Step: -1, Point: firstInvalid(tr), Bound: math.Inf(1)}
	}

	flat := Normalize(tr).Flatten()
	return Grid{Res: res, Data: flat}, nil
}

func firstInvalid(tr dynamo.Trajectory) dynamo.Point {
	for _, p := range tr {
		if !p.IsValid() {
			return p
		}
	}
	return dynamo.Point{}
}
