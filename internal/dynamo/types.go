package dynamo

import "math"

// Point is a single sample of a two-dimensional section.
type Point struct {
	X, Y float64
}

// IsValid reports whether both coordinates are finite.
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Trajectory is an orbit in natural iteration order.
type Trajectory []Point

func (t Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(t))
	copy(c, t)
	return c
}

func (t Trajectory) IsValid() bool {
	for _, p := range t {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// Xs returns the x coordinates as a new slice.
func (t Trajectory) Xs() []float64 {
	xs := make([]float64, len(t))
	for i, p := range t {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y coordinates as a new slice.
func (t Trajectory) Ys() []float64 {
	ys := make([]float64, len(t))
	for i, p := range t {
		ys[i] = p.Y
	}
	return ys
}

// MaxAbs returns the largest absolute value seen on each axis.
func (t Trajectory) MaxAbs() (mx, my float64) {
	for _, p := range t {
		if ax := math.Abs(p.X); ax > mx {
			mx = ax
		}
		if ay := math.Abs(p.Y); ay > my {
			my = ay
		}
	}
	return mx, my
}

// Flatten interleaves the coordinates as x0, y0, x1, y1, ...
func (t Trajectory) Flatten() []float64 {
	out := make([]float64, 0, 2*len(t))
	for _, p := range t {
		out = append(out, p.X, p.Y)
	}
	return out
}

// Stride keeps every n-th point starting with the first one.
// A stride below 2 returns a copy.
func (t Trajectory) Stride(n int) Trajectory {
	if n < 2 {
		return t.Clone()
	}
	out := make(Trajectory, 0, (len(t)+n-1)/n)
	for i := 0; i < len(t); i += n {
		out = append(out, t[i])
	}
	return out
}

// Head returns a copy of the first n points, or all of them if fewer exist.
func (t Trajectory) Head(n int) Trajectory {
	if n > len(t) {
		n = len(t)
	}
	if n < 0 {
		n = 0
	}
	return t[:n].Clone()
}

// Labels attached to grids. They come from curated tables, never from the data.
const (
	LabelChaos = 0
	LabelOrder = 1
)

// CheckLabel rejects anything outside {LabelChaos, LabelOrder}.
func CheckLabel(label int) error {
	if label != LabelChaos && label != LabelOrder {
		return Configf("label", "must be 0 (chaos) or 1 (order), got %d", label)
	}
	return nil
}

// LabelName is the human readable form of a label.
func LabelName(label int) string {
	switch label {
	case LabelOrder:
		return "order"
	case LabelChaos:
		return "chaos"
	default:
		return "invalid"
	}
}
