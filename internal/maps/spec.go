package maps

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitgrid/internal/dynamo"
)

// Kind identifies a map family.
type Kind int

const (
	Standard Kind = iota
	DeVogelaere
	Web
	External
)

var kindNames = map[Kind]string{
	Standard:    "standard",
	DeVogelaere: "devogelaere",
	Web:         "web",
	External:    "external",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a family name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, dynamo.Configf("family", "unknown map family %q", name)
}

// Kinds lists every family in declaration order.
func Kinds() []Kind {
	return []Kind{Standard, DeVogelaere, Web, External}
}

// Params is the closed set of family parameter records.
type Params interface {
	Kind() Kind
	validate() error
}

// Spec fully determines one orbit.
type Spec struct {
	Params     Params
	X0, Y0     float64
	Iterations int
}

// DefaultBound is the coordinate magnitude treated as divergence.
const DefaultBound = 1e6

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the family-independent invariants and then the family's own.
func (s Spec) Validate() error {
	if s.Params == nil {
		return dynamo.Configf("params", "map family is required")
	}
	if s.Iterations <= 0 {
		return dynamo.Configf("iterations", "must be positive, got %d", s.Iterations)
	}
	if !finite(s.X0) || !finite(s.Y0) {
		return dynamo.Configf("initial point", "(%v, %v) is not finite", s.X0, s.Y0)
	}
	return s.Params.validate()
}

// Kind is a shorthand for s.Params.Kind().
func (s Spec) Kind() Kind {
	if s.Params == nil {
		return -1
	}
	return s.Params.Kind()
}

func (s Spec) String() string {
	switch p := s.Params.(type) {
	case WebParams:
		return fmt.Sprintf("%s(K=%g, q=%d) x0=%g y0=%g n=%d", p.Kind(), p.K, p.Q, s.X0, s.Y0, s.Iterations)
	case StandardParams:
		return fmt.Sprintf("%s(K=%g) x0=%g y0=%g n=%d", p.Kind(), p.K, s.X0, s.Y0, s.Iterations)
	case DeVogelaereParams:
		return fmt.Sprintf("%s(K=%g) x0=%g y0=%g n=%d", p.Kind(), p.K, s.X0, s.Y0, s.Iterations)
	case ExternalParams:
		return fmt.Sprintf("%s(%s) n=%d", p.Kind(), p.Name, s.Iterations)
	default:
		return fmt.Sprintf("unknown n=%d", s.Iterations)
	}
}
