package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for orbit generation and dataset assembly.
var (
	// ErrConfiguration indicates invalid map parameters, labels or settings.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrNumericDivergence indicates an orbit left the sanity bound or became non-finite.
	ErrNumericDivergence = errors.New("dynamo: numeric divergence")

	// ErrShape indicates a trajectory length incompatible with the requested grid.
	ErrShape = errors.New("dynamo: shape mismatch")

	// ErrFormat indicates a malformed external trajectory.
	ErrFormat = errors.New("dynamo: malformed trajectory data")
)

// ConfigError names the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// Configf builds a ConfigError for field with a formatted reason.
func Configf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DivergenceError records where an orbit escaped.
type DivergenceError struct {
	Step  int
	Point Point
	Bound float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v: step %d reached (%g, %g), bound %g", ErrNumericDivergence, e.Step, e.Point.X, e.Point.Y, e.Bound)
}

func (e *DivergenceError) Unwrap() error { return ErrNumericDivergence }

// ShapeError reports the number of values received against the number required.
type ShapeError struct {
	Got, Want int
	What      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %s: got %d, want %d", ErrShape, e.What, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// FormatError points at the first unparsable line of an external trajectory.
type FormatError struct {
	Source string
	Line   int
	Text   string
}

func (e *FormatError) Error() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	return fmt.Sprintf("%v: %s:%d: %q", ErrFormat, src, e.Line, e.Text)
}

func (e *FormatError) Unwrap() error { return ErrFormat }
