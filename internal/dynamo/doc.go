// Package dynamo provides the core primitives shared by the orbit pipeline.
//
// The package defines the data that flows between map simulators, the grid
// discretizer and dataset assembly:
//
//   - [Point]: one (x, y) sample of a Poincaré section
//   - [Trajectory]: an orbit, ordered by iteration
//   - [ConfigError], [DivergenceError], [ShapeError], [FormatError]: the
//     error taxonomy, each unwrapping to a package sentinel
//
// # Example
//
//	tr, err := maps.Simulate(spec)
//	if errors.Is(err, dynamo.ErrNumericDivergence) {
//	    // orbit escaped the sanity bound
//	}
//	g, err := grid.Discretize(tr, 30)
//
// # Thread Safety
//
// Trajectories are treated as immutable once produced. Every transformation
// in this module returns new memory, so trajectories and grids may be shared
// freely between goroutines.
package dynamo
