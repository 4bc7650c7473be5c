// Package maps provides the area-preserving maps whose orbits feed the
// dataset pipeline.
//
// Each family is a parameter record satisfying the sealed [Params] interface:
//
//   - [StandardParams]: Chirikov standard map on the torus
//   - [DeVogelaereParams]: quadratic kicked map on the torus
//   - [WebParams]: Zaslavsky web map with q-fold symmetry
//   - [ExternalParams]: precomputed trajectories (JHMAP and friends)
//
// A [Spec] couples a family with initial conditions and an iteration count,
// and [Simulate] is the single entry point that turns it into a trajectory.
//
// # Wrapping
//
// Angle-like coordinates are folded into [-π, π) on every iteration by
// [Wrap]. Without it the standard and de Vogelaere orbits grow without bound
// and the grid normalisation collapses to a line.
package maps
