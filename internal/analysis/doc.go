// Package analysis provides chaos diagnostics for map orbits.
//
// The tools here audit curated labels and describe orbits; they are never
// used to label training data:
//
//   - [Lyapunov]: finite-time largest Lyapunov exponent of a 2D map
//   - [Classify]: turns an exponent into an order/chaos guess
//   - [Describe]: per-axis mean and variance of a trajectory
//   - [PhasePortraitToASCII]: quick terminal plot of an orbit
//
// # Chaos Detection
//
// A clearly positive exponent indicates chaotic dynamics:
//
//	lambda, _ := analysis.Lyapunov(maps.NewStandard(0.95), 1.5, 1.0, 5000, 1e-8)
//	if analysis.Classify(lambda, analysis.DefaultThreshold) == dynamo.LabelChaos {
//	    // orbit is chaotic
//	}
package analysis
