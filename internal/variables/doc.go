// Package variables holds the decision-variable sets of a legged-locomotion
// problem: spline node values and contact-phase durations.
//
// A [Nodes] set maps each optimization index to one or more node values.
// Base splines optimize every node value independently. Phase-based sets
// share a single position variable across both nodes of a constant phase
// (stance for foot motion, swing for contact force) and pin the velocity of
// those nodes to zero.
package variables
