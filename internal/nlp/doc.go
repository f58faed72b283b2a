// Package nlp defines the problem-description primitives handed to an
// external nonlinear-program solver.
//
// Nothing in this package evaluates anything. A problem is three ordered
// collections:
//
//   - [VariableSets]: decision variables with initial values and bounds
//   - [Constraints]: constraint descriptors naming the variable sets they read
//   - [Costs]: weighted cost descriptors
//
// The order of [VariableSets] is the order in which the solver concatenates
// variable values and must not be changed after construction.
package nlp
