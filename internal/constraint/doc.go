// Package constraint holds the constraint descriptors of a legged-locomotion
// problem. A descriptor names the variable sets it depends on and carries the
// parameters its evaluator needs; the evaluators themselves live with the
// solver.
package constraint
