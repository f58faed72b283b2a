// Package formulation turns a locomotion task into the description of a
// nonlinear program: the ordered decision-variable sets with their initial
// guess and bounds, the spline bundle that cross-references them, and the
// constraint and cost descriptors selected by the parameters.
//
// The work happens in three steps:
//
//   - [Formulation.FromLocomotionTask] maps the task into boundary states
//   - [Formulation.VariableSets] runs the variable factories and returns the
//     collection together with the [spline.Holder]
//   - [Formulation.Constraints] and [Formulation.Costs] dispatch every
//     enabled kind against that holder
//
// # Example
//
//	f := formulation.New(params, robot.NewAnymal(), terrain.NewFlat(0))
//	if err := f.FromLocomotionTask(task); err != nil {
//		return err
//	}
//	vars, holder, err := f.VariableSets()
//	constraints, err := f.Constraints(holder)
//	costs, err := f.Costs()
//
// # Boundary conditions
//
// The initial base state is always a hard bound on the first base node. The
// final base state is reached through the final-base costs only, unless
// Parameters.EnforceFinalBaseBound is set.
//
// # Thread Safety
//
// A Formulation is NOT safe for concurrent builds. Independent problems
// should each use their own instance.
package formulation
