package formulation

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/nlp"
	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/spline"
	"github.com/san-kum/gaitnlp/internal/terrain"
	"github.com/san-kum/gaitnlp/internal/variables"
)

// Formulation builds the optimization problem of one locomotion task.
type Formulation struct {
	params  *config.Parameters
	model   robot.Model
	terrain terrain.HeightMap

	initialBase BaseState
	finalBase   BaseState
	initialEE   []r3.Vector
	mapped      bool
}

func New(params *config.Parameters, model robot.Model, hm terrain.HeightMap) *Formulation {
	return &Formulation{
		params:  params,
		model:   model,
		terrain: hm,
	}
}

// FromLocomotionTask sets the boundary states. The initial end-effector
// positions are kept in world frame as given.
func (f *Formulation) FromLocomotionTask(task *LocomotionTask) error {
	var err error
	var initial, final BaseState
	if initial.Lin, err = splitState("initial_base_lin", task.InitialBaseLin); err != nil {
		return err
	}
	if initial.Ang, err = splitState("initial_base_ang", task.InitialBaseAng); err != nil {
		return err
	}
	if final.Lin, err = splitState("final_base_lin", task.FinalBaseLin); err != nil {
		return err
	}
	if final.Ang, err = splitState("final_base_ang", task.FinalBaseAng); err != nil {
		return err
	}

	if len(task.InitialEEMotionLin) == 0 {
		return configError("FromLocomotionTask", 0, errors.Wrap(ErrMalformedTask, "no end-effector positions"))
	}
	if n := f.params.EECount(); len(task.InitialEEMotionLin) != n {
		return configError("FromLocomotionTask", len(task.InitialEEMotionLin),
			errors.Wrapf(ErrMalformedTask, "parameters describe %d end-effectors", n))
	}

	f.initialBase = initial
	f.finalBase = final
	f.initialEE = append([]r3.Vector(nil), task.InitialEEMotionLin...)
	f.mapped = true
	return nil
}

func (f *Formulation) Params() *config.Parameters { return f.params }

func (f *Formulation) Model() robot.Model { return f.model }

func (f *Formulation) Terrain() terrain.HeightMap { return f.terrain }

func (f *Formulation) InitialBase() BaseState { return f.initialBase }

func (f *Formulation) FinalBase() BaseState { return f.finalBase }

func (f *Formulation) InitialEE() []r3.Vector {
	return append([]r3.Vector(nil), f.initialEE...)
}

func (f *Formulation) checkMapped(site string) error {
	if !f.mapped {
		return configError(site, nil, errors.Wrap(ErrMalformedTask, "no locomotion task mapped"))
	}
	return nil
}

// checkReady rejects everything the factories would otherwise index past or
// divide by: invalid parameters, a missing task and too few model limbs.
func (f *Formulation) checkReady(site string) error {
	if err := f.params.Validate(); err != nil {
		return configError(site, err, errors.Wrap(ErrMalformedTask, "invalid parameters"))
	}
	if err := f.checkMapped(site); err != nil {
		return err
	}
	n := f.params.EECount()
	if len(f.initialEE) != n {
		return configError(site, len(f.initialEE),
			errors.Wrapf(ErrMalformedTask, "expected %d initial end-effector positions", n))
	}
	if f.model.EECount() < n {
		return configError(site, f.model.EECount(),
			errors.Wrapf(ErrMalformedTask, "robot model has fewer than %d end-effectors", n))
	}
	return nil
}

// VariableSets runs the variable factories and returns the optimizer-visible
// collection in the order base-lin, base-ang, ee motion, ee force and, when
// timings are optimized, ee schedules. The returned holder references the
// same variable sets.
func (f *Formulation) VariableSets() (nlp.VariableSets, *spline.Holder, error) {
	if err := f.checkReady("VariableSets"); err != nil {
		return nil, nil, err
	}

	var vars nlp.VariableSets

	base := f.makeBaseVariables()
	for _, v := range base {
		vars = append(vars, v)
	}

	eeMotion := f.makeEndeffectorVariables()
	for _, v := range eeMotion {
		vars = append(vars, v)
	}

	eeForce := f.makeForceVariables()
	for _, v := range eeForce {
		vars = append(vars, v)
	}

	// fixed timings still seed the holder
	schedules := f.makeContactScheduleVariables()
	if f.params.IsOptimizeTimings() {
		for _, v := range schedules {
			vars = append(vars, v)
		}
	}

	holder := spline.NewHolder(
		base[0], base[1],
		f.params.BasePolyDurations(),
		eeMotion, eeForce,
		schedules,
		f.params.IsOptimizeTimings(),
	)
	return vars, holder, nil
}

func (f *Formulation) makeBaseVariables() []*variables.Nodes {
	numNodes := len(f.params.BasePolyDurations()) + 1
	total := f.params.TotalTime()

	lin := variables.NewNodesAll(numNodes, variables.BaseLinNodes)
	lin.SetByLinearInterpolation(f.initialBase.Lin.Pos, f.BaseTarget(), total)
	lin.AddStartBound(variables.Pos, variables.AllDims, f.initialBase.Lin.Pos)
	lin.AddStartBound(variables.Vel, variables.AllDims, f.initialBase.Lin.Vel)
	if f.params.EnforceFinalBaseBound {
		lin.AddFinalBound(variables.Pos, f.params.BoundsFinalLinPos, f.finalBase.Lin.Pos)
		lin.AddFinalBound(variables.Vel, f.params.BoundsFinalLinVel, f.finalBase.Lin.Vel)
	}

	ang := variables.NewNodesAll(numNodes, variables.BaseAngNodes)
	ang.SetByLinearInterpolation(f.initialBase.Ang.Pos, f.finalBase.Ang.Pos, total)
	ang.AddStartBound(variables.Pos, variables.AllDims, f.initialBase.Ang.Pos)
	ang.AddStartBound(variables.Vel, variables.AllDims, f.initialBase.Ang.Vel)
	if f.params.EnforceFinalBaseBound {
		ang.AddFinalBound(variables.Pos, f.params.BoundsFinalAngPos, f.finalBase.Ang.Pos)
		ang.AddFinalBound(variables.Vel, f.params.BoundsFinalAngVel, f.finalBase.Ang.Vel)
	}

	return []*variables.Nodes{lin, ang}
}

// BaseTarget is the final base position used for the initial guess: the
// goal's x, y with the height at which the first foot's nominal stance
// touches the terrain.
func (f *Formulation) BaseTarget() r3.Vector {
	x, y := f.finalBase.Lin.Pos.X, f.finalBase.Lin.Pos.Y
	stance := f.model.Kinematic.NominalStanceInBase()
	return r3.Vector{X: x, Y: y, Z: f.terrain.Height(x, y) - stance[0].Z}
}

// FinalFoothold places the nominal stance of ee below the final base,
// turned by the final yaw only, and drops it onto the terrain.
func (f *Formulation) FinalFoothold(ee int) (r3.Vector, error) {
	if err := f.checkMapped("FinalFoothold"); err != nil {
		return r3.Vector{}, err
	}
	if n := f.model.EECount(); ee < 0 || ee >= n {
		return r3.Vector{}, configError("FinalFoothold", ee,
			errors.Wrapf(ErrMalformedTask, "robot model has %d end-effectors", n))
	}
	return f.finalFoothold(ee), nil
}

func (f *Formulation) finalFoothold(ee int) r3.Vector {
	yaw := f.finalBase.Ang.Pos.Z
	wRb := rotationBaseToWorld(r3.Vector{Z: yaw})
	stance := f.model.Kinematic.NominalStanceInBase()
	p := f.finalBase.Lin.Pos.Add(rotate(wRb, stance[ee]))
	p.Z = f.terrain.Height(p.X, p.Y)
	return p
}

func (f *Formulation) makeEndeffectorVariables() []*variables.Nodes {
	total := f.params.TotalTime()
	var vars []*variables.Nodes
	for ee := 0; ee < f.params.EECount(); ee++ {
		nodes := variables.NewEEMotionNodes(
			f.params.PhaseCount(ee),
			f.params.EEInContactAtStart[ee],
			variables.EEMotionLinNodes(ee),
			f.params.EEPolynomialsPerSwingPhase,
		)
		nodes.SetByLinearInterpolation(f.initialEE[ee], f.finalFoothold(ee), total)
		nodes.AddStartBound(variables.Pos, variables.AllDims, f.initialEE[ee])
		vars = append(vars, nodes)
	}
	return vars
}

// StanceForce is the weight of the robot shared equally by all feet.
func (f *Formulation) StanceForce() r3.Vector {
	return r3.Vector{Z: f.model.Dynamic.M() * f.model.Dynamic.G() / float64(f.params.EECount())}
}

func (f *Formulation) makeForceVariables() []*variables.Nodes {
	total := f.params.TotalTime()
	force := f.StanceForce()
	var vars []*variables.Nodes
	for ee := 0; ee < f.params.EECount(); ee++ {
		nodes := variables.NewEEForceNodes(
			f.params.PhaseCount(ee),
			f.params.EEInContactAtStart[ee],
			variables.EEWrenchLinNodes(ee),
			f.params.ForcePolynomialsPerStancePhase,
		)
		nodes.SetByLinearInterpolation(force, force, total)
		vars = append(vars, nodes)
	}
	return vars
}

func (f *Formulation) makeContactScheduleVariables() []*variables.PhaseDurations {
	var vars []*variables.PhaseDurations
	for ee := 0; ee < f.params.EECount(); ee++ {
		vars = append(vars, variables.NewPhaseDurations(
			ee,
			f.params.EEPhaseDurations[ee],
			f.params.EEInContactAtStart[ee],
			f.params.BoundPhaseDuration[0],
			f.params.BoundPhaseDuration[1],
		))
	}
	return vars
}
