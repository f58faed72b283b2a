package formulation

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/variables"
)

// State is a position and velocity pair.
type State struct {
	Pos r3.Vector
	Vel r3.Vector
}

func (s State) at(deriv variables.Deriv) (r3.Vector, error) {
	switch deriv {
	case variables.Pos:
		return s.Pos, nil
	case variables.Vel:
		return s.Vel, nil
	default:
		return r3.Vector{}, errors.Wrapf(ErrUnknownDerivative, "state has no %s", deriv)
	}
}

// BaseState is the linear and angular state of the floating base.
type BaseState struct {
	Lin State
	Ang State
}

// LocomotionTask holds the boundary conditions of one motion. Base vectors
// are [x, y, z, vx, vy, vz] and [roll, pitch, yaw, wx, wy, wz].
type LocomotionTask struct {
	InitialBaseLin     []float64
	InitialBaseAng     []float64
	FinalBaseLin       []float64
	FinalBaseAng       []float64
	InitialEEMotionLin []r3.Vector
}

// NewLocomotionTask converts the YAML form of a task.
func NewLocomotionTask(t *config.Task) (*LocomotionTask, error) {
	task := &LocomotionTask{
		InitialBaseLin: append([]float64(nil), t.InitialBaseLin...),
		InitialBaseAng: append([]float64(nil), t.InitialBaseAng...),
		FinalBaseLin:   append([]float64(nil), t.FinalBaseLin...),
		FinalBaseAng:   append([]float64(nil), t.FinalBaseAng...),
	}
	for ee, p := range t.InitialEEMotionLin {
		if len(p) != 3 {
			return nil, configError("NewLocomotionTask", len(p),
				errors.Wrapf(ErrMalformedTask, "initial position of ee %d needs 3 entries", ee))
		}
		task.InitialEEMotionLin = append(task.InitialEEMotionLin, r3.Vector{X: p[0], Y: p[1], Z: p[2]})
	}
	return task, nil
}

func splitState(field string, v []float64) (State, error) {
	if len(v) != 6 {
		return State{}, configError("FromLocomotionTask", len(v),
			errors.Wrapf(ErrMalformedTask, "%s needs 6 entries", field))
	}
	return State{
		Pos: r3.Vector{X: v[0], Y: v[1], Z: v[2]},
		Vel: r3.Vector{X: v[3], Y: v[4], Z: v[5]},
	}, nil
}
