// Package robot describes legged robots for motion optimization: where the
// feet sit relative to the body and how heavy the body is.
package robot

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// StandardGravity in m/s^2.
const StandardGravity = 9.80665

// KinematicModel is the reach of every end-effector expressed in the base frame.
type KinematicModel struct {
	// NominalStance is the default foot position of each end-effector.
	NominalStance []r3.Vector
	// MaxDeviation is the half-extent of the box around each nominal
	// stance the foot may move in.
	MaxDeviation r3.Vector
}

func (k *KinematicModel) NominalStanceInBase() []r3.Vector {
	out := make([]r3.Vector, len(k.NominalStance))
	copy(out, k.NominalStance)
	return out
}

// ReachabilityVolume returns the half-extents of the range-of-motion box.
func (k *KinematicModel) ReachabilityVolume() r3.Vector {
	return k.MaxDeviation
}

func (k *KinematicModel) EECount() int {
	return len(k.NominalStance)
}

// DynamicModel is a single rigid body with massless legs.
type DynamicModel struct {
	Mass    float64
	Gravity float64
	Inertia *mat.SymDense
	EECount int
}

func (d *DynamicModel) M() float64 { return d.Mass }

func (d *DynamicModel) G() float64 { return d.Gravity }

// Weight is the force gravity exerts on the body.
func (d *DynamicModel) Weight() float64 {
	return d.Mass * d.Gravity
}

// NewInertia builds the symmetric body inertia from its six distinct entries.
func NewInertia(ixx, iyy, izz, ixy, ixz, iyz float64) *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	})
}

type Model struct {
	Kinematic *KinematicModel
	Dynamic   *DynamicModel
}

func (m Model) EECount() int {
	return m.Kinematic.EECount()
}
