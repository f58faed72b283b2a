package robot

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

func NewMonoped() Model {
	return Model{
		Kinematic: &KinematicModel{
			NominalStance: []r3.Vector{{X: 0, Y: 0, Z: -0.58}},
			MaxDeviation:  r3.Vector{X: 0.25, Y: 0.15, Z: 0.2},
		},
		Dynamic: &DynamicModel{
			Mass:    20,
			Gravity: StandardGravity,
			Inertia: NewInertia(1.209, 5.583, 6.056, 0.005, -0.190, -0.012),
			EECount: 1,
		},
	}
}

func NewBiped() Model {
	const y, z = 0.20, -0.65
	return Model{
		Kinematic: &KinematicModel{
			NominalStance: []r3.Vector{
				{X: 0, Y: y, Z: z},
				{X: 0, Y: -y, Z: z},
			},
			MaxDeviation: r3.Vector{X: 0.25, Y: 0.15, Z: 0.10},
		},
		Dynamic: &DynamicModel{
			Mass:    20,
			Gravity: StandardGravity,
			Inertia: NewInertia(1.209, 5.583, 6.056, 0.005, -0.190, -0.012),
			EECount: 2,
		},
	}
}

// NewHyQ is a hydraulic quadruped, legs ordered LF, RF, LH, RH.
func NewHyQ() Model {
	return newQuadruped(0.31, 0.29, -0.58, r3.Vector{X: 0.25, Y: 0.20, Z: 0.10}, 83,
		NewInertia(4.26, 8.97, 9.88, -0.0063, 0.193, 0.0))
}

// NewAnymal is an electric quadruped, legs ordered LF, RF, LH, RH.
func NewAnymal() Model {
	return newQuadruped(0.34, 0.19, -0.42, r3.Vector{X: 0.15, Y: 0.1, Z: 0.10}, 29.5,
		NewInertia(0.946, 1.94, 2.02, 0.000938, -0.0059, 0.00000162))
}

func newQuadruped(x, y, z float64, maxDev r3.Vector, mass float64, inertia *mat.SymDense) Model {
	return Model{
		Kinematic: &KinematicModel{
			NominalStance: []r3.Vector{
				{X: x, Y: y, Z: z},
				{X: x, Y: -y, Z: z},
				{X: -x, Y: y, Z: z},
				{X: -x, Y: -y, Z: z},
			},
			MaxDeviation: maxDev,
		},
		Dynamic: &DynamicModel{
			Mass:    mass,
			Gravity: StandardGravity,
			Inertia: inertia,
			EECount: 4,
		},
	}
}
