package formulation

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// rotationBaseToWorld returns R = Rz(yaw) Ry(pitch) Rx(roll) for euler
// angles stored as (roll, pitch, yaw).
func rotationBaseToWorld(euler r3.Vector) *mat.Dense {
	cr, sr := math.Cos(euler.X), math.Sin(euler.X)
	cp, sp := math.Cos(euler.Y), math.Sin(euler.Y)
	cy, sy := math.Cos(euler.Z), math.Sin(euler.Z)

	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cr, -sr,
		0, sr, cr,
	})
	ry := mat.NewDense(3, 3, []float64{
		cp, 0, sp,
		0, 1, 0,
		-sp, 0, cp,
	})
	rz := mat.NewDense(3, 3, []float64{
		cy, -sy, 0,
		sy, cy, 0,
		0, 0, 1,
	})

	var ryx, r mat.Dense
	ryx.Mul(ry, rx)
	r.Mul(rz, &ryx)
	return &r
}

func rotate(r mat.Matrix, v r3.Vector) r3.Vector {
	var out mat.VecDense
	out.MulVec(r, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
