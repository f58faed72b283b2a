// Package terrain provides height fields the feet of a legged robot step on.
package terrain

import (
	"github.com/golang/geo/r3"
)

// HeightMap returns the terrain height below a horizontal position.
type HeightMap interface {
	Height(x, y float64) float64
}

const normalEps = 1e-4

// Normal estimates the unit surface normal at (x, y) by central differences.
func Normal(h HeightMap, x, y float64) r3.Vector {
	dx := (h.Height(x+normalEps, y) - h.Height(x-normalEps, y)) / (2 * normalEps)
	dy := (h.Height(x, y+normalEps) - h.Height(x, y-normalEps)) / (2 * normalEps)
	return r3.Vector{X: -dx, Y: -dy, Z: 1}.Normalize()
}

type Flat struct {
	Z float64
}

func NewFlat(z float64) *Flat { return &Flat{Z: z} }

func (f *Flat) Height(x, y float64) float64 { return f.Z }

// Block is a box rising along x with a short ramp at its front edge.
type Block struct {
	Start  float64
	Length float64
	Z      float64
	Ramp   float64
}

func NewBlock() *Block {
	return &Block{Start: 0.7, Length: 3.5, Z: 0.5, Ramp: 0.03}
}

func (b *Block) Height(x, y float64) float64 {
	switch {
	case x >= b.Start && x < b.Start+b.Ramp:
		return b.Z / b.Ramp * (x - b.Start)
	case x >= b.Start+b.Ramp && x <= b.Start+b.Length:
		return b.Z
	default:
		return 0
	}
}

// Stairs are two steps up followed by a drop back to the ground.
type Stairs struct {
	Start      float64
	StepWidth  float64
	FirstStep  float64
	SecondStep float64
	TopWidth   float64
}

func NewStairs() *Stairs {
	return &Stairs{Start: 1.0, StepWidth: 0.4, FirstStep: 0.2, SecondStep: 0.4, TopWidth: 1.0}
}

func (s *Stairs) Height(x, y float64) float64 {
	switch {
	case x >= s.Start+s.StepWidth+s.TopWidth:
		return 0
	case x >= s.Start+s.StepWidth:
		return s.SecondStep
	case x >= s.Start:
		return s.FirstStep
	default:
		return 0
	}
}

// Slope is a symmetric ridge along x.
type Slope struct {
	Start      float64
	UpLength   float64
	DownLength float64
	Peak       float64
}

func NewSlope() *Slope {
	return &Slope{Start: 1.0, UpLength: 1.0, DownLength: 1.0, Peak: 0.7}
}

func (s *Slope) Height(x, y float64) float64 {
	downStart := s.Start + s.UpLength
	flatStart := downStart + s.DownLength
	switch {
	case x >= flatStart:
		return 0
	case x >= downStart:
		return s.Peak - s.Peak/s.DownLength*(x-downStart)
	case x >= s.Start:
		return s.Peak / s.UpLength * (x - s.Start)
	default:
		return 0
	}
}
