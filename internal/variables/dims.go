package variables

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
)

// Deriv selects a derivative of a node value.
type Deriv int

const (
	Pos Deriv = iota
	Vel
	Acc
	Jerk
)

var derivNames = [...]string{"pos", "vel", "acc", "jerk"}

func (d Deriv) String() string {
	if d < 0 || int(d) >= len(derivNames) {
		return fmt.Sprintf("Deriv(%d)", int(d))
	}
	return derivNames[d]
}

// Dim is a cartesian axis.
type Dim int

const (
	X Dim = iota
	Y
	Z
)

// AllDims is {X, Y, Z} in axis order.
var AllDims = []Dim{X, Y, Z}

var dimNames = [...]string{"x", "y", "z"}

func (d Dim) String() string {
	if d < 0 || int(d) >= len(dimNames) {
		return fmt.Sprintf("Dim(%d)", int(d))
	}
	return dimNames[d]
}

func (d Dim) MarshalText() ([]byte, error) {
	if d < X || d > Z {
		return nil, fmt.Errorf("invalid axis %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Dim) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range dimNames {
		if s == n {
			*d = Dim(i)
			return nil
		}
	}
	return fmt.Errorf("unknown axis: %q", s)
}

// Component returns the d-th coordinate of v.
func Component(v r3.Vector, d Dim) float64 {
	switch d {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

func setComponent(v *r3.Vector, d Dim, val float64) {
	switch d {
	case X:
		v.X = val
	case Y:
		v.Y = val
	default:
		v.Z = val
	}
}

func containsDim(dims []Dim, d Dim) bool {
	for _, x := range dims {
		if x == d {
			return true
		}
	}
	return false
}
