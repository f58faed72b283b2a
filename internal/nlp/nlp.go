package nlp

import "math"

// Bounds is the closed interval a single decision variable must lie in.
type Bounds struct {
	Lower float64
	Upper float64
}

// NoBound leaves a variable free.
var NoBound = Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}

// Equality pins a variable to v.
func Equality(v float64) Bounds {
	return Bounds{Lower: v, Upper: v}
}

func (b Bounds) IsEquality() bool {
	return b.Lower == b.Upper
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

type Component interface {
	Name() string
}

type VariableSet interface {
	Component
	Rows() int
	Values() []float64
	Bounds() []Bounds
}

type Constraint interface {
	Component
	// Operands lists the variable sets the constraint depends on.
	Operands() []string
}

type Cost interface {
	Constraint
	Weight() float64
}

type VariableSets []VariableSet

func (v VariableSets) Names() []string {
	names := make([]string, len(v))
	for i, s := range v {
		names[i] = s.Name()
	}
	return names
}

// Rows is the total number of decision variables.
func (v VariableSets) Rows() int {
	n := 0
	for _, s := range v {
		n += s.Rows()
	}
	return n
}

func (v VariableSets) Find(name string) (VariableSet, bool) {
	for _, s := range v {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Values concatenates the initial values in collection order.
func (v VariableSets) Values() []float64 {
	x := make([]float64, 0, v.Rows())
	for _, s := range v {
		x = append(x, s.Values()...)
	}
	return x
}

type Constraints []Constraint

func (c Constraints) Names() []string {
	names := make([]string, len(c))
	for i, con := range c {
		names[i] = con.Name()
	}
	return names
}

type Costs []Cost

func (c Costs) Names() []string {
	names := make([]string, len(c))
	for i, cost := range c {
		names[i] = cost.Name()
	}
	return names
}

func (c Costs) TotalWeight() float64 {
	w := 0.0
	for _, cost := range c {
		w += cost.Weight()
	}
	return w
}
