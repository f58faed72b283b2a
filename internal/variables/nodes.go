package variables

import (
	"github.com/golang/geo/r3"

	"github.com/san-kum/gaitnlp/internal/nlp"
)

// Node is a spline control point.
type Node struct {
	Pos r3.Vector
	Vel r3.Vector
}

// At returns the value for deriv. Only position and velocity are stored.
func (n Node) At(deriv Deriv) r3.Vector {
	switch deriv {
	case Pos:
		return n.Pos
	case Vel:
		return n.Vel
	default:
		return r3.Vector{}
	}
}

func (n *Node) set(deriv Deriv, dim Dim, val float64) {
	switch deriv {
	case Pos:
		setComponent(&n.Pos, dim, val)
	case Vel:
		setComponent(&n.Vel, dim, val)
	}
}

type valueInfo struct {
	node  int
	deriv Deriv
	dim   Dim
}

// Nodes is a variable set of spline nodes.
type Nodes struct {
	name   string
	nodes  []Node
	index  [][]valueInfo
	bounds []nlp.Bounds
	polys  []polyInfo
}

// NewNodesAll optimizes position and velocity of every node independently.
func NewNodesAll(numNodes int, name string) *Nodes {
	n := &Nodes{
		name:  name,
		nodes: make([]Node, numNodes),
	}
	for id := 0; id < numNodes; id++ {
		for _, deriv := range []Deriv{Pos, Vel} {
			for _, dim := range AllDims {
				n.index = append(n.index, []valueInfo{{node: id, deriv: deriv, dim: dim}})
			}
		}
	}
	n.resetBounds()
	return n
}

func (n *Nodes) resetBounds() {
	n.bounds = make([]nlp.Bounds, len(n.index))
	for i := range n.bounds {
		n.bounds[i] = nlp.NoBound
	}
}

func (n *Nodes) Name() string { return n.name }

func (n *Nodes) Rows() int { return len(n.index) }

func (n *Nodes) NumNodes() int { return len(n.nodes) }

// Nodes returns a copy of the node values.
func (n *Nodes) Nodes() []Node {
	out := make([]Node, len(n.nodes))
	copy(out, n.nodes)
	return out
}

func (n *Nodes) Node(id int) Node {
	return n.nodes[id]
}

func (n *Nodes) Values() []float64 {
	x := make([]float64, len(n.index))
	for idx, infos := range n.index {
		info := infos[0]
		x[idx] = Component(n.nodes[info.node].At(info.deriv), info.dim)
	}
	return x
}

func (n *Nodes) Bounds() []nlp.Bounds {
	b := make([]nlp.Bounds, len(n.bounds))
	copy(b, n.bounds)
	return b
}

// SetValues writes x into every node value each index maps to.
func (n *Nodes) SetValues(x []float64) {
	for idx, infos := range n.index {
		if idx >= len(x) {
			return
		}
		for _, info := range infos {
			n.nodes[info.node].set(info.deriv, info.dim, x[idx])
		}
	}
}

// SetByLinearInterpolation places node positions evenly between initial and
// final and sets every velocity to the average velocity over tTotal.
func (n *Nodes) SetByLinearInterpolation(initial, final r3.Vector, tTotal float64) {
	dp := final.Sub(initial)
	avgVel := dp.Mul(1 / tTotal)
	last := float64(len(n.nodes) - 1)

	x := make([]float64, len(n.index))
	for idx, infos := range n.index {
		for _, info := range infos {
			switch info.deriv {
			case Pos:
				frac := 0.0
				if last > 0 {
					frac = float64(info.node) / last
				}
				x[idx] = Component(initial.Add(dp.Mul(frac)), info.dim)
			case Vel:
				x[idx] = Component(avgVel, info.dim)
			}
		}
	}
	n.SetValues(x)
}

// AddStartBound pins the first node's deriv on dims to val.
func (n *Nodes) AddStartBound(deriv Deriv, dims []Dim, val r3.Vector) {
	n.addBounds(0, deriv, dims, val)
}

// AddFinalBound pins the last node's deriv on dims to val.
func (n *Nodes) AddFinalBound(deriv Deriv, dims []Dim, val r3.Vector) {
	n.addBounds(len(n.nodes)-1, deriv, dims, val)
}

// addBounds also moves the bounded values onto the bound so the initial
// guess starts feasible.
func (n *Nodes) addBounds(node int, deriv Deriv, dims []Dim, val r3.Vector) {
	for idx, infos := range n.index {
		for _, info := range infos {
			if info.node != node || info.deriv != deriv || !containsDim(dims, info.dim) {
				continue
			}
			v := Component(val, info.dim)
			n.bounds[idx] = nlp.Equality(v)
			for _, shared := range infos {
				n.nodes[shared.node].set(shared.deriv, shared.dim, v)
			}
		}
	}
}

// IsBounded reports whether the value of node's deriv on dim is pinned.
func (n *Nodes) IsBounded(node int, deriv Deriv, dim Dim) bool {
	for idx, infos := range n.index {
		for _, info := range infos {
			if info.node == node && info.deriv == deriv && info.dim == dim {
				return n.bounds[idx].IsEquality()
			}
		}
	}
	return false
}
