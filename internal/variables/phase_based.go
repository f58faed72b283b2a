package variables

import "github.com/golang/geo/r3"

// PhaseType names the contact state in which a phase-based set is constant.
type PhaseType int

const (
	Stance PhaseType = iota
	Swing
)

type polyInfo struct {
	phase         int
	polyInPhase   int
	polysInPhase  int
	constantPhase bool
}

// NewEEMotionNodes builds foot-motion nodes: one constant polynomial per
// stance phase, polysPerSwing polynomials per swing phase.
func NewEEMotionNodes(phaseCount int, inContactAtStart bool, name string, polysPerSwing int) *Nodes {
	return newPhaseBasedNodes(phaseCount, inContactAtStart, name, polysPerSwing, Stance)
}

// NewEEForceNodes builds contact-force nodes: one constant polynomial per
// swing phase, polysPerStance polynomials per stance phase.
func NewEEForceNodes(phaseCount int, inContactAtStart bool, name string, polysPerStance int) *Nodes {
	return newPhaseBasedNodes(phaseCount, inContactAtStart, name, polysPerStance, Swing)
}

func newPhaseBasedNodes(phaseCount int, inContactAtStart bool, name string, polysInChangingPhase int, constant PhaseType) *Nodes {
	polys := buildPolyInfos(phaseCount, inContactAtStart, polysInChangingPhase, constant)
	n := &Nodes{
		name:  name,
		nodes: make([]Node, len(polys)+1),
		polys: polys,
	}
	n.index = n.phaseBasedIndex()
	n.resetBounds()
	return n
}

func buildPolyInfos(phaseCount int, inContactAtStart bool, polysInChangingPhase int, constant PhaseType) []polyInfo {
	var polys []polyInfo
	contact := inContactAtStart
	for phase := 0; phase < phaseCount; phase++ {
		isConstant := (contact && constant == Stance) || (!contact && constant == Swing)
		if isConstant {
			polys = append(polys, polyInfo{phase: phase, polysInPhase: 1, constantPhase: true})
		} else {
			for i := 0; i < polysInChangingPhase; i++ {
				polys = append(polys, polyInfo{phase: phase, polyInPhase: i, polysInPhase: polysInChangingPhase})
			}
		}
		contact = !contact
	}
	return polys
}

func (n *Nodes) phaseBasedIndex() [][]valueInfo {
	var index [][]valueInfo
	for id := 0; id < len(n.nodes); id++ {
		if !n.isConstantNode(id) {
			for _, dim := range AllDims {
				index = append(index, []valueInfo{{node: id, deriv: Pos, dim: dim}})
				index = append(index, []valueInfo{{node: id, deriv: Vel, dim: dim}})
			}
			continue
		}
		// both nodes of a constant polynomial share one position and never move
		n.nodes[id].Vel = r3.Vector{}
		n.nodes[id+1].Vel = r3.Vector{}
		for _, dim := range AllDims {
			index = append(index, []valueInfo{
				{node: id, deriv: Pos, dim: dim},
				{node: id + 1, deriv: Pos, dim: dim},
			})
		}
		id++
	}
	return index
}

func (n *Nodes) adjacentPolys(node int) []int {
	var ids []int
	if node > 0 {
		ids = append(ids, node-1)
	}
	if node < len(n.polys) {
		ids = append(ids, node)
	}
	return ids
}

func (n *Nodes) isConstantNode(node int) bool {
	for _, p := range n.adjacentPolys(node) {
		if n.polys[p].constantPhase {
			return true
		}
	}
	return false
}

// IsPhaseBased reports whether the set was built from a contact schedule.
func (n *Nodes) IsPhaseBased() bool {
	return n.polys != nil
}

// PolyCount is the number of spline polynomials between the nodes.
func (n *Nodes) PolyCount() int {
	return len(n.nodes) - 1
}

// IsConstantPhase reports whether polynomial poly lies in a constant phase.
func (n *Nodes) IsConstantPhase(poly int) bool {
	if poly < 0 || poly >= len(n.polys) {
		return false
	}
	return n.polys[poly].constantPhase
}

// PhaseOfPoly returns the contact phase polynomial poly belongs to.
func (n *Nodes) PhaseOfPoly(poly int) int {
	return n.polys[poly].phase
}

// PolyDurations splits each phase duration evenly over the polynomials of
// that phase. Returns nil for sets not built from a contact schedule.
func (n *Nodes) PolyDurations(phaseDurations []float64) []float64 {
	if n.polys == nil {
		return nil
	}
	d := make([]float64, len(n.polys))
	for i, p := range n.polys {
		d[i] = phaseDurations[p.phase] / float64(p.polysInPhase)
	}
	return d
}
