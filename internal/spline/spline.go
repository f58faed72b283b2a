// Package spline cross-references the node variable sets of a problem into
// time-parameterized splines.
//
// A [Holder] is built once per problem and is read-only afterwards. Every
// constraint and cost descriptor keeps plain pointers into it, so the owner
// of the holder must keep it alive at least as long as those descriptors.
package spline

import (
	"github.com/san-kum/gaitnlp/internal/variables"
)

// Spline pairs a node set with the durations of its polynomials.
type Spline struct {
	nodes     *variables.Nodes
	durations []float64
	schedule  *variables.PhaseDurations
}

// NewNodeSpline builds a spline with fixed polynomial durations.
func NewNodeSpline(nodes *variables.Nodes, polyDurations []float64) *Spline {
	d := make([]float64, len(polyDurations))
	copy(d, polyDurations)
	return &Spline{nodes: nodes, durations: d}
}

// NewPhaseSpline builds a spline whose polynomial durations follow schedule.
func NewPhaseSpline(nodes *variables.Nodes, schedule *variables.PhaseDurations) *Spline {
	return &Spline{nodes: nodes, schedule: schedule}
}

func (s *Spline) Nodes() *variables.Nodes { return s.nodes }

func (s *Spline) Name() string { return s.nodes.Name() }

// Schedule is nil for splines with fixed timing.
func (s *Spline) Schedule() *variables.PhaseDurations { return s.schedule }

func (s *Spline) PolyDurations() []float64 {
	if s.schedule != nil {
		return s.nodes.PolyDurations(s.schedule.Durations())
	}
	d := make([]float64, len(s.durations))
	copy(d, s.durations)
	return d
}

func (s *Spline) TotalTime() float64 {
	total := 0.0
	for _, d := range s.PolyDurations() {
		total += d
	}
	return total
}

// NodeTimes returns the global time of every node.
func (s *Spline) NodeTimes() []float64 {
	d := s.PolyDurations()
	t := make([]float64, len(d)+1)
	for i, dt := range d {
		t[i+1] = t[i] + dt
	}
	return t
}
