package spline

import (
	"github.com/san-kum/gaitnlp/internal/variables"
)

// Holder is the spline bundle of one problem instance.
type Holder struct {
	BaseLinear      *Spline
	BaseAngular     *Spline
	EEMotion        []*Spline
	EEForce         []*Spline
	PhaseDurations  []*variables.PhaseDurations
	OptimizeTimings bool
}

// NewHolder wires already-constructed variable sets into splines. With
// optimizeTimings the end-effector splines track the phase-duration
// variables, otherwise their durations are frozen at construction.
func NewHolder(
	baseLin, baseAng *variables.Nodes,
	basePolyDurations []float64,
	eeMotion, eeForce []*variables.Nodes,
	schedules []*variables.PhaseDurations,
	optimizeTimings bool,
) *Holder {
	h := &Holder{
		BaseLinear:      NewNodeSpline(baseLin, basePolyDurations),
		BaseAngular:     NewNodeSpline(baseAng, basePolyDurations),
		PhaseDurations:  schedules,
		OptimizeTimings: optimizeTimings,
	}

	for ee := range eeMotion {
		h.EEMotion = append(h.EEMotion, eeSpline(eeMotion[ee], schedules[ee], optimizeTimings))
	}
	for ee := range eeForce {
		h.EEForce = append(h.EEForce, eeSpline(eeForce[ee], schedules[ee], optimizeTimings))
	}

	return h
}

func eeSpline(nodes *variables.Nodes, schedule *variables.PhaseDurations, optimizeTimings bool) *Spline {
	if optimizeTimings {
		return NewPhaseSpline(nodes, schedule)
	}
	return NewNodeSpline(nodes, nodes.PolyDurations(schedule.Durations()))
}

func (h *Holder) EECount() int { return len(h.EEMotion) }

// Splines lists base linear, base angular, every foot motion and every foot
// force spline in that order.
func (h *Holder) Splines() []*Spline {
	out := []*Spline{h.BaseLinear, h.BaseAngular}
	out = append(out, h.EEMotion...)
	return append(out, h.EEForce...)
}
