package variables

import (
	"fmt"

	"github.com/san-kum/gaitnlp/internal/nlp"
)

// PhaseDurations is the contact schedule of one end-effector. All but the
// last duration are decision variables; the last one absorbs the remainder so
// the schedule always spans the total time.
type PhaseDurations struct {
	ee             int
	durations      []float64
	totalTime      float64
	inContactStart bool
	bound          nlp.Bounds
}

func NewPhaseDurations(ee int, timings []float64, inContactAtStart bool, minDuration, maxDuration float64) *PhaseDurations {
	d := make([]float64, len(timings))
	copy(d, timings)
	total := 0.0
	for _, t := range d {
		total += t
	}
	return &PhaseDurations{
		ee:             ee,
		durations:      d,
		totalTime:      total,
		inContactStart: inContactAtStart,
		bound:          nlp.Bounds{Lower: minDuration, Upper: maxDuration},
	}
}

func (p *PhaseDurations) Name() string { return EESchedule(p.ee) }

func (p *PhaseDurations) EE() int { return p.ee }

func (p *PhaseDurations) Rows() int {
	if len(p.durations) == 0 {
		return 0
	}
	return len(p.durations) - 1
}

func (p *PhaseDurations) Values() []float64 {
	x := make([]float64, p.Rows())
	copy(x, p.durations)
	return x
}

func (p *PhaseDurations) Bounds() []nlp.Bounds {
	b := make([]nlp.Bounds, p.Rows())
	for i := range b {
		b[i] = p.bound
	}
	return b
}

// SetValues updates the optimized durations and recomputes the last one.
func (p *PhaseDurations) SetValues(x []float64) error {
	if len(x) != p.Rows() {
		return fmt.Errorf("schedule %d: expected %d durations, got %d", p.ee, p.Rows(), len(x))
	}
	sum := 0.0
	for i, v := range x {
		p.durations[i] = v
		sum += v
	}
	p.durations[len(p.durations)-1] = p.totalTime - sum
	return nil
}

// Durations returns a copy of every phase duration, the last one included.
func (p *PhaseDurations) Durations() []float64 {
	d := make([]float64, len(p.durations))
	copy(d, p.durations)
	return d
}

func (p *PhaseDurations) TotalTime() float64 { return p.totalTime }

func (p *PhaseDurations) PhaseCount() int { return len(p.durations) }

func (p *PhaseDurations) InContactAtStart() bool { return p.inContactStart }

// IsContactPhase reports the contact state during phase.
func (p *PhaseDurations) IsContactPhase(phase int) bool {
	if phase%2 == 0 {
		return p.inContactStart
	}
	return !p.inContactStart
}

func (p *PhaseDurations) DurationBounds() nlp.Bounds { return p.bound }
