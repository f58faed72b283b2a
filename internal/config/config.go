package config

import (
	"fmt"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaitnlp/internal/variables"
)

const (
	DefaultDurationBasePolynomial    = 0.1
	DefaultPolynomialsPerSwingPhase  = 2
	DefaultForcePolysPerStancePhase  = 3
	DefaultMinPhaseDuration          = 0.2
	DefaultMaxPhaseDuration          = 1.0
	DefaultDtConstraintDynamic       = 0.1
	DefaultDtConstraintRangeOfMotion = 0.08
	DefaultForceLimit                = 1000.0

	timeEps = 1e-10
)

// CostTerm enables one cost kind with a per-axis weight.
type CostTerm struct {
	Name   CostName  `yaml:"name"`
	Weight []float64 `yaml:"weight"`
}

// WeightVector returns the x, y, z weights.
func (c CostTerm) WeightVector() r3.Vector {
	var w [3]float64
	copy(w[:], c.Weight)
	return r3.Vector{X: w[0], Y: w[1], Z: w[2]}
}

// Parameters shape the optimization problem independent of the task.
type Parameters struct {
	DurationBasePolynomial         float64     `yaml:"duration_base_polynomial"`
	EEPhaseDurations               [][]float64 `yaml:"ee_phase_durations"`
	EEInContactAtStart             []bool      `yaml:"ee_in_contact_at_start"`
	EEPolynomialsPerSwingPhase     int         `yaml:"ee_polynomials_per_swing_phase"`
	ForcePolynomialsPerStancePhase int         `yaml:"force_polynomials_per_stance_phase"`
	OptimizeTimings                bool        `yaml:"optimize_timings"`
	BoundPhaseDuration             []float64   `yaml:"bound_phase_duration"`

	Constraints []ConstraintName `yaml:"constraints"`
	Costs       []CostTerm       `yaml:"costs"`

	DtConstraintDynamic       float64 `yaml:"dt_constraint_dynamic"`
	DtConstraintRangeOfMotion float64 `yaml:"dt_constraint_range_of_motion"`
	DtConstraintBaseMotion    float64 `yaml:"dt_constraint_base_motion"`

	ForceLimitInNormalDirection float64 `yaml:"force_limit_in_normal_direction"`

	// EnforceFinalBaseBound turns the final base state into hard bounds on
	// the axes below. Off by default; the final state is then only reached
	// through the final-base costs.
	EnforceFinalBaseBound bool            `yaml:"enforce_final_base_bound"`
	BoundsFinalLinPos     []variables.Dim `yaml:"bounds_final_lin_pos"`
	BoundsFinalLinVel     []variables.Dim `yaml:"bounds_final_lin_vel"`
	BoundsFinalAngPos     []variables.Dim `yaml:"bounds_final_ang_pos"`
	BoundsFinalAngVel     []variables.Dim `yaml:"bounds_final_ang_vel"`
}

func DefaultParameters() *Parameters {
	return &Parameters{
		DurationBasePolynomial:         DefaultDurationBasePolynomial,
		EEPolynomialsPerSwingPhase:     DefaultPolynomialsPerSwingPhase,
		ForcePolynomialsPerStancePhase: DefaultForcePolysPerStancePhase,
		BoundPhaseDuration:             []float64{DefaultMinPhaseDuration, DefaultMaxPhaseDuration},
		Constraints: []ConstraintName{
			Terrain,
			Dynamic,
			BaseAcc,
			EndeffectorRom,
			Force,
			Swing,
		},
		Costs: []CostTerm{
			{Name: FinalBaseLinPosCost, Weight: []float64{1000, 1000, 1000}},
			{Name: FinalBaseAngPosCost, Weight: []float64{1000, 1000, 1000}},
			{Name: BaseLinVelDiffCost, Weight: []float64{1, 1, 1}},
			{Name: BaseAngVelDiffCost, Weight: []float64{1, 1, 1}},
		},
		DtConstraintDynamic:         DefaultDtConstraintDynamic,
		DtConstraintRangeOfMotion:   DefaultDtConstraintRangeOfMotion,
		DtConstraintBaseMotion:      DefaultDurationBasePolynomial / 4,
		ForceLimitInNormalDirection: DefaultForceLimit,
		BoundsFinalLinPos:           []variables.Dim{variables.X, variables.Y},
		BoundsFinalLinVel:           variables.AllDims,
		BoundsFinalAngPos:           variables.AllDims,
		BoundsFinalAngVel:           variables.AllDims,
	}
}

func Load(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultParameters()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

func Save(path string, p *Parameters) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (p *Parameters) Clone() *Parameters {
	c := *p
	c.EEPhaseDurations = make([][]float64, len(p.EEPhaseDurations))
	for i, d := range p.EEPhaseDurations {
		c.EEPhaseDurations[i] = append([]float64(nil), d...)
	}
	c.EEInContactAtStart = append([]bool(nil), p.EEInContactAtStart...)
	c.BoundPhaseDuration = append([]float64(nil), p.BoundPhaseDuration...)
	c.Constraints = append([]ConstraintName(nil), p.Constraints...)
	c.Costs = make([]CostTerm, len(p.Costs))
	for i, t := range p.Costs {
		c.Costs[i] = CostTerm{Name: t.Name, Weight: append([]float64(nil), t.Weight...)}
	}
	c.BoundsFinalLinPos = append([]variables.Dim(nil), p.BoundsFinalLinPos...)
	c.BoundsFinalLinVel = append([]variables.Dim(nil), p.BoundsFinalLinVel...)
	c.BoundsFinalAngPos = append([]variables.Dim(nil), p.BoundsFinalAngPos...)
	c.BoundsFinalAngVel = append([]variables.Dim(nil), p.BoundsFinalAngVel...)
	return &c
}

func (p *Parameters) EECount() int {
	return len(p.EEPhaseDurations)
}

func (p *Parameters) PhaseCount(ee int) int {
	return len(p.EEPhaseDurations[ee])
}

// TotalTime is the duration of the first end-effector's contact schedule.
func (p *Parameters) TotalTime() float64 {
	if len(p.EEPhaseDurations) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range p.EEPhaseDurations[0] {
		total += d
	}
	return total
}

// BasePolyDurations splits the total time into base polynomials of
// DurationBasePolynomial; a shorter last polynomial takes the remainder.
func (p *Parameters) BasePolyDurations() []float64 {
	var durations []float64
	dt := p.DurationBasePolynomial
	if dt <= 0 {
		return nil
	}
	for left := p.TotalTime(); left > timeEps; left -= dt {
		durations = append(durations, math.Min(left, dt))
	}
	return durations
}

func (p *Parameters) IsOptimizeTimings() bool {
	return p.OptimizeTimings
}

// OptimizePhaseDurations makes the contact schedule a decision variable and
// enables the total-time constraint that keeps it consistent.
func (p *Parameters) OptimizePhaseDurations() {
	p.OptimizeTimings = true
	for _, c := range p.Constraints {
		if c == TotalTime {
			return
		}
	}
	p.Constraints = append(p.Constraints, TotalTime)
}

// Validate reports every inconsistency at once.
func (p *Parameters) Validate() error {
	var err error
	if p.EECount() == 0 {
		err = multierr.Append(err, fmt.Errorf("no end-effector phase durations"))
	}
	if len(p.EEInContactAtStart) != p.EECount() {
		err = multierr.Append(err, fmt.Errorf("ee_in_contact_at_start has %d entries, expected %d", len(p.EEInContactAtStart), p.EECount()))
	}
	if p.DurationBasePolynomial <= 0 {
		err = multierr.Append(err, fmt.Errorf("duration_base_polynomial must be positive, got %f", p.DurationBasePolynomial))
	}
	if p.EEPolynomialsPerSwingPhase < 1 {
		err = multierr.Append(err, fmt.Errorf("ee_polynomials_per_swing_phase must be at least 1"))
	}
	if p.ForcePolynomialsPerStancePhase < 1 {
		err = multierr.Append(err, fmt.Errorf("force_polynomials_per_stance_phase must be at least 1"))
	}
	if len(p.BoundPhaseDuration) != 2 || p.BoundPhaseDuration[0] > p.BoundPhaseDuration[1] {
		err = multierr.Append(err, fmt.Errorf("bound_phase_duration must be [min, max], got %v", p.BoundPhaseDuration))
	}
	for name, dt := range map[string]float64{
		"dt_constraint_dynamic":         p.DtConstraintDynamic,
		"dt_constraint_range_of_motion": p.DtConstraintRangeOfMotion,
		"dt_constraint_base_motion":     p.DtConstraintBaseMotion,
	} {
		if dt <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %f", name, dt))
		}
	}

	total := p.TotalTime()
	for ee, durations := range p.EEPhaseDurations {
		if len(durations) == 0 {
			err = multierr.Append(err, fmt.Errorf("ee %d: no phases", ee))
			continue
		}
		sum := 0.0
		for _, d := range durations {
			if d <= 0 {
				err = multierr.Append(err, fmt.Errorf("ee %d: phase duration must be positive, got %f", ee, d))
			}
			sum += d
		}
		if math.Abs(sum-total) > 1e-6 {
			err = multierr.Append(err, fmt.Errorf("ee %d: schedule spans %.4fs, expected %.4fs", ee, sum, total))
		}
	}

	for _, c := range p.Costs {
		if len(c.Weight) != 3 {
			err = multierr.Append(err, fmt.Errorf("cost %s: weight needs 3 entries, got %d", c.Name, len(c.Weight)))
		}
	}
	return err
}
