package formulation

import (
	"bytes"
	"errors"

	"github.com/golang/geo/r3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/constraint"
	"github.com/san-kum/gaitnlp/internal/cost"
	"github.com/san-kum/gaitnlp/internal/nlp"
	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/spline"
	"github.com/san-kum/gaitnlp/internal/terrain"
	"github.com/san-kum/gaitnlp/internal/variables"
)

func singleLegModel() robot.Model {
	return robot.Model{
		Kinematic: &robot.KinematicModel{
			NominalStance: []r3.Vector{{X: 0.1, Y: 0.1, Z: -0.5}},
			MaxDeviation:  r3.Vector{X: 0.2, Y: 0.2, Z: 0.1},
		},
		Dynamic: &robot.DynamicModel{
			Mass:    20,
			Gravity: robot.StandardGravity,
			Inertia: robot.NewInertia(1, 1, 1, 0, 0, 0),
			EECount: 1,
		},
	}
}

func singleLegParams() *config.Parameters {
	p := config.DefaultParameters()
	p.EEPhaseDurations = [][]float64{{0.4, 0.2, 0.4}}
	p.EEInContactAtStart = []bool{true}
	return p
}

func singleLegTask() *LocomotionTask {
	return &LocomotionTask{
		InitialBaseLin:     []float64{0.013, -0.021, 0.5, 0.1, 0.2, -0.3},
		InitialBaseAng:     []float64{0.01, 0.02, 0.03, 0.4, 0.5, 0.6},
		FinalBaseLin:       []float64{1, 0, 0.5, 0, 0, 0},
		FinalBaseAng:       []float64{0, 0, 0, 0, 0, 0},
		InitialEEMotionLin: []r3.Vector{{X: 0.1, Y: 0.1, Z: 0}},
	}
}

func quadrupedTask() *LocomotionTask {
	stance := robot.NewAnymal().Kinematic.NominalStanceInBase()
	task := &LocomotionTask{
		InitialBaseLin: []float64{0, 0, 0.42, 0, 0, 0},
		InitialBaseAng: make([]float64, 6),
		FinalBaseLin:   []float64{1, 0, 0.42, 0, 0, 0},
		FinalBaseAng:   []float64{0, 0, 0.3, 0, 0, 0},
	}
	for _, s := range stance {
		task.InitialEEMotionLin = append(task.InitialEEMotionLin, r3.Vector{X: s.X, Y: s.Y, Z: 0})
	}
	return task
}

func newQuadruped() *Formulation {
	f := New(config.GetPreset("anymal", "trot"), robot.NewAnymal(), terrain.NewFlat(0))
	Expect(f.FromLocomotionTask(quadrupedTask())).To(Succeed())
	return f
}

var _ = Describe("Boundary-state mapping", func() {
	It("splits six-vectors into position and velocity", func() {
		f := New(singleLegParams(), singleLegModel(), terrain.NewFlat(0))
		Expect(f.FromLocomotionTask(singleLegTask())).To(Succeed())

		Expect(f.InitialBase().Lin.Pos).To(Equal(r3.Vector{X: 0.013, Y: -0.021, Z: 0.5}))
		Expect(f.InitialBase().Lin.Vel).To(Equal(r3.Vector{X: 0.1, Y: 0.2, Z: -0.3}))
		Expect(f.InitialBase().Ang.Vel).To(Equal(r3.Vector{X: 0.4, Y: 0.5, Z: 0.6}))
		Expect(f.FinalBase().Lin.Pos).To(Equal(r3.Vector{X: 1, Y: 0, Z: 0.5}))
		Expect(f.InitialEE()).To(Equal([]r3.Vector{{X: 0.1, Y: 0.1, Z: 0}}))
	})

	DescribeTable("rejects malformed tasks",
		func(mutate func(*LocomotionTask)) {
			f := New(singleLegParams(), singleLegModel(), terrain.NewFlat(0))
			task := singleLegTask()
			mutate(task)

			err := f.FromLocomotionTask(task)
			Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())

			var cfgErr *ConfigError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Site).To(Equal("FromLocomotionTask"))
		},
		Entry("short initial lin", func(t *LocomotionTask) { t.InitialBaseLin = t.InitialBaseLin[:3] }),
		Entry("long final ang", func(t *LocomotionTask) { t.FinalBaseAng = append(t.FinalBaseAng, 1) }),
		Entry("no feet", func(t *LocomotionTask) { t.InitialEEMotionLin = nil }),
		Entry("too many feet", func(t *LocomotionTask) {
			t.InitialEEMotionLin = append(t.InitialEEMotionLin, r3.Vector{})
		}),
	)

	It("converts the YAML task", func() {
		task, err := NewLocomotionTask(&config.Task{
			InitialBaseLin:     []float64{0, 0, 0.5, 0, 0, 0},
			InitialEEMotionLin: [][]float64{{1, 2, 3}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(task.InitialEEMotionLin).To(Equal([]r3.Vector{{X: 1, Y: 2, Z: 3}}))

		_, err = NewLocomotionTask(&config.Task{InitialEEMotionLin: [][]float64{{1, 2}}})
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())
	})
})

var _ = Describe("Variable sets", func() {
	var (
		f      *Formulation
		vars   nlp.VariableSets
		holder *spline.Holder
	)

	BeforeEach(func() {
		f = New(singleLegParams(), singleLegModel(), terrain.NewFlat(0))
		Expect(f.FromLocomotionTask(singleLegTask())).To(Succeed())
		var err error
		vars, holder, err = f.VariableSets()
		Expect(err).NotTo(HaveOccurred())
	})

	It("gives the base splines one node more than base polynomials", func() {
		k := len(f.Params().BasePolyDurations())
		Expect(holder.BaseLinear.Nodes().NumNodes()).To(Equal(k + 1))
		Expect(holder.BaseAngular.Nodes().NumNodes()).To(Equal(k + 1))
	})

	It("pins the first base node to the initial state exactly", func() {
		lin := holder.BaseLinear.Nodes()
		first := lin.Node(0)
		Expect(first.Pos).To(Equal(f.InitialBase().Lin.Pos))
		Expect(first.Vel).To(Equal(f.InitialBase().Lin.Vel))

		ang := holder.BaseAngular.Nodes().Node(0)
		Expect(ang.Pos).To(Equal(f.InitialBase().Ang.Pos))
		Expect(ang.Vel).To(Equal(f.InitialBase().Ang.Vel))

		for _, d := range variables.AllDims {
			Expect(lin.IsBounded(0, variables.Pos, d)).To(BeTrue())
			Expect(lin.IsBounded(0, variables.Vel, d)).To(BeTrue())
		}
	})

	It("leaves the last base node free by default", func() {
		last := holder.BaseLinear.Nodes().NumNodes() - 1
		for _, d := range variables.AllDims {
			Expect(holder.BaseLinear.Nodes().IsBounded(last, variables.Pos, d)).To(BeFalse())
			Expect(holder.BaseAngular.Nodes().IsBounded(last, variables.Vel, d)).To(BeFalse())
		}
	})

	It("aims the base at the terrain-aware target", func() {
		Expect(f.BaseTarget().Z).To(BeNumerically("~", 0.5, 1e-12))

		lin := holder.BaseLinear.Nodes()
		last := lin.Node(lin.NumNodes() - 1).Pos
		Expect(last.X).To(BeNumerically("~", 1, 1e-9))
		Expect(last.Z).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("places the final foothold under the rotated nominal stance", func() {
		p, err := f.FinalFoothold(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.X).To(BeNumerically("~", 1.1, 1e-12))
		Expect(p.Y).To(BeNumerically("~", 0.1, 1e-12))
		Expect(p.Z).To(BeNumerically("~", 0, 1e-12))
	})

	It("pins the first foot node to the initial foot position", func() {
		nodes := holder.EEMotion[0].Nodes()
		Expect(nodes.Node(0).Pos).To(Equal(r3.Vector{X: 0.1, Y: 0.1, Z: 0}))
		Expect(nodes.IsBounded(0, variables.Pos, variables.Z)).To(BeTrue())
	})

	It("excludes schedules from the collection with fixed timings", func() {
		Expect(vars.Names()).To(Equal([]string{
			variables.BaseLinNodes,
			variables.BaseAngNodes,
			variables.EEMotionLinNodes(0),
			variables.EEWrenchLinNodes(0),
		}))
		Expect(holder.PhaseDurations).To(HaveLen(1))
		Expect(holder.OptimizeTimings).To(BeFalse())
	})

	It("enforces the final base state when asked to", func() {
		p := singleLegParams()
		p.EnforceFinalBaseBound = true
		f := New(p, singleLegModel(), terrain.NewFlat(0))
		Expect(f.FromLocomotionTask(singleLegTask())).To(Succeed())
		_, h, err := f.VariableSets()
		Expect(err).NotTo(HaveOccurred())

		lin := h.BaseLinear.Nodes()
		last := lin.NumNodes() - 1
		Expect(lin.IsBounded(last, variables.Pos, variables.X)).To(BeTrue())
		Expect(lin.IsBounded(last, variables.Pos, variables.Y)).To(BeTrue())
		Expect(lin.IsBounded(last, variables.Pos, variables.Z)).To(BeFalse())
		Expect(lin.Node(last).Pos.X).To(Equal(1.0))
		Expect(h.BaseAngular.Nodes().IsBounded(last, variables.Vel, variables.Z)).To(BeTrue())
	})

	It("refuses to build before a task is set", func() {
		_, _, err := New(singleLegParams(), singleLegModel(), terrain.NewFlat(0)).VariableSets()
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())
	})

	DescribeTable("rejects parameters broken after mapping",
		func(mutate func(*config.Parameters)) {
			p := singleLegParams()
			f := New(p, singleLegModel(), terrain.NewFlat(0))
			Expect(f.FromLocomotionTask(singleLegTask())).To(Succeed())
			mutate(p)

			var (
				vars nlp.VariableSets
				h    *spline.Holder
				err  error
			)
			Expect(func() { vars, h, err = f.VariableSets() }).NotTo(Panic())
			Expect(vars).To(BeNil())
			Expect(h).To(BeNil())
			Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())

			var cfgErr *ConfigError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Site).To(Equal("VariableSets"))
		},
		Entry("nil phase-duration bound", func(p *config.Parameters) { p.BoundPhaseDuration = nil }),
		Entry("short phase-duration bound", func(p *config.Parameters) { p.BoundPhaseDuration = []float64{0.2} }),
		Entry("limb without phases", func(p *config.Parameters) { p.EEPhaseDurations = [][]float64{{}} }),
		Entry("no end-effectors", func(p *config.Parameters) {
			p.EEPhaseDurations = nil
			p.EEInContactAtStart = nil
		}),
		Entry("missing contact flag", func(p *config.Parameters) { p.EEInContactAtStart = nil }),
	)

	It("rejects a foothold of a limb the robot does not have", func() {
		_, err := f.FinalFoothold(1)
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())

		_, err = f.FinalFoothold(-1)
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())

		_, err = New(singleLegParams(), singleLegModel(), terrain.NewFlat(0)).FinalFoothold(0)
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())
	})
})

var _ = Describe("Quadruped variable sets", func() {
	It("spreads the weight over every foot", func() {
		f := newQuadruped()
		_, h, err := f.VariableSets()
		Expect(err).NotTo(HaveOccurred())

		want := 29.5 * robot.StandardGravity / 4
		for _, s := range h.EEForce {
			for _, n := range s.Nodes().Nodes() {
				Expect(n.Pos).To(Equal(r3.Vector{Z: want}))
			}
		}
	})

	It("keeps the collection order with optimized timings", func() {
		p := config.GetPreset("anymal", "trot")
		p.OptimizePhaseDurations()
		f := New(p, robot.NewAnymal(), terrain.NewFlat(0))
		Expect(f.FromLocomotionTask(quadrupedTask())).To(Succeed())

		vars, h, err := f.VariableSets()
		Expect(err).NotTo(HaveOccurred())

		want := []string{variables.BaseLinNodes, variables.BaseAngNodes}
		for ee := 0; ee < 4; ee++ {
			want = append(want, variables.EEMotionLinNodes(ee))
		}
		for ee := 0; ee < 4; ee++ {
			want = append(want, variables.EEWrenchLinNodes(ee))
		}
		for ee := 0; ee < 4; ee++ {
			want = append(want, variables.EESchedule(ee))
		}
		Expect(vars.Names()).To(Equal(want))
		Expect(h.OptimizeTimings).To(BeTrue())
		Expect(h.EEMotion[0].Schedule()).To(BeIdenticalTo(h.PhaseDurations[0]))
	})

	It("turns footholds with the final yaw", func() {
		f := newQuadruped()
		stance := f.Model().Kinematic.NominalStanceInBase()[0]
		rotated := rotate(rotationBaseToWorld(r3.Vector{Z: 0.3}), stance)

		p, err := f.FinalFoothold(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.X).To(BeNumerically("~", 1+rotated.X, 1e-12))
		Expect(p.Y).To(BeNumerically("~", rotated.Y, 1e-12))
		Expect(p.Z).To(Equal(0.0))
	})
})

var _ = Describe("Constraint dispatch", func() {
	var (
		f      *Formulation
		holder *spline.Holder
	)

	BeforeEach(func() {
		f = newQuadruped()
		var err error
		_, holder, err = f.VariableSets()
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("instance counts",
		func(name config.ConstraintName, want int) {
			c, err := f.Constraint(name, holder)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(HaveLen(want))
		},
		Entry("dynamic", config.Dynamic, 1),
		Entry("base rom", config.BaseRom, 1),
		Entry("base acc", config.BaseAcc, 2),
		Entry("endeffector rom", config.EndeffectorRom, 4),
		Entry("total time", config.TotalTime, 4),
		Entry("terrain", config.Terrain, 4),
		Entry("force", config.Force, 4),
		Entry("swing", config.Swing, 4),
	)

	It("binds the acceleration constraints to the holder's base splines", func() {
		c, err := f.Constraint(config.BaseAcc, holder)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Names()).To(Equal([]string{"splineacc-base-lin", "splineacc-base-ang"}))
		Expect(c[0].(*constraint.SplineAcc).Junctions()).To(Equal(holder.BaseLinear.Nodes().PolyCount() - 1))
	})

	It("rejects an unknown kind with no instances", func() {
		c, err := f.Constraint(config.ConstraintName(99), holder)
		Expect(c).To(BeEmpty())
		Expect(errors.Is(err, ErrUnknownConstraint)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("ConstraintName(99)"))
	})

	It("concatenates the enabled kinds in order, duplicates included", func() {
		f.Params().Constraints = []config.ConstraintName{config.BaseAcc, config.Dynamic, config.BaseAcc}
		c, err := f.Constraints(holder)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Names()).To(Equal([]string{
			"splineacc-base-lin", "splineacc-base-ang",
			"dynamic",
			"splineacc-base-lin", "splineacc-base-ang",
		}))
	})

	It("fails the whole collection on an unknown kind", func() {
		f.Params().Constraints = []config.ConstraintName{config.Dynamic, config.ConstraintName(-1)}
		c, err := f.Constraints(holder)
		Expect(c).To(BeNil())
		Expect(errors.Is(err, ErrUnknownConstraint)).To(BeTrue())
	})
})

var _ = Describe("Cost dispatch", func() {
	var f *Formulation
	weight := r3.Vector{X: 1, Y: 2, Z: 3}

	BeforeEach(func() {
		f = newQuadruped()
	})

	DescribeTable("instance counts",
		func(name config.CostName, want int) {
			c, err := f.Cost(name, weight)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(HaveLen(want))
		},
		Entry("final base lin pos", config.FinalBaseLinPosCost, 3),
		Entry("final base ang vel", config.FinalBaseAngVelCost, 3),
		Entry("intermediate base lin vel", config.IntermediateBaseLinVelCost, 3),
		Entry("base ang vel diff", config.BaseAngVelDiffCost, 3),
		Entry("wrench lin pos", config.WrenchLinPosCost, 12),
		Entry("wrench ang vel", config.WrenchAngVelCost, 12),
		Entry("wrench lin vel diff", config.WrenchLinVelDiffCost, 12),
	)

	It("targets the final base state per axis", func() {
		c, err := f.Cost(config.FinalBaseAngPosCost, weight)
		Expect(err).NotTo(HaveOccurred())

		last := c[2].(*cost.FinalNode)
		Expect(last.NodesID()).To(Equal(variables.BaseAngNodes))
		Expect(last.Dim()).To(Equal(variables.Z))
		Expect(last.Target()).To(Equal(0.3))
		Expect(last.Weight()).To(Equal(3.0))
	})

	It("expands wrench costs foot by foot", func() {
		c, err := f.Cost(config.WrenchLinVelDiffCost, weight)
		Expect(err).NotTo(HaveOccurred())
		Expect(c[0].Operands()).To(Equal([]string{variables.EEWrenchLinNodes(0)}))
		Expect(c[3].Operands()).To(Equal([]string{variables.EEWrenchLinNodes(1)}))
		Expect(c[11].(*cost.NodeDifference).Dim()).To(Equal(variables.Z))
	})

	It("pulls interior positions toward the midpoint", func() {
		c, err := f.makeIntermediateBaseCost(variables.BaseLinNodes, f.InitialBase().Lin, f.FinalBase().Lin, variables.Pos, weight)
		Expect(err).NotTo(HaveOccurred())
		Expect(c[0].(*cost.IntermediateNode).Target()).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("rejects derivatives other than position and velocity", func() {
		_, err := f.makeFinalBaseCost(variables.BaseLinNodes, f.FinalBase().Lin, variables.Acc, weight)
		Expect(errors.Is(err, ErrUnknownDerivative)).To(BeTrue())

		_, err = f.makeIntermediateBaseCost(variables.BaseLinNodes, f.InitialBase().Lin, f.FinalBase().Lin, variables.Jerk, weight)
		Expect(errors.Is(err, ErrUnknownDerivative)).To(BeTrue())

		_, err = f.makeWrenchCost(variables.EEWrenchLinNodes, variables.Acc, weight)
		Expect(errors.Is(err, ErrUnknownDerivative)).To(BeTrue())
	})

	It("rejects an unknown kind with no instances", func() {
		c, err := f.Cost(config.CostName(42), weight)
		Expect(c).To(BeEmpty())
		Expect(errors.Is(err, ErrUnknownCost)).To(BeTrue())
	})

	It("needs a mapped task for its targets", func() {
		unmapped := New(config.GetPreset("anymal", "trot"), robot.NewAnymal(), terrain.NewFlat(0))

		c, err := unmapped.Cost(config.FinalBaseLinPosCost, weight)
		Expect(c).To(BeEmpty())
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())

		all, err := unmapped.Costs()
		Expect(all).To(BeNil())
		Expect(errors.Is(err, ErrMalformedTask)).To(BeTrue())
	})

	It("sums the default costs", func() {
		c, err := f.Costs()
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(HaveLen(12))
		Expect(c.TotalWeight()).To(BeNumerically("~", 6006, 1e-9))
	})
})

var _ = Describe("Banner", func() {
	It("is written only on request", func() {
		var buf bytes.Buffer
		Expect(Banner(&buf)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("gaitnlp"))
	})
})
