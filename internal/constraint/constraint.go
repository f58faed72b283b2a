package constraint

import (
	"math"
	"strconv"

	"github.com/golang/geo/r3"

	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/spline"
	"github.com/san-kum/gaitnlp/internal/terrain"
	"github.com/san-kum/gaitnlp/internal/variables"
)

// TimeGrid samples [0, T] every dt. T itself is always the last sample.
func TimeGrid(totalTime, dt float64) []float64 {
	t := 0.0
	grid := []float64{t}
	for i := 0; i < int(math.Floor(totalTime/dt)); i++ {
		t += dt
		grid = append(grid, t)
	}
	return append(grid, totalTime)
}

func scheduleOperands(h *spline.Holder, ee int) []string {
	if !h.OptimizeTimings {
		return nil
	}
	return []string{variables.EESchedule(ee)}
}

// Dynamic enforces single-rigid-body dynamics at sampled times.
type Dynamic struct {
	model     *robot.DynamicModel
	totalTime float64
	dt        float64
	splines   *spline.Holder
}

func NewDynamic(model *robot.DynamicModel, totalTime, dt float64, splines *spline.Holder) *Dynamic {
	return &Dynamic{model: model, totalTime: totalTime, dt: dt, splines: splines}
}

func (c *Dynamic) Name() string { return "dynamic" }

func (c *Dynamic) Operands() []string {
	ops := []string{variables.BaseLinNodes, variables.BaseAngNodes}
	for ee := 0; ee < c.splines.EECount(); ee++ {
		ops = append(ops, variables.EEMotionLinNodes(ee), variables.EEWrenchLinNodes(ee))
		ops = append(ops, scheduleOperands(c.splines, ee)...)
	}
	return ops
}

func (c *Dynamic) Samples() []float64 { return TimeGrid(c.totalTime, c.dt) }

func (c *Dynamic) Model() *robot.DynamicModel { return c.model }

// RangeOfMotion keeps one foot inside its reachability box.
type RangeOfMotion struct {
	model     *robot.KinematicModel
	totalTime float64
	dt        float64
	ee        int
	splines   *spline.Holder
}

func NewRangeOfMotion(model *robot.KinematicModel, totalTime, dt float64, ee int, splines *spline.Holder) *RangeOfMotion {
	return &RangeOfMotion{model: model, totalTime: totalTime, dt: dt, ee: ee, splines: splines}
}

func (c *RangeOfMotion) Name() string { return "rangeofmotion-" + strconv.Itoa(c.ee) }

func (c *RangeOfMotion) Operands() []string {
	ops := []string{variables.BaseLinNodes, variables.BaseAngNodes, variables.EEMotionLinNodes(c.ee)}
	return append(ops, scheduleOperands(c.splines, c.ee)...)
}

func (c *RangeOfMotion) Samples() []float64 { return TimeGrid(c.totalTime, c.dt) }

func (c *RangeOfMotion) EE() int { return c.ee }

// Box returns the nominal stance and half-extents of the allowed region.
func (c *RangeOfMotion) Box() (r3.Vector, r3.Vector) {
	return c.model.NominalStance[c.ee], c.model.ReachabilityVolume()
}

// BaseMotion keeps the base inside a band around its initial guess.
type BaseMotion struct {
	totalTime float64
	dt        float64
	splines   *spline.Holder
}

func NewBaseMotion(totalTime, dt float64, splines *spline.Holder) *BaseMotion {
	return &BaseMotion{totalTime: totalTime, dt: dt, splines: splines}
}

func (c *BaseMotion) Name() string { return "baseMotion" }

func (c *BaseMotion) Operands() []string {
	return []string{variables.BaseLinNodes, variables.BaseAngNodes}
}

func (c *BaseMotion) Samples() []float64 { return TimeGrid(c.totalTime, c.dt) }

// TotalDuration makes one schedule add up to the total time.
type TotalDuration struct {
	totalTime float64
	ee        int
}

func NewTotalDuration(totalTime float64, ee int) *TotalDuration {
	return &TotalDuration{totalTime: totalTime, ee: ee}
}

func (c *TotalDuration) Name() string { return "totalduration-" + strconv.Itoa(c.ee) }

func (c *TotalDuration) Operands() []string { return []string{variables.EESchedule(c.ee)} }

func (c *TotalDuration) TotalTime() float64 { return c.totalTime }

// Terrain keeps stance feet on and swing feet above the height map.
type Terrain struct {
	terrain terrain.HeightMap
	nodesID string
}

func NewTerrain(hm terrain.HeightMap, nodesID string) *Terrain {
	return &Terrain{terrain: hm, nodesID: nodesID}
}

func (c *Terrain) Name() string { return "terrain-" + c.nodesID }

func (c *Terrain) Operands() []string { return []string{c.nodesID} }

func (c *Terrain) HeightMap() terrain.HeightMap { return c.terrain }

// Force bounds contact forces to the friction pyramid and the normal limit.
type Force struct {
	terrain    terrain.HeightMap
	forceLimit float64
	ee         int
}

func NewForce(hm terrain.HeightMap, forceLimit float64, ee int) *Force {
	return &Force{terrain: hm, forceLimit: forceLimit, ee: ee}
}

func (c *Force) Name() string { return "force-" + variables.EEWrenchLinNodes(c.ee) }

func (c *Force) Operands() []string {
	return []string{variables.EEWrenchLinNodes(c.ee), variables.EEMotionLinNodes(c.ee)}
}

func (c *Force) ForceLimit() float64 { return c.forceLimit }

// ContactNormal is the terrain normal below a foot at p.
func (c *Force) ContactNormal(p r3.Vector) r3.Vector {
	return terrain.Normal(c.terrain, p.X, p.Y)
}

// Swing shapes the mid-swing foot position.
type Swing struct {
	nodesID string
}

func NewSwing(nodesID string) *Swing {
	return &Swing{nodesID: nodesID}
}

func (c *Swing) Name() string { return "swing-" + c.nodesID }

func (c *Swing) Operands() []string { return []string{c.nodesID} }

// SplineAcc makes accelerations continuous across polynomial junctions.
type SplineAcc struct {
	spline  *spline.Spline
	nodesID string
}

func NewSplineAcc(s *spline.Spline, nodesID string) *SplineAcc {
	return &SplineAcc{spline: s, nodesID: nodesID}
}

func (c *SplineAcc) Name() string { return "splineacc-" + c.nodesID }

func (c *SplineAcc) Operands() []string { return []string{c.nodesID} }

// Junctions is the number of interior nodes the constraint acts on.
func (c *SplineAcc) Junctions() int {
	return c.spline.Nodes().PolyCount() - 1
}
