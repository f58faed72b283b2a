package constraint

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/spline"
	"github.com/san-kum/gaitnlp/internal/terrain"
	"github.com/san-kum/gaitnlp/internal/variables"
)

func holder(optimize bool) *spline.Holder {
	schedule := variables.NewPhaseDurations(0, []float64{0.5, 0.5}, true, 0.2, 1.0)
	return spline.NewHolder(
		variables.NewNodesAll(11, variables.BaseLinNodes),
		variables.NewNodesAll(11, variables.BaseAngNodes),
		[]float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
		[]*variables.Nodes{variables.NewEEMotionNodes(2, true, variables.EEMotionLinNodes(0), 2)},
		[]*variables.Nodes{variables.NewEEForceNodes(2, true, variables.EEWrenchLinNodes(0), 3)},
		[]*variables.PhaseDurations{schedule},
		optimize,
	)
}

func TestTimeGrid(t *testing.T) {
	grid := TimeGrid(1.0, 0.3)
	require.Len(t, grid, 5)
	assert.Equal(t, 0.0, grid[0])
	assert.InDelta(t, 0.9, grid[3], 1e-12)
	assert.Equal(t, 1.0, grid[4])
}

func TestDynamicOperandsFollowTimings(t *testing.T) {
	model := robot.NewMonoped().Dynamic

	fixed := NewDynamic(model, 1.0, 0.1, holder(false))
	assert.Equal(t, []string{"base-lin", "base-ang", "ee-motion-lin_0", "ee-wrench-lin_0"}, fixed.Operands())

	optimized := NewDynamic(model, 1.0, 0.1, holder(true))
	assert.Contains(t, optimized.Operands(), "ee-schedule_0")
	assert.Equal(t, "dynamic", optimized.Name())
	assert.Same(t, model, optimized.Model())
}

func TestRangeOfMotionBox(t *testing.T) {
	kin := robot.NewBiped().Kinematic
	c := NewRangeOfMotion(kin, 1.0, 0.08, 1, holder(false))

	nominal, dev := c.Box()
	assert.Equal(t, kin.NominalStance[1], nominal)
	assert.Equal(t, kin.MaxDeviation, dev)
	assert.Equal(t, "rangeofmotion-1", c.Name())
	assert.Equal(t, 1, c.EE())
}

func TestDescriptorNames(t *testing.T) {
	h := holder(false)
	flat := terrain.NewFlat(0)

	for name, c := range map[string]interface {
		Name() string
		Operands() []string
	}{
		"baseMotion":              NewBaseMotion(1.0, 0.025, h),
		"totalduration-3":         NewTotalDuration(1.0, 3),
		"terrain-ee-motion-lin_0": NewTerrain(flat, variables.EEMotionLinNodes(0)),
		"force-ee-wrench-lin_2":   NewForce(flat, 1000, 2),
		"swing-ee-motion-lin_1":   NewSwing(variables.EEMotionLinNodes(1)),
		"splineacc-base-ang":      NewSplineAcc(h.BaseAngular, variables.BaseAngNodes),
	} {
		assert.Equal(t, name, c.Name())
		assert.NotEmpty(t, c.Operands())
	}
}

func TestForceContactNormal(t *testing.T) {
	c := NewForce(terrain.NewFlat(0.2), 500, 0)
	assert.Equal(t, 500.0, c.ForceLimit())
	assert.Equal(t, r3.Vector{Z: 1}, c.ContactNormal(r3.Vector{X: 3}))
}

func TestSplineAccJunctions(t *testing.T) {
	h := holder(false)
	assert.Equal(t, 9, NewSplineAcc(h.BaseLinear, variables.BaseLinNodes).Junctions())
}
