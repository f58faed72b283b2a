package spline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gaitnlp/internal/variables"
)

func buildHolder(optimize bool) (*Holder, *variables.PhaseDurations) {
	lin := variables.NewNodesAll(3, variables.BaseLinNodes)
	ang := variables.NewNodesAll(3, variables.BaseAngNodes)
	motion := variables.NewEEMotionNodes(3, true, variables.EEMotionLinNodes(0), 2)
	force := variables.NewEEForceNodes(3, true, variables.EEWrenchLinNodes(0), 3)
	schedule := variables.NewPhaseDurations(0, []float64{0.4, 0.2, 0.4}, true, 0.1, 1.0)

	h := NewHolder(lin, ang, []float64{0.5, 0.5},
		[]*variables.Nodes{motion}, []*variables.Nodes{force},
		[]*variables.PhaseDurations{schedule}, optimize)
	return h, schedule
}

func TestHolderFixedTimings(t *testing.T) {
	h, schedule := buildHolder(false)

	require.Equal(t, 1, h.EECount())
	assert.Nil(t, h.EEMotion[0].Schedule())
	assert.Equal(t, []float64{0.5, 0.5}, h.BaseLinear.PolyDurations())
	assert.Equal(t, []float64{0, 0.5, 1.0}, h.BaseAngular.NodeTimes())
	assert.InDelta(t, 1.0, h.EEMotion[0].TotalTime(), 1e-12)

	require.NoError(t, schedule.SetValues([]float64{0.2, 0.2}))
	assert.Equal(t, []float64{0.4, 0.1, 0.1, 0.4}, h.EEMotion[0].PolyDurations())
}

func TestHolderOptimizedTimingsTrackSchedule(t *testing.T) {
	h, schedule := buildHolder(true)

	assert.True(t, h.OptimizeTimings)
	assert.Same(t, schedule, h.EEForce[0].Schedule())

	require.NoError(t, schedule.SetValues([]float64{0.2, 0.2}))
	d := h.EEMotion[0].PolyDurations()
	require.Len(t, d, 4)
	assert.InDelta(t, 0.2, d[0], 1e-12)
	assert.InDelta(t, 0.6, d[3], 1e-12)
	assert.InDelta(t, 1.0, h.EEForce[0].TotalTime(), 1e-12)
}

func TestHolderSplinesOrder(t *testing.T) {
	h, _ := buildHolder(false)

	names := make([]string, 0, 4)
	for _, s := range h.Splines() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		variables.BaseLinNodes,
		variables.BaseAngNodes,
		variables.EEMotionLinNodes(0),
		variables.EEWrenchLinNodes(0),
	}, names)
}
