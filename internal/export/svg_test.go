package export

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/problem"
	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/storage"
	"github.com/san-kum/gaitnlp/internal/terrain"
	"github.com/san-kum/gaitnlp/internal/variables"
)

func TestTrajectoryToSVG(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG([]Point{{0, 0}}, 100, 100, "#fff"))

	svg := TrajectoryToSVG([]Point{{0, 0}, {1, 1}}, 100, 100, "#00ff00")
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Contains(t, svg, "M8.3,91.7 L91.7,8.3")
}

func TestSeriesToSVG(t *testing.T) {
	assert.Empty(t, SeriesToSVG(nil, 100, 100))

	svg := SeriesToSVG([]Series{
		{Name: "a", Points: []Point{{0, 0}, {1, 0}}},
		{Name: "b", Points: []Point{{0.5, 1}}},
	}, 200, 100)
	assert.Contains(t, svg, `id="a"`)
	assert.Contains(t, svg, "<circle")
	assert.Equal(t, 1, strings.Count(svg, "<path"))
}

func TestProblemToSVG(t *testing.T) {
	model := robot.NewAnymal()
	hm := terrain.NewFlat(0)
	p, err := problem.Build(context.Background(), problem.Spec{
		Name:    "trot",
		Params:  config.GetPreset("anymal", "trot"),
		Model:   model,
		Terrain: hm,
		Task:    problem.NominalTask(model, hm, r3.Vector{X: 1}, 0),
	}, nil)
	require.NoError(t, err)

	series := TopView(p)
	require.Len(t, series, 5)
	assert.Equal(t, variables.BaseLinNodes, series[0].Name)

	svg := ProblemToSVG(p, 400, 300)
	assert.Equal(t, 5, strings.Count(svg, "<path"))
	assert.Contains(t, svg, `id="ee-motion-lin_3"`)
}

func TestTopViewFromRecords(t *testing.T) {
	series := TopViewFromRecords([]storage.NodeRecord{
		{Set: variables.BaseLinNodes, Pos: r3.Vector{X: 0}},
		{Set: variables.EEWrenchLinNodes(0), Pos: r3.Vector{Z: 100}},
		{Set: variables.EEMotionLinNodes(0), Pos: r3.Vector{X: 0.3, Y: 0.2}},
		{Set: variables.BaseLinNodes, Pos: r3.Vector{X: 1}},
	})

	require.Len(t, series, 2)
	assert.Equal(t, variables.BaseLinNodes, series[0].Name)
	assert.Equal(t, []Point{{0, 0}, {1, 0}}, series[0].Points)
	assert.Equal(t, []Point{{0.3, 0.2}}, series[1].Points)
}
