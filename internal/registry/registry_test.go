package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gaitnlp/internal/config"
)

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"anymal", "biped", "hyq", "monoped"}, r.ListRobots())
	assert.Equal(t, []string{"block", "flat", "slope", "stairs"}, r.ListTerrains())

	m, err := r.GetRobot("biped")
	require.NoError(t, err)
	assert.Equal(t, 2, m.EECount())

	hm, err := r.GetTerrain("flat")
	require.NoError(t, err)
	assert.Equal(t, 0.0, hm.Height(3, 4))

	_, err = r.GetRobot("hexapod")
	assert.EqualError(t, err, "unknown robot: hexapod")

	_, err = r.GetTerrain("lava")
	assert.Error(t, err)
}

func TestRegistrySpec(t *testing.T) {
	r := NewRegistry()
	task := &config.Task{
		Robot:              "monoped",
		InitialBaseLin:     []float64{0, 0, 0.58, 0, 0, 0},
		InitialBaseAng:     make([]float64, 6),
		FinalBaseLin:       []float64{1, 0, 0.58, 0, 0, 0},
		FinalBaseAng:       make([]float64, 6),
		InitialEEMotionLin: [][]float64{{0, 0, 0}},
	}

	spec, err := r.Spec("hop", config.GetPreset("monoped", "hop"), task)
	require.NoError(t, err)
	assert.Equal(t, "flat", spec.TerrainName)
	assert.Equal(t, "monoped", spec.RobotName)
	assert.Len(t, spec.Task.InitialEEMotionLin, 1)

	task.Terrain = "moon"
	_, err = r.Spec("hop", config.GetPreset("monoped", "hop"), task)
	assert.Error(t, err)
}
