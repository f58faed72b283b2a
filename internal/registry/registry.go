// Package registry resolves robot and terrain names used by tasks, scenarios
// and the command line.
package registry

import (
	"fmt"
	"sort"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/formulation"
	"github.com/san-kum/gaitnlp/internal/problem"
	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/terrain"
)

type Registry struct {
	robots   map[string]func() robot.Model
	terrains map[string]func() terrain.HeightMap
}

func NewRegistry() *Registry {
	r := &Registry{
		robots:   make(map[string]func() robot.Model),
		terrains: make(map[string]func() terrain.HeightMap),
	}

	r.robots["monoped"] = robot.NewMonoped
	r.robots["biped"] = robot.NewBiped
	r.robots["hyq"] = robot.NewHyQ
	r.robots["anymal"] = robot.NewAnymal

	r.terrains["flat"] = func() terrain.HeightMap { return terrain.NewFlat(0) }
	r.terrains["block"] = func() terrain.HeightMap { return terrain.NewBlock() }
	r.terrains["stairs"] = func() terrain.HeightMap { return terrain.NewStairs() }
	r.terrains["slope"] = func() terrain.HeightMap { return terrain.NewSlope() }

	return r
}

func (r *Registry) GetRobot(name string) (robot.Model, error) {
	fn, ok := r.robots[name]
	if !ok {
		return robot.Model{}, fmt.Errorf("unknown robot: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetTerrain(name string) (terrain.HeightMap, error) {
	fn, ok := r.terrains[name]
	if !ok {
		return nil, fmt.Errorf("unknown terrain: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListRobots() []string {
	return sortedKeys(r.robots)
}

func (r *Registry) ListTerrains() []string {
	return sortedKeys(r.terrains)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec resolves the robot and terrain a task names and pairs them with
// params. An empty terrain name means flat ground.
func (r *Registry) Spec(name string, params *config.Parameters, task *config.Task) (problem.Spec, error) {
	model, err := r.GetRobot(task.Robot)
	if err != nil {
		return problem.Spec{}, err
	}
	terrainName := task.Terrain
	if terrainName == "" {
		terrainName = "flat"
	}
	hm, err := r.GetTerrain(terrainName)
	if err != nil {
		return problem.Spec{}, err
	}
	lt, err := formulation.NewLocomotionTask(task)
	if err != nil {
		return problem.Spec{}, err
	}
	return problem.Spec{
		Name:        name,
		RobotName:   task.Robot,
		TerrainName: terrainName,
		Params:      params,
		Model:       model,
		Terrain:     hm,
		Task:        lt,
	}, nil
}
