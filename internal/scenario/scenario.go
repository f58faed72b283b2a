// Package scenario builds many problems from a scripted YAML sequence, a goal
// sweep or randomly perturbed goals.
package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/problem"
	"github.com/san-kum/gaitnlp/internal/registry"
	"github.com/san-kum/gaitnlp/internal/variables"
)

// Scenario defines a scripted sequence of problems
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single problem in a scenario. ParamsFile overrides Preset and
// TaskFile overrides Goal and Yaw.
type Step struct {
	Name            string    `yaml:"name"`
	Robot           string    `yaml:"robot"`
	Terrain         string    `yaml:"terrain"`
	Preset          string    `yaml:"preset"`
	ParamsFile      string    `yaml:"params_file"`
	TaskFile        string    `yaml:"task_file"`
	Goal            []float64 `yaml:"goal"`
	Yaw             float64   `yaml:"yaw"`
	OptimizeTimings bool      `yaml:"optimize_timings"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Params resolves the parameters of the step.
func (s Step) Params() (*config.Parameters, error) {
	var params *config.Parameters
	if s.ParamsFile != "" {
		p, err := config.Load(s.ParamsFile)
		if err != nil {
			return nil, err
		}
		params = p
	} else {
		params = config.GetPreset(s.Robot, s.Preset)
		if params == nil {
			return nil, fmt.Errorf("unknown preset %q for robot %q", s.Preset, s.Robot)
		}
	}
	if s.OptimizeTimings {
		params.OptimizePhaseDurations()
	}
	return params, nil
}

// Spec resolves the step into a buildable problem.
func (s Step) Spec(reg *registry.Registry) (problem.Spec, error) {
	params, err := s.Params()
	if err != nil {
		return problem.Spec{}, err
	}

	if s.TaskFile != "" {
		task, err := config.LoadTask(s.TaskFile)
		if err != nil {
			return problem.Spec{}, err
		}
		if task.Robot == "" {
			task.Robot = s.Robot
		}
		if task.Terrain == "" {
			task.Terrain = s.Terrain
		}
		return reg.Spec(s.Name, params, task)
	}

	model, err := reg.GetRobot(s.Robot)
	if err != nil {
		return problem.Spec{}, err
	}
	terrainName := s.Terrain
	if terrainName == "" {
		terrainName = "flat"
	}
	hm, err := reg.GetTerrain(terrainName)
	if err != nil {
		return problem.Spec{}, err
	}

	var goal r3.Vector
	if len(s.Goal) > 0 {
		goal.X = s.Goal[0]
	}
	if len(s.Goal) > 1 {
		goal.Y = s.Goal[1]
	}

	return problem.Spec{
		Name:        s.Name,
		RobotName:   s.Robot,
		TerrainName: terrainName,
		Params:      params,
		Model:       model,
		Terrain:     hm,
		Task:        problem.NominalTask(model, hm, goal, s.Yaw),
	}, nil
}

// RunScenario builds every step, limit at a time.
func RunScenario(ctx context.Context, scenario *Scenario, reg *registry.Registry, logger *zap.SugaredLogger, limit int) ([]*problem.Problem, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	specs := make([]problem.Spec, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if step.Name == "" {
			step.Name = fmt.Sprintf("%s-%d", scenario.Name, i+1)
		}
		spec, err := step.Spec(reg)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		specs = append(specs, spec)
	}

	logger.Infow("running scenario", "name", scenario.Name, "steps", len(specs))
	return problem.BuildBatch(ctx, specs, logger, limit)
}

// GoalSweep builds problems for goals spread along one axis
type GoalSweep struct {
	Robot    string
	Terrain  string
	Preset   string
	Axis     variables.Dim
	Min      float64
	Max      float64
	NumSteps int
	Yaw      float64
}

// SweepResult holds one problem of a sweep
type SweepResult struct {
	Goal        float64
	Rows        int
	Constraints int
	Costs       int
	BaseTarget  r3.Vector
}

// RunSweep executes a goal sweep
func RunSweep(ctx context.Context, sweep *GoalSweep, reg *registry.Registry, logger *zap.SugaredLogger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if sweep.Axis == variables.Z {
		return nil, fmt.Errorf("goal height follows the terrain and cannot be swept")
	}

	step := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	specs := make([]problem.Spec, 0, sweep.NumSteps)
	goals := make([]float64, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		g := sweep.Min + float64(i)*step
		var goal []float64
		if sweep.Axis == variables.X {
			goal = []float64{g, 0}
		} else {
			goal = []float64{0, g}
		}

		spec, err := Step{
			Name:    fmt.Sprintf("sweep-%s-%d", sweep.Axis, i),
			Robot:   sweep.Robot,
			Terrain: sweep.Terrain,
			Preset:  sweep.Preset,
			Goal:    goal,
			Yaw:     sweep.Yaw,
		}.Spec(reg)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
		goals = append(goals, g)
	}

	problems, err := problem.BuildBatch(ctx, specs, logger, 0)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(problems))
	for i, p := range problems {
		results[i] = SweepResult{
			Goal:        goals[i],
			Rows:        p.Variables.Rows(),
			Constraints: len(p.Constraints),
			Costs:       len(p.Costs),
			BaseTarget:  p.Formulation.BaseTarget(),
		}
	}
	return results, nil
}

// MonteCarloConfig perturbs the goal of a nominal task
type MonteCarloConfig struct {
	Robot        string
	Terrain      string
	Preset       string
	Goal         r3.Vector
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds one perturbed build
type MonteCarloResult struct {
	TrialID     int
	Goal        r3.Vector
	Footholds   []r3.Vector
	Rows        int
	Constraints int
	Costs       int
	Err         error
}

// RunMonteCarlo builds one full problem per perturbed goal, constraints and
// costs included. Build failures are recorded per trial rather than aborting
// the run.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, reg *registry.Registry, logger *zap.SugaredLogger) ([]MonteCarloResult, error) {
	model, err := reg.GetRobot(cfg.Robot)
	if err != nil {
		return nil, err
	}
	terrainName := cfg.Terrain
	if terrainName == "" {
		terrainName = "flat"
	}
	hm, err := reg.GetTerrain(terrainName)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		goal := r3.Vector{
			X: cfg.Goal.X + (rng.Float64()-0.5)*2*cfg.Perturbation,
			Y: cfg.Goal.Y + (rng.Float64()-0.5)*2*cfg.Perturbation,
		}

		params := config.GetPreset(cfg.Robot, cfg.Preset)
		if params == nil {
			return nil, fmt.Errorf("unknown preset %q for robot %q", cfg.Preset, cfg.Robot)
		}

		res := MonteCarloResult{TrialID: trial, Goal: goal}
		p, err := problem.Build(ctx, problem.Spec{
			Name:        fmt.Sprintf("montecarlo-%d", trial),
			RobotName:   cfg.Robot,
			TerrainName: terrainName,
			Params:      params,
			Model:       model,
			Terrain:     hm,
			Task:        problem.NominalTask(model, hm, goal, 0),
		}, logger)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Rows = p.Variables.Rows()
		res.Constraints = len(p.Constraints)
		res.Costs = len(p.Costs)
		for ee := 0; ee < p.Splines.EECount(); ee++ {
			foothold, err := p.Formulation.FinalFoothold(ee)
			if err != nil {
				res.Err = err
				break
			}
			res.Footholds = append(res.Footholds, foothold)
		}
		results = append(results, res)
	}

	return results, nil
}

// MonteCarloStats counts successful and failed trials
func MonteCarloStats(results []MonteCarloResult) (ok int, failed int) {
	for _, r := range results {
		if r.Err == nil {
			ok++
		} else {
			failed++
		}
	}
	return
}
