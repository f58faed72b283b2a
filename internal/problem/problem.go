// Package problem owns the optimization problems built for locomotion tasks.
//
// A [Problem] is the single owner of a spline bundle and of every variable
// set, constraint and cost that references it. Descriptors handed out by a
// Problem stay valid for as long as the Problem is reachable.
package problem

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/formulation"
	"github.com/san-kum/gaitnlp/internal/nlp"
	"github.com/san-kum/gaitnlp/internal/robot"
	"github.com/san-kum/gaitnlp/internal/spline"
	"github.com/san-kum/gaitnlp/internal/terrain"
)

// Spec is everything needed to build one problem.
type Spec struct {
	Name        string
	RobotName   string
	TerrainName string

	Params  *config.Parameters
	Model   robot.Model
	Terrain terrain.HeightMap
	Task    *formulation.LocomotionTask
}

type Problem struct {
	ID          string
	Name        string
	RobotName   string
	TerrainName string

	Formulation *formulation.Formulation
	Variables   nlp.VariableSets
	Splines     *spline.Holder
	Constraints nlp.Constraints
	Costs       nlp.Costs
}

// Build validates the parameters and runs the whole formulation.
func Build(ctx context.Context, spec Spec, logger *zap.SugaredLogger) (*Problem, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.Params == nil || spec.Task == nil || spec.Terrain == nil || spec.Model.Kinematic == nil || spec.Model.Dynamic == nil {
		return nil, errors.Errorf("problem %q: incomplete spec", spec.Name)
	}
	if err := spec.Params.Validate(); err != nil {
		return nil, errors.Wrapf(err, "problem %q: invalid parameters", spec.Name)
	}

	f := formulation.New(spec.Params, spec.Model, spec.Terrain)
	if err := f.FromLocomotionTask(spec.Task); err != nil {
		return nil, errors.Wrapf(err, "problem %q", spec.Name)
	}

	vars, holder, err := f.VariableSets()
	if err != nil {
		return nil, errors.Wrapf(err, "problem %q", spec.Name)
	}
	constraints, err := f.Constraints(holder)
	if err != nil {
		return nil, errors.Wrapf(err, "problem %q", spec.Name)
	}
	costs, err := f.Costs()
	if err != nil {
		return nil, errors.Wrapf(err, "problem %q", spec.Name)
	}

	p := &Problem{
		ID:          uuid.NewString(),
		Name:        spec.Name,
		RobotName:   spec.RobotName,
		TerrainName: spec.TerrainName,
		Formulation: f,
		Variables:   vars,
		Splines:     holder,
		Constraints: constraints,
		Costs:       costs,
	}

	logger.Infow("built problem",
		"name", p.Name,
		"id", p.ID,
		"variables", vars.Rows(),
		"sets", len(vars),
		"constraints", len(constraints),
		"costs", len(costs),
	)
	return p, nil
}

// BuildBatch builds independent problems concurrently, one formulation per
// spec. limit <= 0 means no limit. The first error cancels the rest.
func BuildBatch(ctx context.Context, specs []Spec, logger *zap.SugaredLogger, limit int) ([]*Problem, error) {
	problems := make([]*Problem, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			p, err := Build(gctx, spec, logger)
			if err != nil {
				return err
			}
			problems[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return problems, nil
}

// NominalTask starts the robot standing in its nominal stance at the origin
// and asks it to reach goal (x, y) with the given final yaw.
func NominalTask(model robot.Model, hm terrain.HeightMap, goal r3.Vector, yaw float64) *formulation.LocomotionTask {
	stance := model.Kinematic.NominalStanceInBase()
	startZ := hm.Height(0, 0) - stance[0].Z
	goalZ := hm.Height(goal.X, goal.Y) - stance[0].Z

	task := &formulation.LocomotionTask{
		InitialBaseLin: []float64{0, 0, startZ, 0, 0, 0},
		InitialBaseAng: []float64{0, 0, 0, 0, 0, 0},
		FinalBaseLin:   []float64{goal.X, goal.Y, goalZ, 0, 0, 0},
		FinalBaseAng:   []float64{0, 0, yaw, 0, 0, 0},
	}
	for _, s := range stance {
		task.InitialEEMotionLin = append(task.InitialEEMotionLin, r3.Vector{X: s.X, Y: s.Y, Z: hm.Height(s.X, s.Y)})
	}
	return task
}
