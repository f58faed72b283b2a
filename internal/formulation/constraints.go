package formulation

import (
	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/constraint"
	"github.com/san-kum/gaitnlp/internal/nlp"
	"github.com/san-kum/gaitnlp/internal/spline"
	"github.com/san-kum/gaitnlp/internal/variables"
)

// Constraints dispatches every enabled constraint kind in order. Duplicate
// kinds produce duplicate instances.
func (f *Formulation) Constraints(s *spline.Holder) (nlp.Constraints, error) {
	var constraints nlp.Constraints
	for _, name := range f.params.Constraints {
		c, err := f.Constraint(name, s)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c...)
	}
	return constraints, nil
}

// Constraint builds the instances of a single kind. An unknown kind yields
// ErrUnknownConstraint and no instances.
func (f *Formulation) Constraint(name config.ConstraintName, s *spline.Holder) (nlp.Constraints, error) {
	switch name {
	case config.Dynamic:
		return f.makeDynamicConstraint(s), nil
	case config.EndeffectorRom:
		return f.makeRangeOfMotionBoxConstraint(s), nil
	case config.BaseRom:
		return f.makeBaseRangeOfMotionConstraint(s), nil
	case config.TotalTime:
		return f.makeTotalTimeConstraint(), nil
	case config.Terrain:
		return f.makeTerrainConstraint(), nil
	case config.Force:
		return f.makeForceConstraint(), nil
	case config.Swing:
		return f.makeSwingConstraint(), nil
	case config.BaseAcc:
		return f.makeBaseAccConstraint(s), nil
	default:
		return nil, configError("Constraint", name, ErrUnknownConstraint)
	}
}

func (f *Formulation) makeDynamicConstraint(s *spline.Holder) nlp.Constraints {
	return nlp.Constraints{
		constraint.NewDynamic(f.model.Dynamic, f.params.TotalTime(), f.params.DtConstraintDynamic, s),
	}
}

func (f *Formulation) makeRangeOfMotionBoxConstraint(s *spline.Holder) nlp.Constraints {
	var c nlp.Constraints
	for ee := 0; ee < f.params.EECount(); ee++ {
		c = append(c, constraint.NewRangeOfMotion(
			f.model.Kinematic, f.params.TotalTime(), f.params.DtConstraintRangeOfMotion, ee, s))
	}
	return c
}

func (f *Formulation) makeBaseRangeOfMotionConstraint(s *spline.Holder) nlp.Constraints {
	return nlp.Constraints{
		constraint.NewBaseMotion(f.params.TotalTime(), f.params.DtConstraintBaseMotion, s),
	}
}

func (f *Formulation) makeTotalTimeConstraint() nlp.Constraints {
	var c nlp.Constraints
	total := f.params.TotalTime()
	for ee := 0; ee < f.params.EECount(); ee++ {
		c = append(c, constraint.NewTotalDuration(total, ee))
	}
	return c
}

func (f *Formulation) makeTerrainConstraint() nlp.Constraints {
	var c nlp.Constraints
	for ee := 0; ee < f.params.EECount(); ee++ {
		c = append(c, constraint.NewTerrain(f.terrain, variables.EEMotionLinNodes(ee)))
	}
	return c
}

func (f *Formulation) makeForceConstraint() nlp.Constraints {
	var c nlp.Constraints
	for ee := 0; ee < f.params.EECount(); ee++ {
		c = append(c, constraint.NewForce(f.terrain, f.params.ForceLimitInNormalDirection, ee))
	}
	return c
}

func (f *Formulation) makeSwingConstraint() nlp.Constraints {
	var c nlp.Constraints
	for ee := 0; ee < f.params.EECount(); ee++ {
		c = append(c, constraint.NewSwing(variables.EEMotionLinNodes(ee)))
	}
	return c
}

func (f *Formulation) makeBaseAccConstraint(s *spline.Holder) nlp.Constraints {
	return nlp.Constraints{
		constraint.NewSplineAcc(s.BaseLinear, variables.BaseLinNodes),
		constraint.NewSplineAcc(s.BaseAngular, variables.BaseAngNodes),
	}
}
