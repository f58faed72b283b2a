package formulation

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/san-kum/gaitnlp/internal/config"
	"github.com/san-kum/gaitnlp/internal/cost"
	"github.com/san-kum/gaitnlp/internal/nlp"
	"github.com/san-kum/gaitnlp/internal/variables"
)

// Costs dispatches every enabled (kind, weight) pair in order.
func (f *Formulation) Costs() (nlp.Costs, error) {
	if err := f.checkMapped("Costs"); err != nil {
		return nil, err
	}
	var costs nlp.Costs
	for _, term := range f.params.Costs {
		c, err := f.Cost(term.Name, term.WeightVector())
		if err != nil {
			return nil, err
		}
		costs = append(costs, c...)
	}
	return costs, nil
}

// Cost expands one kind into per-axis and, for wrench costs, per-foot
// instances. An unknown kind yields ErrUnknownCost and no instances. The
// targets come from the boundary states, so a task must be mapped first.
func (f *Formulation) Cost(name config.CostName, weight r3.Vector) (nlp.Costs, error) {
	if err := f.checkMapped("Cost"); err != nil {
		return nil, err
	}
	switch name {
	case config.FinalBaseLinPosCost:
		return f.makeFinalBaseCost(variables.BaseLinNodes, f.finalBase.Lin, variables.Pos, weight)
	case config.FinalBaseLinVelCost:
		return f.makeFinalBaseCost(variables.BaseLinNodes, f.finalBase.Lin, variables.Vel, weight)
	case config.FinalBaseAngPosCost:
		return f.makeFinalBaseCost(variables.BaseAngNodes, f.finalBase.Ang, variables.Pos, weight)
	case config.FinalBaseAngVelCost:
		return f.makeFinalBaseCost(variables.BaseAngNodes, f.finalBase.Ang, variables.Vel, weight)
	case config.IntermediateBaseLinVelCost:
		return f.makeIntermediateBaseCost(variables.BaseLinNodes, f.initialBase.Lin, f.finalBase.Lin, variables.Vel, weight)
	case config.IntermediateBaseAngVelCost:
		return f.makeIntermediateBaseCost(variables.BaseAngNodes, f.initialBase.Ang, f.finalBase.Ang, variables.Vel, weight)
	case config.BaseLinVelDiffCost:
		return f.makeVelDiffCost(single(variables.BaseLinNodes), weight), nil
	case config.BaseAngVelDiffCost:
		return f.makeVelDiffCost(single(variables.BaseAngNodes), weight), nil
	case config.WrenchLinPosCost:
		return f.makeWrenchCost(variables.EEWrenchLinNodes, variables.Pos, weight)
	case config.WrenchLinVelCost:
		return f.makeWrenchCost(variables.EEWrenchLinNodes, variables.Vel, weight)
	case config.WrenchAngPosCost:
		return f.makeWrenchCost(variables.EEWrenchAngNodes, variables.Pos, weight)
	case config.WrenchAngVelCost:
		return f.makeWrenchCost(variables.EEWrenchAngNodes, variables.Vel, weight)
	case config.WrenchLinVelDiffCost:
		return f.makeVelDiffCost(f.perFoot(variables.EEWrenchLinNodes), weight), nil
	case config.WrenchAngVelDiffCost:
		return f.makeVelDiffCost(f.perFoot(variables.EEWrenchAngNodes), weight), nil
	default:
		return nil, configError("Cost", name, ErrUnknownCost)
	}
}

type nodeCostFunc func(nodesID string, deriv variables.Deriv, dim variables.Dim, weight, target float64) nlp.Cost

func finalNodeCost(id string, d variables.Deriv, dim variables.Dim, w, t float64) nlp.Cost {
	return cost.NewFinalNode(id, d, dim, w, t)
}

func intermediateNodeCost(id string, d variables.Deriv, dim variables.Dim, w, t float64) nlp.Cost {
	return cost.NewIntermediateNode(id, d, dim, w, t)
}

func allNodeCost(id string, d variables.Deriv, dim variables.Dim, w, t float64) nlp.Cost {
	return cost.NewNode(id, d, dim, w, t)
}

func nodeDiffCost(id string, d variables.Deriv, dim variables.Dim, w, _ float64) nlp.Cost {
	return cost.NewNodeDifference(id, d, dim, w)
}

func zeroTarget(variables.Dim) float64 { return 0 }

func componentTarget(v r3.Vector) func(variables.Dim) float64 {
	return func(d variables.Dim) float64 { return variables.Component(v, d) }
}

// expandAxes builds one cost per node set and axis, node sets outermost.
func expandAxes(build nodeCostFunc, nodeSets []string, deriv variables.Deriv, weight r3.Vector, target func(variables.Dim) float64) nlp.Costs {
	var costs nlp.Costs
	for _, id := range nodeSets {
		for _, dim := range variables.AllDims {
			costs = append(costs, build(id, deriv, dim, variables.Component(weight, dim), target(dim)))
		}
	}
	return costs
}

func single(nodesID string) []string { return []string{nodesID} }

func (f *Formulation) perFoot(id func(ee int) string) []string {
	ids := make([]string, f.params.EECount())
	for ee := range ids {
		ids[ee] = id(ee)
	}
	return ids
}

func checkDeriv(site string, deriv variables.Deriv) error {
	if deriv != variables.Pos && deriv != variables.Vel {
		return configError(site, deriv, ErrUnknownDerivative)
	}
	return nil
}

func (f *Formulation) makeFinalBaseCost(nodesID string, final State, deriv variables.Deriv, weight r3.Vector) (nlp.Costs, error) {
	target, err := final.at(deriv)
	if err != nil {
		return nil, configError("makeFinalBaseCost", deriv, err)
	}
	return expandAxes(finalNodeCost, single(nodesID), deriv, weight, componentTarget(target)), nil
}

// makeIntermediateBaseCost pulls interior positions toward the midpoint of
// the boundary states and interior velocities toward zero.
func (f *Formulation) makeIntermediateBaseCost(nodesID string, initial, final State, deriv variables.Deriv, weight r3.Vector) (nlp.Costs, error) {
	switch deriv {
	case variables.Pos:
		mid := initial.Pos.Add(final.Pos).Mul(0.5)
		return expandAxes(intermediateNodeCost, single(nodesID), deriv, weight, componentTarget(mid)), nil
	case variables.Vel:
		return expandAxes(intermediateNodeCost, single(nodesID), deriv, weight, zeroTarget), nil
	default:
		return nil, configError("makeIntermediateBaseCost", deriv,
			errors.Wrap(ErrUnknownDerivative, nodesID))
	}
}

func (f *Formulation) makeVelDiffCost(nodeSets []string, weight r3.Vector) nlp.Costs {
	return expandAxes(nodeDiffCost, nodeSets, variables.Vel, weight, zeroTarget)
}

func (f *Formulation) makeWrenchCost(id func(ee int) string, deriv variables.Deriv, weight r3.Vector) (nlp.Costs, error) {
	if err := checkDeriv("makeWrenchCost", deriv); err != nil {
		return nil, err
	}
	return expandAxes(allNodeCost, f.perFoot(id), deriv, weight, zeroTarget), nil
}
