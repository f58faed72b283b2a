package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/gaitnlp/internal/nlp"
	"github.com/san-kum/gaitnlp/internal/variables"
)

var (
	_ nlp.Cost = (*Node)(nil)
	_ nlp.Cost = (*FinalNode)(nil)
	_ nlp.Cost = (*IntermediateNode)(nil)
	_ nlp.Cost = (*NodeDifference)(nil)
)

func TestNames(t *testing.T) {
	assert.Equal(t, "final-node-base-lin-pos-x", NewFinalNode(variables.BaseLinNodes, variables.Pos, variables.X, 1, 2).Name())
	assert.Equal(t, "node-ee-wrench-lin_1-vel-z", NewNode(variables.EEWrenchLinNodes(1), variables.Vel, variables.Z, 1, 0).Name())
	assert.Equal(t, "intermediate-node-base-ang-vel-y", NewIntermediateNode(variables.BaseAngNodes, variables.Vel, variables.Y, 1, 0).Name())
	assert.Equal(t, "node-diff-base-lin-vel-x", NewNodeDifference(variables.BaseLinNodes, variables.Vel, variables.X, 1).Name())
}

func TestTerms(t *testing.T) {
	assert.Equal(t, 5, NewNode("a", variables.Pos, variables.X, 1, 0).Terms(5))
	assert.Equal(t, 1, NewFinalNode("a", variables.Pos, variables.X, 1, 0).Terms(5))
	assert.Equal(t, 0, NewFinalNode("a", variables.Pos, variables.X, 1, 0).Terms(0))
	assert.Equal(t, 3, NewIntermediateNode("a", variables.Pos, variables.X, 1, 0).Terms(5))
	assert.Equal(t, 0, NewIntermediateNode("a", variables.Pos, variables.X, 1, 0).Terms(1))
	assert.Equal(t, 4, NewNodeDifference("a", variables.Vel, variables.X, 1).Terms(5))
}

func TestAccessors(t *testing.T) {
	c := NewFinalNode(variables.BaseAngNodes, variables.Vel, variables.Z, 10, 0.5)

	assert.Equal(t, []string{variables.BaseAngNodes}, c.Operands())
	assert.Equal(t, 10.0, c.Weight())
	assert.Equal(t, 0.5, c.Target())
	assert.Equal(t, variables.Vel, c.Deriv())
	assert.Equal(t, variables.Z, c.Dim())
	assert.Equal(t, variables.BaseAngNodes, c.NodesID())
}
