// Package cost holds the weighted cost descriptors of a legged-locomotion
// problem. Each descriptor penalizes one axis of one derivative of a node
// variable set.
package cost

import (
	"fmt"

	"github.com/san-kum/gaitnlp/internal/variables"
)

type nodeTerm struct {
	nodesID string
	deriv   variables.Deriv
	dim     variables.Dim
	weight  float64
}

func (n nodeTerm) Operands() []string { return []string{n.nodesID} }

func (n nodeTerm) Weight() float64 { return n.weight }

func (n nodeTerm) NodesID() string { return n.nodesID }

func (n nodeTerm) Deriv() variables.Deriv { return n.deriv }

func (n nodeTerm) Dim() variables.Dim { return n.dim }

func (n nodeTerm) label(kind string) string {
	return fmt.Sprintf("%s-%s-%s-%s", kind, n.nodesID, n.deriv, n.dim)
}

// Node pulls every node toward target.
type Node struct {
	nodeTerm
	target float64
}

func NewNode(nodesID string, deriv variables.Deriv, dim variables.Dim, weight, target float64) *Node {
	return &Node{nodeTerm: nodeTerm{nodesID, deriv, dim, weight}, target: target}
}

func (c *Node) Name() string { return c.label("node") }

func (c *Node) Target() float64 { return c.target }

// Terms is the number of squared residuals over numNodes nodes.
func (c *Node) Terms(numNodes int) int { return numNodes }

// FinalNode pulls the last node toward target.
type FinalNode struct {
	nodeTerm
	target float64
}

func NewFinalNode(nodesID string, deriv variables.Deriv, dim variables.Dim, weight, target float64) *FinalNode {
	return &FinalNode{nodeTerm: nodeTerm{nodesID, deriv, dim, weight}, target: target}
}

func (c *FinalNode) Name() string { return c.label("final-node") }

func (c *FinalNode) Target() float64 { return c.target }

func (c *FinalNode) Terms(numNodes int) int {
	if numNodes == 0 {
		return 0
	}
	return 1
}

// IntermediateNode pulls every interior node toward target.
type IntermediateNode struct {
	nodeTerm
	target float64
}

func NewIntermediateNode(nodesID string, deriv variables.Deriv, dim variables.Dim, weight, target float64) *IntermediateNode {
	return &IntermediateNode{nodeTerm: nodeTerm{nodesID, deriv, dim, weight}, target: target}
}

func (c *IntermediateNode) Name() string { return c.label("intermediate-node") }

func (c *IntermediateNode) Target() float64 { return c.target }

func (c *IntermediateNode) Terms(numNodes int) int {
	return max(numNodes-2, 0)
}

// NodeDifference penalizes the change between consecutive nodes.
type NodeDifference struct {
	nodeTerm
}

func NewNodeDifference(nodesID string, deriv variables.Deriv, dim variables.Dim, weight float64) *NodeDifference {
	return &NodeDifference{nodeTerm: nodeTerm{nodesID, deriv, dim, weight}}
}

func (c *NodeDifference) Name() string { return c.label("node-diff") }

func (c *NodeDifference) Target() float64 { return 0 }

func (c *NodeDifference) Terms(numNodes int) int {
	return max(numNodes-1, 0)
}
