package problem

import (
	"github.com/san-kum/gaitnlp/internal/variables"
)

type SetSummary struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Bounded int    `json:"bounded"`
}

type CostSummary struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type Summary struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Robot           string        `json:"robot"`
	Terrain         string        `json:"terrain"`
	TotalTime       float64       `json:"total_time"`
	OptimizeTimings bool          `json:"optimize_timings"`
	Rows            int           `json:"rows"`
	Variables       []SetSummary  `json:"variables"`
	Constraints     []string      `json:"constraints"`
	Costs           []CostSummary `json:"costs"`
	TotalWeight     float64       `json:"total_weight"`
}

func (p *Problem) Summary() Summary {
	s := Summary{
		ID:              p.ID,
		Name:            p.Name,
		Robot:           p.RobotName,
		Terrain:         p.TerrainName,
		TotalTime:       p.Formulation.Params().TotalTime(),
		OptimizeTimings: p.Splines.OptimizeTimings,
		Rows:            p.Variables.Rows(),
		Constraints:     p.Constraints.Names(),
		TotalWeight:     p.Costs.TotalWeight(),
	}
	for _, v := range p.Variables {
		bounded := 0
		for _, b := range v.Bounds() {
			if b.IsEquality() {
				bounded++
			}
		}
		s.Variables = append(s.Variables, SetSummary{Name: v.Name(), Rows: v.Rows(), Bounded: bounded})
	}
	for _, c := range p.Costs {
		s.Costs = append(s.Costs, CostSummary{Name: c.Name(), Weight: c.Weight()})
	}
	return s
}

// NodeSeries is the initial guess of one node set over time.
type NodeSeries struct {
	Name  string
	Times []float64
	Nodes []variables.Node
}

// Series returns the base, foot motion and foot force node sets of the
// initial guess, in collection order.
func (p *Problem) Series() []NodeSeries {
	var out []NodeSeries
	for _, s := range p.Splines.Splines() {
		out = append(out, NodeSeries{Name: s.Name(), Times: s.NodeTimes(), Nodes: s.Nodes().Nodes()})
	}
	return out
}
