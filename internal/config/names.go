package config

import (
	"fmt"
	"strings"
)

// ConstraintName enumerates the constraint kinds a problem can enable.
type ConstraintName int

const (
	Dynamic ConstraintName = iota
	EndeffectorRom
	BaseRom
	TotalTime
	Terrain
	Force
	Swing
	BaseAcc
)

var constraintNames = map[ConstraintName]string{
	Dynamic:        "dynamic",
	EndeffectorRom: "endeffector_rom",
	BaseRom:        "base_rom",
	TotalTime:      "total_time",
	Terrain:        "terrain",
	Force:          "force",
	Swing:          "swing",
	BaseAcc:        "base_acc",
}

func (c ConstraintName) String() string {
	if s, ok := constraintNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ConstraintName(%d)", int(c))
}

func (c ConstraintName) MarshalText() ([]byte, error) {
	s, ok := constraintNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown constraint: %d", int(c))
	}
	return []byte(s), nil
}

func (c *ConstraintName) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for k, s := range constraintNames {
		if s == name {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown constraint: %q", name)
}

// CostName enumerates the cost kinds a problem can enable.
type CostName int

const (
	FinalBaseLinPosCost CostName = iota
	FinalBaseLinVelCost
	FinalBaseAngPosCost
	FinalBaseAngVelCost
	IntermediateBaseLinVelCost
	IntermediateBaseAngVelCost
	BaseLinVelDiffCost
	BaseAngVelDiffCost
	WrenchLinPosCost
	WrenchLinVelCost
	WrenchAngPosCost
	WrenchAngVelCost
	WrenchLinVelDiffCost
	WrenchAngVelDiffCost
)

var costNames = map[CostName]string{
	FinalBaseLinPosCost:        "final_base_lin_pos",
	FinalBaseLinVelCost:        "final_base_lin_vel",
	FinalBaseAngPosCost:        "final_base_ang_pos",
	FinalBaseAngVelCost:        "final_base_ang_vel",
	IntermediateBaseLinVelCost: "intermediate_base_lin_vel",
	IntermediateBaseAngVelCost: "intermediate_base_ang_vel",
	BaseLinVelDiffCost:         "base_lin_vel_diff",
	BaseAngVelDiffCost:         "base_ang_vel_diff",
	WrenchLinPosCost:           "wrench_lin_pos",
	WrenchLinVelCost:           "wrench_lin_vel",
	WrenchAngPosCost:           "wrench_ang_pos",
	WrenchAngVelCost:           "wrench_ang_vel",
	WrenchLinVelDiffCost:       "wrench_lin_vel_diff",
	WrenchAngVelDiffCost:       "wrench_ang_vel_diff",
}

func (c CostName) String() string {
	if s, ok := costNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CostName(%d)", int(c))
}

func (c CostName) MarshalText() ([]byte, error) {
	s, ok := costNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown cost: %d", int(c))
	}
	return []byte(s), nil
}

func (c *CostName) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for k, s := range costNames {
		if s == name {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown cost: %q", name)
}
