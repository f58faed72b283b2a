package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Task is the YAML form of a locomotion task. Base states are
// [x, y, z, vx, vy, vz] for the linear part and
// [roll, pitch, yaw, wx, wy, wz] for the angular part.
type Task struct {
	Robot              string      `yaml:"robot"`
	Terrain            string      `yaml:"terrain"`
	InitialBaseLin     []float64   `yaml:"initial_base_lin"`
	InitialBaseAng     []float64   `yaml:"initial_base_ang"`
	FinalBaseLin       []float64   `yaml:"final_base_lin"`
	FinalBaseAng       []float64   `yaml:"final_base_ang"`
	InitialEEMotionLin [][]float64 `yaml:"initial_ee_motion_lin"`
}

func LoadTask(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Task
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func SaveTask(path string, t *Task) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
