package config

import "sort"

// Presets holds contact schedules per robot and gait.
var Presets = map[string]map[string]func() *Parameters{
	"monoped": {
		"hop": func() *Parameters {
			return withSchedule([][]float64{{0.4, 0.2, 0.4, 0.2, 0.4}}, true)
		},
	},
	"biped": {
		"walk": func() *Parameters {
			return withSchedule([][]float64{
				{0.4, 0.3, 0.6, 0.3, 0.4},
				{0.7, 0.3, 1.0},
			}, true)
		},
	},
	"anymal": {
		"trot": trot,
		"walk": walk,
	},
	"hyq": {
		"trot": trot,
		"walk": walk,
	},
}

// diagonal pairs LF+RH and RF+LH swing together
func trot() *Parameters {
	lead := []float64{0.4, 0.3, 0.3, 0.3, 0.7}
	lag := []float64{0.7, 0.3, 0.3, 0.3, 0.4}
	return withSchedule([][]float64{lead, lag, lag, lead}, true)
}

// one leg in the air at a time: LH, LF, RH, RF
func walk() *Parameters {
	p := withSchedule([][]float64{
		{0.55, 0.25, 1.2},
		{1.25, 0.25, 0.5},
		{0.2, 0.25, 1.55},
		{0.9, 0.25, 0.85},
	}, true)
	p.BoundPhaseDuration = []float64{DefaultMinPhaseDuration, 2.0}
	return p
}

func withSchedule(durations [][]float64, inContact bool) *Parameters {
	p := DefaultParameters()
	p.EEPhaseDurations = durations
	p.EEInContactAtStart = make([]bool, len(durations))
	for i := range p.EEInContactAtStart {
		p.EEInContactAtStart[i] = inContact
	}
	return p
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(robot, preset string) *Parameters {
	robotPresets, ok := Presets[robot]
	if !ok {
		return nil
	}
	build, ok := robotPresets[preset]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets(robot string) []string {
	robotPresets, ok := Presets[robot]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(robotPresets))
	for name := range robotPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
