package config

import "sort"

func seed(v int64) *int64 { return &v }

// Presets are ready-made pipelines. The reference preset mirrors the
// published setup: 450 points on a 30×30 grid and a 2/3 training split.
var Presets = map[string]*Config{
	"reference": {
		Resolution: 30, Points: 450, TrainFraction: 2.0 / 3.0,
		Multipliers: map[string]int{"standard": 1, "devogelaere": 1, "web": 7},
		Seed:        seed(42), LogLevel: "info",
	},
	"quick": {
		Resolution: 10, Points: 50, TrainFraction: 0.75,
		Multipliers: map[string]int{"standard": 1, "devogelaere": 1, "web": 7},
		Seed:        seed(1), LogLevel: "debug",
	},
	"hires": {
		Resolution: 60, Points: 1800, TrainFraction: 2.0 / 3.0,
		Multipliers: map[string]int{"standard": 1, "devogelaere": 1, "web": 7},
		Parallel:    true, LogLevel: "info",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
