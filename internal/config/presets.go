package config

import (
	"sort"

	"github.com/san-kum/diffsim/internal/grid"
)

func axis(n int) grid.AxisSpec { return grid.AxisSpec{Start: 0, Stop: 1, Count: n} }

var Presets = map[string]*Config{
	"pulse": {
		Equation: "diffusion", Dimension: 1,
		Space:    SpaceConfig{X: axis(5)},
		Time:     TimeConfig{Steps: 3, Dt: 0.1},
		Initial:  InitialConfig{Specific: 1, Region: map[string][]int{"x": {2, 3}}},
		Boundary: BoundaryConfig{Thickness: 1},
		Solver:   SolverConfig{StepConstant: 0.5},
	},
	"rod": {
		Equation: "diffusion", Dimension: 1,
		Space:    SpaceConfig{X: axis(100)},
		Time:     TimeConfig{Steps: 500, Dt: 0.1},
		Initial:  InitialConfig{Specific: 100, Region: map[string][]int{"x": {45, 55}}},
		Boundary: BoundaryConfig{Thickness: 1},
		Solver:   SolverConfig{StepConstant: 0.4},
	},
	"plate": {
		Equation: "diffusion", Dimension: 2,
		Space:    SpaceConfig{X: axis(60), Y: axis(60)},
		Time:     TimeConfig{Steps: 60, Dt: 0.1},
		Initial:  InitialConfig{Specific: 40, Region: map[string][]int{"x": {44, 46}, "y": {10, 15}}},
		Boundary: BoundaryConfig{Thickness: 1},
		Solver:   SolverConfig{StepConstant: 0.03},
	},
	"hotspot": {
		Equation: "diffusion", Dimension: 2,
		Space:    SpaceConfig{X: axis(80), Y: axis(80)},
		Time:     TimeConfig{Steps: 400, Dt: 0.1},
		Initial:  InitialConfig{Specific: 100, Region: map[string][]int{"x": {35, 45}, "y": {35, 45}}},
		Boundary: BoundaryConfig{Thickness: 1},
		Solver:   SolverConfig{StepConstant: 0.2},
	},
	"cube": {
		Equation: "diffusion", Dimension: 3,
		Space:    SpaceConfig{X: axis(30), Y: axis(30), Z: axis(30)},
		Time:     TimeConfig{Steps: 200, Dt: 0.1},
		Initial:  InitialConfig{Specific: 4, Region: map[string][]int{"x": {7, 13}, "y": {5, 10}, "z": {5, 10}}},
		Boundary: BoundaryConfig{Thickness: 1},
		Solver:   SolverConfig{StepConstant: 0.03},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
