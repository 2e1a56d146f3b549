package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
	"github.com/san-kum/diffsim/internal/stencil"
)

const (
	DefaultEquation     = "diffusion"
	DefaultDimension    = 2
	DefaultCount        = 60
	DefaultSteps        = 100
	DefaultDt           = 0.1
	DefaultStepConstant = 0.03
	DefaultThickness    = 1
)

type Config struct {
	Equation  string         `yaml:"equation"`
	Dimension int            `yaml:"dimension"`
	Space     SpaceConfig    `yaml:"space"`
	Time      TimeConfig     `yaml:"time"`
	Initial   InitialConfig  `yaml:"initial"`
	Boundary  BoundaryConfig `yaml:"boundary"`
	Solver    SolverConfig   `yaml:"solver"`
	Metrics   []string       `yaml:"metrics,omitempty"`
}

type SpaceConfig struct {
	X grid.AxisSpec `yaml:"x"`
	Y grid.AxisSpec `yaml:"y"`
	Z grid.AxisSpec `yaml:"z"`
}

type TimeConfig struct {
	Start float64 `yaml:"start"`
	Steps int     `yaml:"steps"`
	Dt    float64 `yaml:"dt"`
}

// InitialConfig maps axis names to [start, end) index ranges. Axes left
// out of Region span their whole length; an empty Region overrides
// nothing.
type InitialConfig struct {
	General  float64          `yaml:"general"`
	Specific float64          `yaml:"specific"`
	Region   map[string][]int `yaml:"region,omitempty"`
}

type BoundaryConfig struct {
	Value     float64 `yaml:"value"`
	Thickness int     `yaml:"thickness"`
}

type SolverConfig struct {
	StepConstant  float64 `yaml:"step_constant"`
	Workers       int     `yaml:"workers"`
	AllowUnstable bool    `yaml:"allow_unstable"`
}

func DefaultConfig() *Config {
	axis := grid.AxisSpec{Start: 0, Stop: 1, Count: DefaultCount}
	return &Config{
		Equation:  DefaultEquation,
		Dimension: DefaultDimension,
		Space:     SpaceConfig{X: axis, Y: axis, Z: axis},
		Time:      TimeConfig{Start: 0, Steps: DefaultSteps, Dt: DefaultDt},
		Boundary:  BoundaryConfig{Thickness: DefaultThickness},
		Solver:    SolverConfig{StepConstant: DefaultStepConstant},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pde.IOError("config.Load", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pde.Configf("config.Load", "%s: %v", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return pde.IOError("config.Save", path, err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Initial.Region != nil {
		out.Initial.Region = make(map[string][]int, len(c.Initial.Region))
		for k, v := range c.Initial.Region {
			out.Initial.Region[k] = append([]int(nil), v...)
		}
	}
	out.Metrics = append([]string(nil), c.Metrics...)
	return &out
}

func (c *Config) axes() []grid.AxisSpec {
	return []grid.AxisSpec{c.Space.X, c.Space.Y, c.Space.Z}
}

// Validate checks what can be checked without building the grids. The
// remaining checks happen in experiment.Setup.
func (c *Config) Validate() error {
	const op = "config.Validate"
	if c.Dimension < 1 || c.Dimension > grid.MaxDim {
		return pde.Configf(op, "dimension must be 1, 2 or 3, got %d", c.Dimension)
	}
	if _, err := stencil.Lookup(c.Equation, stencil.Params{AllowUnstable: true}); err != nil {
		return err
	}
	for name, r := range c.Initial.Region {
		i := axisIndex(name)
		if i < 0 || i >= c.Dimension {
			return pde.Configf(op, "region axis %q not in a %dD space", name, c.Dimension)
		}
		if len(r) != 2 {
			return pde.Configf(op, "region axis %s needs [start, end], got %v", name, r)
		}
	}
	if c.Solver.Workers < 0 {
		return pde.Configf(op, "workers must not be negative, got %d", c.Solver.Workers)
	}
	return nil
}

func axisIndex(name string) int {
	for i, n := range grid.AxisNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Region converts the configured ranges to index ranges over the first
// Dimension axes.
func (c *Config) Region() field.Region {
	if len(c.Initial.Region) == 0 {
		return nil
	}
	axes := c.axes()
	region := make(field.Region, c.Dimension)
	for i := range region {
		region[i] = field.Range{Start: 0, End: axes[i].Count}
		if r, ok := c.Initial.Region[grid.AxisNames[i]]; ok && len(r) == 2 {
			region[i] = field.Range{Start: r[0], End: r[1]}
		}
	}
	return region
}

// Experiment converts the file representation to the solver configuration.
func (c *Config) Experiment() (experiment.Config, error) {
	if err := c.Validate(); err != nil {
		return experiment.Config{}, err
	}
	return experiment.Config{
		Equation:      c.Equation,
		Dimension:     grid.Dimension(c.Dimension),
		Axes:          c.axes()[:c.Dimension],
		TimeStart:     c.Time.Start,
		Steps:         c.Time.Steps,
		Dt:            c.Time.Dt,
		General:       c.Initial.General,
		Specific:      c.Initial.Specific,
		Region:        c.Region(),
		BoundaryValue: c.Boundary.Value,
		Thickness:     c.Boundary.Thickness,
		StepConstant:  c.Solver.StepConstant,
		Workers:       c.Solver.Workers,
		AllowUnstable: c.Solver.AllowUnstable,
		Metrics:       append([]string(nil), c.Metrics...),
	}, nil
}

// Summary is a one-line description used in listings.
func (c *Config) Summary() string {
	axes := c.axes()[:max(1, min(c.Dimension, grid.MaxDim))]
	counts := make([]int, len(axes))
	for i, a := range axes {
		counts[i] = a.Count
	}
	return fmt.Sprintf("%s %dD %v steps=%d dt=%g c=%g", c.Equation, c.Dimension, counts, c.Time.Steps, c.Time.Dt, c.Solver.StepConstant)
}
