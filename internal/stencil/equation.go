package stencil

import (
	"sort"

	"github.com/san-kum/diffsim/internal/pde"
)

// Equation is one kind of PDE the solver can march.
type Equation interface {
	Name() string

	// Depth is the number of finalized slices an update reads. The solver
	// starts marching at slice Depth()-1.
	Depth() int

	// Validate rejects parameters that cannot be marched over l. It runs
	// once, before the first sweep.
	Validate(l *Lattice) error

	// Update writes next[p] for every p in cells. history holds the last
	// Depth() slices, oldest first, and must not be modified.
	Update(history [][]float64, next []float64, l *Lattice, cells []int)
}

// Params carries the solver parameters an Equation is built from.
type Params struct {
	StepConstant  float64
	AllowUnstable bool
}

var equations = map[string]func(Params) (Equation, error){
	"diffusion": func(p Params) (Equation, error) {
		return &Diffusion{C: p.StepConstant, AllowUnstable: p.AllowUnstable}, nil
	},
	"vibration": func(Params) (Equation, error) {
		return nil, pde.Configf("stencil.Lookup", "equation vibration is not implemented")
	},
}

// Lookup builds the named equation.
func Lookup(name string, p Params) (Equation, error) {
	fn, ok := equations[name]
	if !ok {
		return nil, pde.Configf("stencil.Lookup", "unknown equation: %s", name)
	}
	return fn(p)
}

// Equations lists the registered equation names.
func Equations() []string {
	names := make([]string, 0, len(equations))
	for name := range equations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
