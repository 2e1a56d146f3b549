package stencil

import (
	"math"

	"github.com/san-kum/diffsim/internal/pde"
)

// Diffusion is the explicit central-difference heat equation. C lumps the
// diffusivity with Δt/Δx².
type Diffusion struct {
	C             float64
	AllowUnstable bool
}

func (d *Diffusion) Name() string { return "diffusion" }
func (d *Diffusion) Depth() int   { return 1 }

// StabilityLimit returns the largest stable step constant, 1/(2·dim).
func StabilityLimit(dim int) float64 { return 1 / (2 * float64(dim)) }

func (d *Diffusion) Validate(l *Lattice) error {
	if math.IsNaN(d.C) || math.IsInf(d.C, 0) {
		return pde.Configf("stencil.Diffusion", "step constant must be finite, got %g", d.C)
	}
	if d.AllowUnstable {
		return nil
	}
	if limit := StabilityLimit(l.Dim()); d.C < 0 || d.C > limit {
		return pde.Configf("stencil.Diffusion", "step constant %g outside stable range [0, %g] for %d-D",
			d.C, limit, l.Dim())
	}
	return nil
}

func (d *Diffusion) Update(history [][]float64, next []float64, l *Lattice, cells []int) {
	prev := history[len(history)-1]
	center := float64(2 * len(l.Strides))
	for _, p := range cells {
		sum := 0.0
		for _, s := range l.Strides {
			sum += prev[p+s]
			sum += prev[p-s]
		}
		next[p] = d.C*(sum-center*prev[p]) + prev[p]
	}
}
