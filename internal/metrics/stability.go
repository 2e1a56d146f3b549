package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stability checks the discrete maximum principle: a stable diffusion run
// never leaves the value range of its first slice and never produces NaN
// or Inf. Value is the fraction of slices that passed.
type Stability struct {
	name       string
	tolerance  float64
	lo, hi     float64
	violations int
	samples    int
}

func NewStability(tolerance float64) *Stability {
	return &Stability{
		name:      "stability",
		tolerance: tolerance,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(n int, t float64, slice []float64) {
	if len(slice) == 0 {
		return
	}
	if s.samples == 0 {
		s.lo, s.hi = floats.Min(slice), floats.Max(slice)
	}
	s.samples++
	if floats.HasNaN(slice) {
		s.violations++
		return
	}
	slack := s.tolerance * math.Max(1, s.hi-s.lo)
	for _, v := range slice {
		if math.IsInf(v, 0) || v < s.lo-slack || v > s.hi+slack {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// Violations returns the number of slices that broke the bounds.
func (s *Stability) Violations() int { return s.violations }

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.lo, s.hi = 0, 0
}
