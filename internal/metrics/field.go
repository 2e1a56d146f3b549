package metrics

import (
	"math"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/floats"
)

// Peak is the largest value of the most recent slice.
type Peak struct {
	name  string
	value float64
	seen  bool
}

func NewPeak() *Peak { return &Peak{name: "peak"} }

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(n int, t float64, slice []float64) {
	if len(slice) == 0 {
		return
	}
	p.value = floats.Max(slice)
	p.seen = true
}

func (p *Peak) Value() float64 {
	if !p.seen {
		return 0
	}
	return p.value
}

func (p *Peak) Reset() { p.value, p.seen = 0, false }

// Content is the sum over the most recent slice, the discrete analogue of
// the total heat held by the domain.
type Content struct {
	name  string
	value float64
}

func NewContent() *Content { return &Content{name: "content"} }

func (c *Content) Name() string { return c.name }

func (c *Content) Observe(n int, t float64, slice []float64) {
	c.value = floats.Sum(slice)
}

func (c *Content) Value() float64 { return c.value }
func (c *Content) Reset()         { c.value = 0 }

// Residual is the largest absolute change between the last two slices.
// It approaches zero as the field settles.
type Residual struct {
	name  string
	prev  []float64
	value float64
}

func NewResidual() *Residual { return &Residual{name: "residual"} }

func (r *Residual) Name() string { return r.name }

func (r *Residual) Observe(n int, t float64, slice []float64) {
	if len(r.prev) == len(slice) && len(slice) > 0 {
		prev := r.prev
		r.value = parallel.RangeReduceFloat64(
			0, len(slice), 0,
			func(low, high int) (result float64) {
				for i := low; i < high; i++ {
					result = math.Max(result, math.Abs(slice[i]-prev[i]))
				}
				return
			},
			math.Max,
		)
	}
	r.prev = append(r.prev[:0], slice...)
}

func (r *Residual) Value() float64 { return r.value }

func (r *Residual) Reset() {
	r.prev = r.prev[:0]
	r.value = 0
}
