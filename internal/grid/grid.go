package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/san-kum/diffsim/internal/pde"
)

// Dimension is the number of spatial axes of a run.
type Dimension int

const (
	D1 Dimension = 1
	D2 Dimension = 2
	D3 Dimension = 3
)

// MaxDim is the largest supported spatial dimensionality.
const MaxDim = 3

// AxisNames labels the spatial axes in order.
var AxisNames = [MaxDim]string{"x", "y", "z"}

func (d Dimension) Valid() bool { return d >= D1 && d <= D3 }

func (d Dimension) String() string { return fmt.Sprintf("%dD", int(d)) }

// ParseDimension accepts "1", "2", "3" or the "1D" style spelling.
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "D")
	n, err := strconv.Atoi(s)
	if err != nil || !Dimension(n).Valid() {
		return 0, pde.Configf("grid.ParseDimension", "dimension %q not in {1,2,3}", s)
	}
	return Dimension(n), nil
}

// AxisSpec describes Count evenly spaced samples from Start to Stop inclusive.
type AxisSpec struct {
	Start float64 `yaml:"start" json:"start"`
	Stop  float64 `yaml:"stop" json:"stop"`
	Count int     `yaml:"count" json:"count"`
}

func (a AxisSpec) validate() error {
	if a.Count < 2 {
		return pde.Configf("grid.AxisSpec", "count must be at least 2, got %d", a.Count)
	}
	if !finite(a.Start) || !finite(a.Stop) {
		return pde.Configf("grid.AxisSpec", "bounds must be finite, got [%g, %g]", a.Start, a.Stop)
	}
	return nil
}

// Sample returns the coordinates of the axis.
func (a AxisSpec) Sample() ([]float64, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	xs := floats.Span(make([]float64, a.Count), a.Start, a.Stop)
	xs[len(xs)-1] = a.Stop
	return xs, nil
}

// Space is the ordered set of sampled spatial axes.
type Space struct {
	axes [][]float64
}

// NewSpace samples one axis per spec. The number of specs must equal dim.
func NewSpace(dim Dimension, specs ...AxisSpec) (*Space, error) {
	if !dim.Valid() {
		return nil, pde.Configf("grid.NewSpace", "dimension %d not in {1,2,3}", int(dim))
	}
	if len(specs) != int(dim) {
		return nil, pde.Configf("grid.NewSpace", "%s space needs %d axes, got %d", dim, int(dim), len(specs))
	}

	s := &Space{axes: make([][]float64, len(specs))}
	for i, spec := range specs {
		xs, err := spec.Sample()
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", AxisNames[i], err)
		}
		s.axes[i] = xs
	}
	return s, nil
}

// SpaceOf wraps already sampled coordinates, such as those read back from
// a result file. It does not validate the axis count; consumers do.
func SpaceOf(axes ...[]float64) *Space {
	s := &Space{axes: make([][]float64, len(axes))}
	for i, a := range axes {
		s.axes[i] = append([]float64(nil), a...)
	}
	return s
}

// Dim returns the number of axes.
func (s *Space) Dim() int { return len(s.axes) }

// Axis returns a copy of the coordinates of axis i.
func (s *Space) Axis(i int) []float64 {
	return append([]float64(nil), s.axes[i]...)
}

// Axes returns copies of all coordinate sequences in x, y, z order.
func (s *Space) Axes() [][]float64 {
	out := make([][]float64, len(s.axes))
	for i := range s.axes {
		out[i] = s.Axis(i)
	}
	return out
}

// Lengths returns the sample count of every axis.
func (s *Space) Lengths() []int {
	n := make([]int, len(s.axes))
	for i, a := range s.axes {
		n[i] = len(a)
	}
	return n
}

// Spacing returns the distance between consecutive samples of axis i.
func (s *Space) Spacing(i int) float64 {
	a := s.axes[i]
	if len(a) < 2 {
		return 0
	}
	return a[1] - a[0]
}

// Time is the sequence of time samples of a run.
type Time struct {
	samples []float64
	dt      float64
}

// NewTime samples steps+1 instants from start to start+dt*steps.
// The step size exposed by Dt is recomputed from the samples.
func NewTime(start float64, steps int, dt float64) (*Time, error) {
	if steps < 1 {
		return nil, pde.Configf("grid.NewTime", "steps must be at least 1, got %d", steps)
	}
	if !(dt > 0) || !finite(dt) || !finite(start) {
		return nil, pde.Configf("grid.NewTime", "need finite start and positive dt, got start=%g dt=%g", start, dt)
	}

	end := start + dt*float64(steps)
	samples := floats.Span(make([]float64, steps+1), start, end)
	samples[steps] = end
	t := &Time{samples: samples, dt: samples[1] - samples[0]}

	// Spanning loses up to a few ulps of the largest endpoint.
	mag := math.Max(math.Abs(start), math.Abs(end))
	tol := math.Max(1e-12, 4*(math.Nextafter(mag, math.Inf(1))-mag))
	if !scalar.EqualWithinAbsOrRel(t.dt, dt, tol, 1e-9) {
		panic(fmt.Sprintf("grid: derived dt %v disagrees with configured dt %v", t.dt, dt))
	}
	return t, nil
}

// TimeOf wraps already sampled instants. At least two samples are needed.
func TimeOf(samples []float64) (*Time, error) {
	if len(samples) < 2 {
		return nil, pde.Configf("grid.TimeOf", "need at least 2 time samples, got %d", len(samples))
	}
	s := append([]float64(nil), samples...)
	return &Time{samples: s, dt: s[1] - s[0]}, nil
}

// Len returns the number of time samples.
func (t *Time) Len() int { return len(t.samples) }

// Steps returns the number of time steps, Len()-1.
func (t *Time) Steps() int { return len(t.samples) - 1 }

// At returns the i-th time sample.
func (t *Time) At(i int) float64 { return t.samples[i] }

// Samples returns a copy of all time samples.
func (t *Time) Samples() []float64 { return append([]float64(nil), t.samples...) }

// Dt returns the derived step size samples[1]-samples[0].
func (t *Time) Dt() float64 { return t.dt }

// Start returns the first instant.
func (t *Time) Start() float64 { return t.samples[0] }

// End returns the last instant.
func (t *Time) End() float64 { return t.samples[len(t.samples)-1] }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
