package metrics

import "sort"

// Metric accumulates a scalar over the finalized slices of a run.
type Metric interface {
	Name() string
	Observe(n int, t float64, slice []float64)
	Value() float64
	Reset()
}

// Set fans solver notifications out to several metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics recorded for every run.
func Default() *Set {
	return NewSet(NewPeak(), NewContent(), NewResidual(), NewStability(1e-9))
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnSlice(n int, t float64, slice []float64) {
	for _, m := range s.metrics {
		m.Observe(n, t, slice)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
