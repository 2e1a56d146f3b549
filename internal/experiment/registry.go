package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/diffsim/internal/metrics"
	"github.com/san-kum/diffsim/internal/stencil"
)

type Registry struct {
	metrics map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() metrics.Metric),
	}

	r.metrics["peak"] = func() metrics.Metric { return metrics.NewPeak() }
	r.metrics["content"] = func() metrics.Metric { return metrics.NewContent() }
	r.metrics["residual"] = func() metrics.Metric { return metrics.NewResidual() }
	r.metrics["stability"] = func() metrics.Metric { return metrics.NewStability(1e-9) }

	return r
}

func (r *Registry) GetEquation(name string, p stencil.Params) (stencil.Equation, error) {
	return stencil.Lookup(name, p)
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds the named metrics; an empty list selects all of them.
func (r *Registry) Metrics(names []string) (*metrics.Set, error) {
	if len(names) == 0 {
		names = r.ListMetrics()
	}
	set := metrics.NewSet()
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		set.Add(m)
	}
	return set, nil
}

func (r *Registry) ListEquations() []string { return stencil.Equations() }

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
