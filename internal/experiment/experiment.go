package experiment

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/metrics"
	"github.com/san-kum/diffsim/internal/pde"
	"github.com/san-kum/diffsim/internal/stencil"
)

type Config struct {
	Equation  string
	Dimension grid.Dimension
	Axes      []grid.AxisSpec

	TimeStart float64
	Steps     int
	Dt        float64

	General  float64
	Specific float64
	Region   field.Region

	BoundaryValue float64
	Thickness     int

	StepConstant  float64
	Workers       int
	AllowUnstable bool
	Metrics       []string
}

// Result is a finished run. Field is owned by the caller.
type Result struct {
	Field   *field.Field
	Space   *grid.Space
	Time    *grid.Time
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg      Config
	registry *Registry
	logger   *log.Logger

	space   *grid.Space
	clock   *grid.Time
	initial *field.Field
	solver  *stencil.Solver
	metrics *metrics.Set
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   log.New(io.Discard, "", 0),
	}
}

func (e *Experiment) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.logger = l
	if e.solver != nil {
		e.solver.SetLogger(l)
	}
}

// Setup builds the grids and the initial field and checks the solver
// parameters. Every configuration error surfaces here, before any sweep.
func (e *Experiment) Setup() error {
	const op = "experiment.Setup"
	cfg := e.cfg

	if !cfg.Dimension.Valid() {
		return pde.Configf(op, "dimension %d not supported", int(cfg.Dimension))
	}
	if len(cfg.Axes) < int(cfg.Dimension) {
		return pde.Configf(op, "%s needs %d axes, got %d", cfg.Dimension, int(cfg.Dimension), len(cfg.Axes))
	}
	space, err := grid.NewSpace(cfg.Dimension, cfg.Axes[:cfg.Dimension]...)
	if err != nil {
		return err
	}
	clock, err := grid.NewTime(cfg.TimeStart, cfg.Steps, cfg.Dt)
	if err != nil {
		return err
	}

	if err := field.CheckThickness(space.Lengths(), cfg.Thickness); err != nil {
		return err
	}
	eq, err := e.registry.GetEquation(cfg.Equation, stencil.Params{
		StepConstant:  cfg.StepConstant,
		AllowUnstable: cfg.AllowUnstable,
	})
	if err != nil {
		return err
	}
	if err := eq.Validate(stencil.NewLattice(space.Lengths(), cfg.Thickness)); err != nil {
		return err
	}
	set, err := e.registry.Metrics(cfg.Metrics)
	if err != nil {
		return pde.Configf(op, "%v", err)
	}

	f, err := field.Allocate(space, clock)
	if err != nil {
		return err
	}
	if err := field.ApplyInitial(f, cfg.General, cfg.Region, cfg.Specific); err != nil {
		return err
	}
	f, err = field.ApplyBoundary(f, cfg.BoundaryValue, cfg.Thickness)
	if err != nil {
		return err
	}

	e.space, e.clock, e.initial, e.metrics = space, clock, f, set
	e.solver = stencil.New(eq)
	e.solver.SetWorkers(cfg.Workers)
	e.solver.SetLogger(e.logger)
	e.solver.AddObserver(set)

	e.logger.Printf("%s: %s %s, shape %v, dt %g, %d steps",
		op, eq.Name(), cfg.Dimension, f.Shape(), clock.Dt(), clock.Steps())
	return nil
}

// Run marches a copy of the prepared field, so an experiment can be run
// more than once.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.solver == nil {
		return nil, pde.Statef("experiment.Run", "experiment not setup")
	}

	f := e.initial.Clone()
	e.metrics.Reset()

	start := time.Now()
	if err := e.solver.Solve(ctx, f, e.space, e.clock, e.cfg.Thickness); err != nil {
		return nil, err
	}

	return &Result{
		Field:   f,
		Space:   e.space,
		Time:    e.clock,
		Metrics: e.metrics.Values(),
		Elapsed: time.Since(start),
	}, nil
}

func (e *Experiment) Config() Config { return e.cfg }

// GetSolver returns the underlying solver for adding observers.
func (e *Experiment) GetSolver() *stencil.Solver {
	return e.solver
}
