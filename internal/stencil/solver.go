package stencil

import (
	"context"
	"io"
	"log"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

// minBatch is the smallest number of cells worth handing to a goroutine.
const minBatch = 1024

type Solver struct {
	eq        Equation
	workers   int
	logger    *log.Logger
	observers []Observer
}

func New(eq Equation) *Solver {
	return &Solver{
		eq:        eq,
		logger:    log.New(io.Discard, "", 0),
		observers: make([]Observer, 0),
	}
}

func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetWorkers caps the number of concurrent batches per sweep. Zero uses
// GOMAXPROCS, one runs every sweep on the calling goroutine.
func (s *Solver) SetWorkers(n int) { s.workers = n }

func (s *Solver) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

func (s *Solver) Equation() Equation { return s.eq }

// Solve marches f forward in place. Slices below Equation.Depth must
// already hold the initial state and every slice must already carry its
// boundary layer; only interior cells of later slices are written.
func (s *Solver) Solve(ctx context.Context, f *field.Field, space *grid.Space, clock *grid.Time, thickness int) error {
	const op = "stencil.Solve"
	if s.eq == nil {
		return pde.Statef(op, "no equation set")
	}
	if f == nil || space == nil || clock == nil {
		return pde.Statef(op, "field, space and time grids must be set")
	}
	if !f.Matches(space, clock) {
		return pde.Statef(op, "field shape %v does not match grids", f.Shape())
	}
	shape := f.SpatialShape()
	if err := field.CheckThickness(shape, thickness); err != nil {
		return err
	}

	l := NewLattice(shape, thickness)
	if err := s.eq.Validate(l); err != nil {
		return err
	}
	depth := s.eq.Depth()
	if f.Steps() < depth {
		return pde.Statef(op, "%d time slices, %s needs at least %d", f.Steps(), s.eq.Name(), depth)
	}

	s.logger.Printf("%s: %s over %v, %d interior cells, %d sweeps",
		op, s.eq.Name(), shape, len(l.Interior), f.Steps()-depth)

	for n := 0; n < depth; n++ {
		s.notify(n, clock.At(n), f.Slice(n))
	}

	history := make([][]float64, depth)
	every := progressInterval(f.Steps())
	for n := depth - 1; n < f.Steps()-1; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for k := range history {
			history[k] = f.Slice(n - depth + 1 + k)
		}
		next := f.Slice(n + 1)
		pde.ParallelFor(len(l.Interior), minBatch, s.workers, func(start, end int) {
			s.eq.Update(history, next, l, l.Interior[start:end])
		})

		s.notify(n+1, clock.At(n+1), next)
		if (n+1)%every == 0 {
			s.logger.Printf("%s: slice %d/%d t=%g", op, n+1, f.Steps()-1, clock.At(n+1))
		}
	}
	return nil
}

func (s *Solver) notify(n int, t float64, slice []float64) {
	for _, o := range s.observers {
		o.OnSlice(n, t, slice)
	}
}

func progressInterval(steps int) int {
	if steps < 10 {
		return 1
	}
	return steps / 10
}
