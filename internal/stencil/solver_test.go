package stencil

import (
	"context"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

func posInf() float64 { return math.Inf(1) }

type setup struct {
	space *grid.Space
	clock *grid.Time
	f     *field.Field
}

func prepare(counts []int, steps int, region field.Region, thickness int) setup {
	specs := make([]grid.AxisSpec, len(counts))
	for i, n := range counts {
		specs[i] = grid.AxisSpec{Start: 0, Stop: 1, Count: n}
	}
	space, err := grid.NewSpace(grid.Dimension(len(counts)), specs...)
	Expect(err).NotTo(HaveOccurred())
	clock, err := grid.NewTime(0, steps, 0.1)
	Expect(err).NotTo(HaveOccurred())
	f, err := field.Allocate(space, clock)
	Expect(err).NotTo(HaveOccurred())
	Expect(field.ApplyInitial(f, 0, region, 1)).To(Succeed())
	f, err = field.ApplyBoundary(f, 0, thickness)
	Expect(err).NotTo(HaveOccurred())
	return setup{space: space, clock: clock, f: f}
}

var _ = Describe("Solver", func() {
	var (
		mockCtrl *gomock.Controller
		solver   *Solver
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		solver = New(&Diffusion{C: 0.5})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should march a 1-D spike", func() {
		s := prepare([]int{5}, 3, field.Region{{Start: 2, End: 3}}, 1)

		Expect(solver.Solve(context.Background(), s.f, s.space, s.clock, 1)).To(Succeed())

		Expect(s.f.Slice(0)).To(Equal([]float64{0, 0, 1, 0, 0}))
		Expect(s.f.Slice(1)).To(Equal([]float64{0, 0.5, 0, 0.5, 0}))
		Expect(s.f.Slice(2)).To(Equal([]float64{0, 0, 0.5, 0, 0}))
		Expect(s.f.Slice(3)).To(Equal([]float64{0, 0.25, 0, 0.25, 0}))
	})

	It("should notify observers of every slice in order", func() {
		s := prepare([]int{5}, 3, field.Region{{Start: 2, End: 3}}, 1)
		obs := NewMockObserver(mockCtrl)
		calls := make([]any, 0, s.clock.Len())
		for n := 0; n < s.clock.Len(); n++ {
			calls = append(calls, obs.EXPECT().OnSlice(n, s.clock.At(n), gomock.Len(5)))
		}
		gomock.InOrder(calls...)
		solver.AddObserver(obs)

		Expect(solver.Solve(context.Background(), s.f, s.space, s.clock, 1)).To(Succeed())
	})

	It("should leave the boundary layer bit-exact", func() {
		solver = New(&Diffusion{C: 0.2})
		s := prepare([]int{9, 8}, 20, field.Region{{Start: 3, End: 6}, {Start: 3, End: 5}}, 2)
		boundary, err := field.ApplyBoundary(s.f, 7.25, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(solver.Solve(context.Background(), boundary, s.space, s.clock, 2)).To(Succeed())

		shape := boundary.SpatialShape()
		for n := 0; n < boundary.Steps(); n++ {
			slice := boundary.Slice(n)
			field.Walk(shape, func(flat int, idx []int) {
				if !field.Inside(idx, shape, 2) {
					Expect(slice[flat]).To(Equal(7.25))
				}
			})
		}
	})

	It("should match a shuffled serial sweep bit for bit", func() {
		rng := rand.New(rand.NewSource(7))
		s := prepare([]int{70, 70}, 4, nil, 1)
		for i := range s.f.Slice(0) {
			s.f.Slice(0)[i] = rng.Float64()
		}
		s.f, _ = field.ApplyBoundary(s.f, 0.5, 1)
		serial := s.f.Clone()

		eq := &Diffusion{C: 0.25}
		solver = New(eq)
		solver.SetWorkers(8)
		Expect(solver.Solve(context.Background(), s.f, s.space, s.clock, 1)).To(Succeed())

		l := NewLattice(serial.SpatialShape(), 1)
		for n := 0; n < serial.Steps()-1; n++ {
			cells := append([]int(nil), l.Interior...)
			rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
			history := [][]float64{serial.Slice(n)}
			for _, p := range cells {
				eq.Update(history, serial.Slice(n+1), l, []int{p})
			}
		}

		Expect(s.f.Array().Elements).To(Equal(serial.Array().Elements))
	})

	It("should solve a 3-D cube symmetrically", func() {
		solver = New(&Diffusion{C: 1.0 / 6})
		s := prepare([]int{7, 7, 7}, 5, field.Region{{Start: 3, End: 4}, {Start: 3, End: 4}, {Start: 3, End: 4}}, 1)

		Expect(solver.Solve(context.Background(), s.f, s.space, s.clock, 1)).To(Succeed())

		Expect(s.f.At(1, 3, 3, 3)).To(BeNumerically("~", 0, 1e-15))
		Expect(s.f.At(1, 2, 3, 3)).To(BeNumerically("~", 1.0/6, 1e-15))
		last := s.f.Steps() - 1
		Expect(s.f.At(last, 2, 3, 3)).To(BeNumerically("~", s.f.At(last, 4, 3, 3), 1e-12))
		Expect(s.f.At(last, 3, 2, 3)).To(BeNumerically("~", s.f.At(last, 3, 3, 4), 1e-12))
		Expect(s.f.At(last, 2, 3, 3)).To(BeNumerically("~", s.f.At(last, 3, 3, 2), 1e-12))
	})

	It("should reject an unstable constant before marching", func() {
		solver = New(&Diffusion{C: 0.3})
		s := prepare([]int{5, 5}, 3, field.Region{{Start: 2, End: 3}, {Start: 2, End: 3}}, 1)
		before := s.f.Clone()

		err := solver.Solve(context.Background(), s.f, s.space, s.clock, 1)

		Expect(err).To(MatchError(pde.ErrConfiguration))
		Expect(s.f.Array().Elements).To(Equal(before.Array().Elements))
	})

	It("should reject missing inputs", func() {
		s := prepare([]int{5}, 3, nil, 1)
		ctx := context.Background()

		Expect(solver.Solve(ctx, nil, s.space, s.clock, 1)).To(MatchError(pde.ErrState))
		Expect(solver.Solve(ctx, s.f, nil, s.clock, 1)).To(MatchError(pde.ErrState))
		Expect(solver.Solve(ctx, s.f, s.space, nil, 1)).To(MatchError(pde.ErrState))
		Expect(New(nil).Solve(ctx, s.f, s.space, s.clock, 1)).To(MatchError(pde.ErrState))
	})

	It("should reject a field that does not match the grids", func() {
		s := prepare([]int{5}, 3, nil, 1)
		other, err := grid.NewTime(0, 4, 0.1)
		Expect(err).NotTo(HaveOccurred())

		Expect(solver.Solve(context.Background(), s.f, s.space, other, 1)).To(MatchError(pde.ErrState))
	})

	It("should reject an oversized boundary layer", func() {
		s := prepare([]int{5}, 3, nil, 1)

		Expect(solver.Solve(context.Background(), s.f, s.space, s.clock, 3)).To(MatchError(pde.ErrConfiguration))
	})

	It("should stop when the context is cancelled", func() {
		s := prepare([]int{5}, 3, field.Region{{Start: 2, End: 3}}, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := solver.Solve(ctx, s.f, s.space, s.clock, 1)

		Expect(err).To(MatchError(context.Canceled))
		Expect(s.f.Slice(1)).To(Equal([]float64{0, 0, 0, 0, 0}))
	})
})
