package field_test

import (
	"github.com/ctessum/sparse"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

func mustSpace(counts ...int) *grid.Space {
	specs := make([]grid.AxisSpec, len(counts))
	for i, n := range counts {
		specs[i] = grid.AxisSpec{Start: 0, Stop: 1, Count: n}
	}
	s, err := grid.NewSpace(grid.Dimension(len(counts)), specs...)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func mustTime(steps int) *grid.Time {
	t, err := grid.NewTime(0, steps, 0.1)
	Expect(err).NotTo(HaveOccurred())
	return t
}

var _ = Describe("Allocate", func() {
	DescribeTable("shapes the field after the grids",
		func(counts []int) {
			clock := mustTime(3)
			f, err := field.Allocate(mustSpace(counts...), clock)
			Expect(err).NotTo(HaveOccurred())

			Expect(f.Shape()).To(Equal(append([]int{clock.Len()}, counts...)))
			Expect(f.Dim()).To(Equal(len(counts)))
			Expect(f.Steps()).To(Equal(4))
			Expect(f.Array().Elements).To(HaveLen(4 * field.Volume(counts)))
			for _, v := range f.Array().Elements {
				Expect(v).To(BeZero())
			}
		},
		Entry("1-D", []int{5}),
		Entry("2-D", []int{4, 6}),
		Entry("3-D", []int{3, 4, 5}),
	)

	It("rejects a space without axes", func() {
		f, err := field.Allocate(grid.SpaceOf(), mustTime(3))
		Expect(err).To(MatchError(pde.ErrConfiguration))
		Expect(f).To(BeNil())
	})

	It("rejects a space with four axes", func() {
		a := []float64{0, 1, 2}
		f, err := field.Allocate(grid.SpaceOf(a, a, a, a), mustTime(3))
		Expect(err).To(MatchError(pde.ErrConfiguration))
		Expect(f).To(BeNil())
	})

	It("reports missing grids as a state error", func() {
		_, err := field.Allocate(nil, mustTime(3))
		Expect(err).To(MatchError(pde.ErrState))
	})
})

var _ = Describe("Field", func() {
	var f *field.Field

	BeforeEach(func() {
		var err error
		f, err = field.Allocate(mustSpace(3, 4), mustTime(2))
		Expect(err).NotTo(HaveOccurred())
	})

	It("addresses cells row-major with time slowest", func() {
		f.Set(7, 1, 2, 3)
		Expect(f.At(1, 2, 3)).To(Equal(7.0))
		Expect(f.Slice(1)[2*4+3]).To(Equal(7.0))
		Expect(f.Array().Elements[12+2*4+3]).To(Equal(7.0))
		Expect(f.SpatialStrides()).To(Equal([]int{4, 1}))
	})

	It("exposes slices as views", func() {
		f.Slice(2)[0] = 3
		Expect(f.At(2, 0, 0)).To(Equal(3.0))
	})

	It("clones deeply", func() {
		f.Set(1, 0, 1, 1)
		c := f.Clone()
		c.Set(5, 0, 1, 1)
		Expect(f.At(0, 1, 1)).To(Equal(1.0))
		Expect(c.Shape()).To(Equal(f.Shape()))
	})

	It("matches its grids", func() {
		Expect(f.Matches(mustSpace(3, 4), mustTime(2))).To(BeTrue())
		Expect(f.Matches(mustSpace(3, 5), mustTime(2))).To(BeFalse())
		Expect(f.Matches(mustSpace(3, 4), mustTime(3))).To(BeFalse())
	})
})

var _ = Describe("FromArray", func() {
	It("wraps a consistent array", func() {
		a := sparse.ZerosDense(2, 3)
		a.Elements[4] = 9
		f, err := field.FromArray(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.At(1, 1)).To(Equal(9.0))
	})

	It("rejects an array without spatial axes", func() {
		_, err := field.FromArray(sparse.ZerosDense(4))
		Expect(err).To(MatchError(pde.ErrConfiguration))
	})
})

var _ = Describe("Walk", func() {
	It("visits every index in row-major order", func() {
		var flats []int
		var last []int
		field.Walk([]int{2, 3}, func(flat int, idx []int) {
			flats = append(flats, flat)
			last = append([]int(nil), idx...)
		})
		Expect(flats).To(Equal([]int{0, 1, 2, 3, 4, 5}))
		Expect(last).To(Equal([]int{1, 2}))
	})
})
