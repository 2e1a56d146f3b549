package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/pde"
)

var _ = Describe("ApplyInitial", func() {
	It("fills slice 0 and overrides the region", func() {
		f, err := field.Allocate(mustSpace(5), mustTime(3))
		Expect(err).NotTo(HaveOccurred())

		Expect(field.ApplyInitial(f, 0.5, field.Region{{Start: 2, End: 3}}, 1)).To(Succeed())
		Expect(f.Slice(0)).To(Equal([]float64{0.5, 0.5, 1, 0.5, 0.5}))
		for n := 1; n < f.Steps(); n++ {
			Expect(f.Slice(n)).To(Equal(make([]float64, 5)), "only slice 0 is initialized")
		}
	})

	It("overrides a 2-D block", func() {
		f, err := field.Allocate(mustSpace(4, 5), mustTime(1))
		Expect(err).NotTo(HaveOccurred())

		Expect(field.ApplyInitial(f, 0, field.Region{{1, 3}, {2, 4}}, 40)).To(Succeed())
		count := 0
		for i := 0; i < 4; i++ {
			for j := 0; j < 5; j++ {
				if f.At(0, i, j) == 40 {
					count++
					Expect(i).To(BeNumerically(">=", 1))
					Expect(i).To(BeNumerically("<", 3))
					Expect(j).To(BeNumerically(">=", 2))
					Expect(j).To(BeNumerically("<", 4))
				}
			}
		}
		Expect(count).To(Equal(4))
	})

	It("accepts a nil region", func() {
		f, _ := field.Allocate(mustSpace(3, 3), mustTime(1))
		Expect(field.ApplyInitial(f, 2, nil, 9)).To(Succeed())
		Expect(f.Slice(0)).To(HaveEach(2.0))
	})

	DescribeTable("rejects bad regions without writing",
		func(region field.Region) {
			f, _ := field.Allocate(mustSpace(5, 5), mustTime(1))
			err := field.ApplyInitial(f, 3, region, 1)
			Expect(err).To(MatchError(pde.ErrConfiguration))
			Expect(f.Slice(0)).To(HaveEach(0.0))
		},
		Entry("past the end", field.Region{{0, 6}, {0, 1}}),
		Entry("negative start", field.Region{{-1, 2}, {0, 1}}),
		Entry("inverted", field.Region{{3, 2}, {0, 1}}),
		Entry("wrong arity", field.Region{{0, 1}}),
	)

	It("reports an unallocated field", func() {
		Expect(field.ApplyInitial(nil, 0, nil, 1)).To(MatchError(pde.ErrState))
	})
})

var _ = Describe("ApplyBoundary", func() {
	It("holds the halo at the constant on every slice", func() {
		f, _ := field.Allocate(mustSpace(6, 7), mustTime(2))
		for i := range f.Array().Elements {
			f.Array().Elements[i] = float64(i)
		}

		out, err := field.ApplyBoundary(f, -1, 2)
		Expect(err).NotTo(HaveOccurred())

		for n := 0; n < out.Steps(); n++ {
			for i := 0; i < 6; i++ {
				for j := 0; j < 7; j++ {
					inner := i >= 2 && i < 4 && j >= 2 && j < 5
					if inner {
						Expect(out.At(n, i, j)).To(Equal(f.At(n, i, j)))
					} else {
						Expect(out.At(n, i, j)).To(Equal(-1.0))
					}
				}
			}
		}
	})

	It("returns a new field and leaves the input alone", func() {
		f, _ := field.Allocate(mustSpace(5), mustTime(1))
		Expect(field.ApplyInitial(f, 1, nil, 0)).To(Succeed())
		before := f.Clone()

		out, err := field.ApplyBoundary(f, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(BeIdenticalTo(f))
		Expect(f.Array().Elements).To(Equal(before.Array().Elements))

		out.Slice(0)[2] = 42
		Expect(f.Slice(0)[2]).To(Equal(1.0))
	})

	It("copies everything when thickness is zero", func() {
		f, _ := field.Allocate(mustSpace(3, 3, 3), mustTime(1))
		Expect(field.ApplyInitial(f, 4, nil, 0)).To(Succeed())
		out, err := field.ApplyBoundary(f, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Array().Elements).To(Equal(f.Array().Elements))
	})

	It("rejects thickness 3 on an axis of length 5 before touching anything", func() {
		f, _ := field.Allocate(mustSpace(5), mustTime(3))
		Expect(field.ApplyInitial(f, 0, field.Region{{2, 3}}, 1)).To(Succeed())
		before := f.Clone()

		out, err := field.ApplyBoundary(f, 0, 3)
		Expect(err).To(MatchError(pde.ErrConfiguration))
		Expect(out).To(BeNil())
		Expect(f.Array().Elements).To(Equal(before.Array().Elements))
	})

	It("rejects negative thickness", func() {
		f, _ := field.Allocate(mustSpace(5), mustTime(1))
		_, err := field.ApplyBoundary(f, 0, -1)
		Expect(err).To(MatchError(pde.ErrConfiguration))
	})
})
