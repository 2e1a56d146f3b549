package stencil

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/diffsim/internal/pde"
)

var _ = Describe("Lattice", func() {
	DescribeTable("interior cells",
		func(shape []int, thickness int, want []int) {
			l := NewLattice(shape, thickness)
			Expect(l.Interior).To(Equal(want))
			Expect(l.Dim()).To(Equal(len(shape)))
		},
		Entry("1-D, no layer", []int{5}, 0, []int{1, 2, 3}),
		Entry("1-D, one layer", []int{5}, 1, []int{1, 2, 3}),
		Entry("1-D, two layers", []int{5}, 2, []int{2}),
		Entry("2-D", []int{4, 4}, 1, []int{5, 6, 9, 10}),
		Entry("3-D", []int{3, 3, 3}, 1, []int{13}),
		Entry("too small for a stencil", []int{2}, 0, []int(nil)),
	)

	It("should use row-major strides", func() {
		l := NewLattice([]int{3, 4, 5}, 1)
		Expect(l.Strides).To(Equal([]int{20, 5, 1}))
		Expect(l.Size()).To(Equal(60))
	})
})

var _ = Describe("Lookup", func() {
	It("should build diffusion", func() {
		eq, err := Lookup("diffusion", Params{StepConstant: 0.2, AllowUnstable: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(eq).To(Equal(&Diffusion{C: 0.2, AllowUnstable: true}))
		Expect(eq.Depth()).To(Equal(1))
	})

	It("should report vibration as not implemented", func() {
		_, err := Lookup("vibration", Params{})
		Expect(err).To(MatchError(pde.ErrConfiguration))
		Expect(err.Error()).To(ContainSubstring("not implemented"))
	})

	It("should reject unknown equations", func() {
		_, err := Lookup("advection", Params{})
		Expect(err).To(MatchError(pde.ErrConfiguration))
	})

	It("should list equations", func() {
		Expect(Equations()).To(Equal([]string{"diffusion", "vibration"}))
	})
})

var _ = Describe("Diffusion", func() {
	DescribeTable("stability check",
		func(c float64, dims []int, allow bool, ok bool) {
			d := &Diffusion{C: c, AllowUnstable: allow}
			err := d.Validate(NewLattice(dims, 1))
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(pde.ErrConfiguration))
			}
		},
		Entry("1-D at the limit", 0.5, []int{5}, false, true),
		Entry("1-D above the limit", 0.51, []int{5}, false, false),
		Entry("2-D above the limit", 0.3, []int{5, 5}, false, false),
		Entry("2-D above the limit, allowed", 0.3, []int{5, 5}, true, true),
		Entry("3-D below the limit", 0.15, []int{5, 5, 5}, false, true),
		Entry("3-D above the limit", 0.2, []int{5, 5, 5}, false, false),
		Entry("negative", -0.1, []int{5}, false, false),
		Entry("zero", 0.0, []int{5}, false, true),
	)

	It("should reject a non-finite constant even when instability is allowed", func() {
		d := &Diffusion{C: posInf(), AllowUnstable: true}
		Expect(d.Validate(NewLattice([]int{5}, 1))).To(MatchError(pde.ErrConfiguration))
	})
})
