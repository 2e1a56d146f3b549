package field

import (
	"fmt"

	"github.com/ctessum/sparse"

	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

// Range is the half-open index range [Start, End) along one axis.
type Range struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Region holds one Range per spatial axis.
type Region []Range

func (r Region) String() string {
	s := ""
	for i, rg := range r {
		if i > 0 {
			s += ","
		}
		name := fmt.Sprintf("axis%d", i)
		if i < grid.MaxDim {
			name = grid.AxisNames[i]
		}
		s += fmt.Sprintf("%s[%d:%d)", name, rg.Start, rg.End)
	}
	return s
}

// Contains reports whether idx lies inside every range of r.
func (r Region) Contains(idx []int) bool {
	for d, rg := range r {
		if idx[d] < rg.Start || idx[d] >= rg.End {
			return false
		}
	}
	return true
}

func (r Region) validate(shape []int) error {
	if len(r) != len(shape) {
		return pde.Configf("field.ApplyInitial", "region has %d ranges for %d axes", len(r), len(shape))
	}
	for d, rg := range r {
		if rg.Start < 0 || rg.End > shape[d] || rg.Start > rg.End {
			return pde.Configf("field.ApplyInitial", "range %s[%d:%d) outside axis of length %d",
				grid.AxisNames[d], rg.Start, rg.End, shape[d])
		}
	}
	return nil
}

// ApplyInitial fills time slice 0 with general and then overwrites region
// with specific. A nil region overrides nothing. The region is validated
// before any value is written.
func ApplyInitial(f *Field, general float64, region Region, specific float64) error {
	if f == nil || f.data == nil {
		return pde.Statef("field.ApplyInitial", "field is not allocated")
	}
	if region != nil {
		if err := region.validate(f.spatial); err != nil {
			return err
		}
	}

	s := f.Slice(0)
	for i := range s {
		s[i] = general
	}
	if region == nil {
		return nil
	}

	Walk(f.spatial, func(flat int, idx []int) {
		if region.Contains(idx) {
			s[flat] = specific
		}
	})
	return nil
}

// CheckThickness validates a boundary layer of t cells against shape.
func CheckThickness(shape []int, t int) error {
	if t < 0 {
		return pde.Configf("field.ApplyBoundary", "thickness must be non-negative, got %d", t)
	}
	for d, n := range shape {
		if 2*t >= n {
			return pde.Configf("field.ApplyBoundary", "thickness %d leaves no interior on axis %s of length %d",
				t, grid.AxisNames[d], n)
		}
	}
	return nil
}

// ApplyBoundary returns a new field in which every cell within thickness
// of a spatial face holds value at every time slice, and every other cell
// holds the input's value at the same slice. f is left untouched.
func ApplyBoundary(f *Field, value float64, thickness int) (*Field, error) {
	if f == nil || f.data == nil {
		return nil, pde.Statef("field.ApplyBoundary", "field is not allocated")
	}
	if err := CheckThickness(f.spatial, thickness); err != nil {
		return nil, err
	}

	interior := make([]bool, f.size)
	Walk(f.spatial, func(flat int, idx []int) {
		interior[flat] = Inside(idx, f.spatial, thickness)
	})

	out := newField(sparse.ZerosDense(f.data.Shape...))
	for n := 0; n < f.Steps(); n++ {
		src, dst := f.Slice(n), out.Slice(n)
		for p := range dst {
			if interior[p] {
				dst[p] = src[p]
			} else {
				dst[p] = value
			}
		}
	}
	return out, nil
}
