package field

import (
	"github.com/ctessum/sparse"

	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

// Field is the simulated scalar over every (time, space) sample.
type Field struct {
	data    *sparse.DenseArray
	spatial []int
	strides []int
	size    int
}

// Allocate returns a zero field shaped after the given grids.
func Allocate(space *grid.Space, clock *grid.Time) (*Field, error) {
	if space == nil || clock == nil {
		return nil, pde.Statef("field.Allocate", "space and time grids must be set")
	}
	if d := space.Dim(); d < 1 || d > grid.MaxDim {
		return nil, pde.Configf("field.Allocate", "space has %d axes, want 1 to %d", d, grid.MaxDim)
	}
	shape := append([]int{clock.Len()}, space.Lengths()...)
	return newField(sparse.ZerosDense(shape...)), nil
}

// FromArray wraps an existing [T, N1, ...] array without copying it.
func FromArray(a *sparse.DenseArray) (*Field, error) {
	if a == nil {
		return nil, pde.Statef("field.FromArray", "array is nil")
	}
	if d := len(a.Shape) - 1; d < 1 || d > grid.MaxDim {
		return nil, pde.Configf("field.FromArray", "array has %d spatial axes, want 1 to %d", d, grid.MaxDim)
	}
	n := 1
	for _, v := range a.Shape {
		n *= v
	}
	if n != len(a.Elements) {
		return nil, pde.Configf("field.FromArray", "shape %v holds %d values, array has %d", a.Shape, n, len(a.Elements))
	}
	return newField(a), nil
}

func newField(a *sparse.DenseArray) *Field {
	spatial := append([]int(nil), a.Shape[1:]...)
	return &Field{
		data:    a,
		spatial: spatial,
		strides: Strides(spatial),
		size:    Volume(spatial),
	}
}

// Dim returns the number of spatial axes.
func (f *Field) Dim() int { return len(f.spatial) }

// Steps returns the number of time slices.
func (f *Field) Steps() int { return f.data.Shape[0] }

// Shape returns a copy of the full shape, time first.
func (f *Field) Shape() []int { return append([]int(nil), f.data.Shape...) }

// SpatialShape returns a copy of the spatial part of the shape.
func (f *Field) SpatialShape() []int { return append([]int(nil), f.spatial...) }

// SpatialStrides returns a copy of the row-major strides of one slice.
func (f *Field) SpatialStrides() []int { return append([]int(nil), f.strides...) }

// SliceLen returns the number of cells in one time slice.
func (f *Field) SliceLen() int { return f.size }

// Slice returns time slice n as a view into the field storage.
func (f *Field) Slice(n int) []float64 {
	off := n * f.size
	return f.data.Elements[off : off+f.size : off+f.size]
}

// At returns the value at time slice n and spatial index idx.
func (f *Field) At(n int, idx ...int) float64 {
	return f.Slice(n)[f.offset(idx)]
}

// Set writes v at time slice n and spatial index idx.
func (f *Field) Set(v float64, n int, idx ...int) {
	f.Slice(n)[f.offset(idx)] = v
}

// Array exposes the backing storage.
func (f *Field) Array() *sparse.DenseArray { return f.data }

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	c := sparse.ZerosDense(f.data.Shape...)
	copy(c.Elements, f.data.Elements)
	return newField(c)
}

// Matches reports whether f is shaped after the given grids.
func (f *Field) Matches(space *grid.Space, clock *grid.Time) bool {
	if f.Steps() != clock.Len() || f.Dim() != space.Dim() {
		return false
	}
	for i, n := range space.Lengths() {
		if f.spatial[i] != n {
			return false
		}
	}
	return true
}

func (f *Field) offset(idx []int) int {
	if len(idx) != len(f.spatial) {
		panic("field: index arity does not match spatial dimension")
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= f.spatial[i] {
			panic("field: index out of range")
		}
		off += v * f.strides[i]
	}
	return off
}
