package stencil

import (
	"github.com/san-kum/diffsim/internal/field"
)

// Lattice lists the cells of a spatial slice that a sweep updates, together
// with the flat offsets of their axis neighbours.
type Lattice struct {
	Shape    []int
	Strides  []int
	Margin   int
	Interior []int
}

// NewLattice returns the interior of shape for a boundary layer of the
// given thickness. Cells on the outermost layer are never interior since
// the stencil needs a neighbour on both sides.
func NewLattice(shape []int, thickness int) *Lattice {
	m := thickness
	if m < 1 {
		m = 1
	}
	l := &Lattice{
		Shape:   append([]int(nil), shape...),
		Strides: field.Strides(shape),
		Margin:  m,
	}
	field.Walk(shape, func(flat int, idx []int) {
		if field.Inside(idx, shape, m) {
			l.Interior = append(l.Interior, flat)
		}
	})
	return l
}

// Dim returns the number of spatial axes.
func (l *Lattice) Dim() int { return len(l.Shape) }

// Size returns the number of cells in one slice.
func (l *Lattice) Size() int { return field.Volume(l.Shape) }
