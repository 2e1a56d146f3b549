package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

// ProfileToSVG draws one slice of a one-dimensional field as a line over x.
func ProfileToSVG(x, values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 || len(x) != len(values) {
		return ""
	}

	minX, maxX := x[0], x[len(x)-1]
	minY, maxY := floats.Min(values), floats.Max(values)

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		px := (x[i] - minX) / rangeX * float64(width)
		py := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// HeatmapToSVG draws a row-major ny×nx plane as coloured cells scaled
// between lo and hi.
func HeatmapToSVG(plane []float64, nx, ny int, scale, lo, hi float64) string {
	if nx*ny == 0 || len(plane) != nx*ny {
		return ""
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	width := float64(nx) * scale
	height := float64(ny) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for row := 0; row < ny; row++ {
		for col := 0; col < nx; col++ {
			r, g, b := HeatColor((plane[row*nx+col] - lo) / span)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, float64(col)*scale, float64(row)*scale, scale, scale, r, g, b))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// HeatColor maps u in [0, 1] to a black-red-yellow-white ramp.
func HeatColor(u float64) (r, g, b uint8) {
	if u < 0 || math.IsNaN(u) {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	ch := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return ch(3 * u), ch(3*u - 1), ch(3*u - 2)
}

// Plane returns the x-y plane of slice n that the frame views show: the
// slice itself in 2-D and the middle z layer in 3-D. The result is laid
// out row-major with y as rows.
func Plane(f *field.Field, n int) (plane []float64, nx, ny int) {
	shape := f.SpatialShape()
	slice := f.Slice(n)
	switch len(shape) {
	case 2:
		nx, ny = shape[0], shape[1]
		plane = make([]float64, nx*ny)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				plane[j*nx+i] = slice[i*ny+j]
			}
		}
	case 3:
		nx, ny = shape[0], shape[1]
		plane = make([]float64, nx*ny)
		nz := shape[2]
		k := nz / 2
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				plane[j*nx+i] = slice[(i*ny+j)*nz+k]
			}
		}
	default:
		return nil, 0, 0
	}
	return plane, nx, ny
}

// WriteSVG renders slice n of f as an SVG image at path.
func WriteSVG(f *field.Field, space *grid.Space, n int, path string) error {
	if f == nil || space == nil {
		return pde.Statef("export.WriteSVG", "field and space grid must be set")
	}
	if n < 0 || n >= f.Steps() {
		return pde.Configf("export.WriteSVG", "frame %d outside [0, %d)", n, f.Steps())
	}

	var doc string
	if f.Dim() == 1 {
		doc = ProfileToSVG(space.Axis(0), f.Slice(n), 800, 400, "#ff8c00")
	} else {
		plane, nx, ny := Plane(f, n)
		all := f.Array().Elements
		doc = HeatmapToSVG(plane, nx, ny, 8, floats.Min(all), floats.Max(all))
	}
	return WriteAtomic(path, func(out *os.File) error {
		_, err := out.WriteString(doc)
		return err
	})
}
