package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/diffsim/internal/export"
	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

// shades runs from cold to hot.
const shades = " .:-=+*#%@"

// Label is the caption of frame n.
func Label(clock *grid.Time, n int) string {
	return fmt.Sprintf("t = %.1f", float64(n)*clock.Dt())
}

// Render draws time slice n of f in at most w columns and h rows.
func Render(f *field.Field, clock *grid.Time, n, w, h int) (string, error) {
	if f == nil || clock == nil {
		return "", pde.Statef("viz.Render", "field and time grid must be set")
	}
	if n < 0 || n >= f.Steps() {
		return "", pde.Configf("viz.Render", "frame %d outside [0, %d)", n, f.Steps())
	}
	if w < 1 || h < 1 {
		return "", pde.Configf("viz.Render", "render area %dx%d too small", w, h)
	}

	label := Label(clock, n)
	if f.Dim() == 1 {
		return asciigraph.Plot(f.Slice(n),
			asciigraph.Height(h),
			asciigraph.Width(w),
			asciigraph.Caption(label)), nil
	}

	all := f.Array().Elements
	plane, nx, ny := export.Plane(f, n)
	return Heatmap(plane, nx, ny, w, h, floats.Min(all), floats.Max(all)) + "\n" + label, nil
}

// Heatmap shades a row-major ny×nx plane, sampling it down to fit w×h.
func Heatmap(plane []float64, nx, ny, w, h int, lo, hi float64) string {
	cols, rows := min(w, nx), min(h, ny)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		j := row * ny / rows
		for col := 0; col < cols; col++ {
			i := col * nx / cols
			u := (plane[j*nx+i] - lo) / span
			b.WriteString(shade(u))
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func shade(u float64) string {
	idx := int(u * float64(len(shades)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(shades) {
		idx = len(shades) - 1
	}
	r, g, bl := export.HeatColor(u)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, bl))).Render(string(shades[idx]))
}
