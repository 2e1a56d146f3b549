package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
)

var (
	Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b6b80"))

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52c41a"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#faad14"))
	StatusError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5222d"))

	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8c8c9a")).Width(12)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40a9ff"))

	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6b6b80"))
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(CurrentTheme.Muted)
}

// FrameBar shows the position of frame among frames 0..last.
func FrameBar(frame, last, width int) string {
	filled := width
	if last > 0 {
		filled = frame * width / last
	}
	filled = max(0, min(width, filled))
	return lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Render(strings.Repeat("━", filled)) +
		Subtle.Render(strings.Repeat("─", width-filled))
}

var ticks = []rune("▁▂▃▄▅▆▇█")

// History draws values as a one-line bar chart resampled to width
// columns. The column holding index cursor is highlighted.
func History(values []float64, cursor, width int) string {
	if len(values) == 0 || width < 1 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	cols := min(width, len(values))
	mark := cursor * cols / len(values)

	bar := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	here := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)

	var b strings.Builder
	for col := 0; col < cols; col++ {
		v := values[col*len(values)/cols]
		idx := int((v - lo) / span * float64(len(ticks)-1))
		idx = max(0, min(len(ticks)-1, idx))
		if col == mark {
			b.WriteString(here.Render(string(ticks[idx])))
		} else {
			b.WriteString(bar.Render(string(ticks[idx])))
		}
	}
	return b.String()
}

func hexColor(r, g, b uint8) string {
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [3]uint8{r, g, b} {
		buf[1+2*i] = digits[v>>4]
		buf[2+2*i] = digits[v&0xf]
	}
	return string(buf)
}
