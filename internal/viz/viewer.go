package viz

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/diffsim/internal/export"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Viewer steps through the frames of a solved field.
type Viewer struct {
	title         string
	data          *export.Dataset
	frame         int
	playing       bool
	width, height int
	peaks         []float64
	gifPath       string
	status        string
	showHelp      bool
}

func NewViewer(title string, d *export.Dataset) Viewer {
	peaks := make([]float64, d.Field.Steps())
	for n := range peaks {
		peaks[n] = floats.Max(d.Field.Slice(n))
	}
	return Viewer{
		title:   title,
		data:    d,
		width:   80,
		height:  24,
		peaks:   peaks,
		gifPath: filepath.Join(".", title+".gif"),
	}
}

// SetGIFPath chooses where the G key writes the animation.
func (m *Viewer) SetGIFPath(path string) { m.gifPath = path }

func (m Viewer) Frame() int { return m.frame }

func tick() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Viewer) Init() tea.Cmd { return tick() }

func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := m.data.Field.Steps() - 1
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing && m.frame == last {
				m.frame = 0
			}
		case "right", "l":
			m.frame = min(m.frame+1, last)
		case "left", "h":
			m.frame = max(m.frame-1, 0)
		case "]":
			m.frame = min(m.frame+10, last)
		case "[":
			m.frame = max(m.frame-10, 0)
		case "home":
			m.frame = 0
		case "end":
			m.frame = last
		case "t":
			NextTheme()
		case "g":
			if err := SaveGIF(m.data.Field, m.gifPath, GIFOptions{}); err != nil {
				m.status = StatusError.Render(err.Error())
			} else {
				m.status = StatusRunning.Render("saved " + m.gifPath)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			if m.frame < last {
				m.frame++
			} else {
				m.playing = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Viewer) View() string {
	d := m.data
	w := max(20, m.width-50)
	h := max(5, m.height-8)
	frame, err := Render(d.Field, d.Time, m.frame, w, h)
	if err != nil {
		frame = StatusError.Render(err.Error())
	}

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	if m.playing {
		s.WriteString(StatusRunning.Render("PLAYING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	slice := d.Field.Slice(m.frame)
	s.WriteString(MetricLabel.Render("Frame") + MetricValue.Render(fmt.Sprintf("%d/%d", m.frame, d.Field.Steps()-1)) + "\n")
	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.3f", d.Time.At(m.frame))) + "\n")
	s.WriteString(MetricLabel.Render("Shape") + MetricValue.Render(fmt.Sprint(d.Field.SpatialShape())) + "\n")
	s.WriteString(MetricLabel.Render("Min") + MetricValue.Render(fmt.Sprintf("%.4g", floats.Min(slice))) + "\n")
	s.WriteString(MetricLabel.Render("Max") + MetricValue.Render(fmt.Sprintf("%.4g", floats.Max(slice))) + "\n")
	s.WriteString(MetricLabel.Render("Sum") + MetricValue.Render(fmt.Sprintf("%.4g", floats.Sum(slice))) + "\n\n")

	s.WriteString(Subtle.Render("peak over time") + "\n")
	s.WriteString(History(m.peaks, m.frame, 30) + "\n")
	s.WriteString(FrameBar(m.frame, d.Field.Steps()-1, 30) + "\n")
	if m.status != "" {
		s.WriteString("\n" + m.status + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Play ←→:Step []:Jump\nT:Theme G:GIF ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(frame), statsStyle.Render(s.String()))
	if m.showHelp {
		return KeyHint.Render(`
  Space      play / pause
  ← / h      previous frame
  → / l      next frame
  [ / ]      jump ten frames
  Home / End first / last frame
  T          cycle themes
  G          save GIF
  ?          toggle this help
  Q          quit
`) + "\n" + main
	}
	return main
}

// RunViewer opens the frame viewer in the alternate screen.
func RunViewer(title string, d *export.Dataset, gifPath string) error {
	v := NewViewer(title, d)
	if gifPath != "" {
		v.SetGIFPath(gifPath)
	}
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
