package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/export"
)

const (
	stateMenu = iota
	stateConfig
	stateSolving
	stateView
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// ResultFunc receives every run solved from the menu, for example to
// store it.
type ResultFunc func(name string, cfg *config.Config, res *experiment.Result)

type param struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
	step float64
}

var params = []param{
	{"c", func(c *config.Config) float64 { return c.Solver.StepConstant },
		func(c *config.Config, v float64) { c.Solver.StepConstant = v }, 0.01},
	{"steps", func(c *config.Config) float64 { return float64(c.Time.Steps) },
		func(c *config.Config, v float64) { c.Time.Steps = int(v) }, 10},
	{"dt", func(c *config.Config) float64 { return c.Time.Dt },
		func(c *config.Config, v float64) { c.Time.Dt = v }, 0.01},
	{"specific", func(c *config.Config) float64 { return c.Initial.Specific },
		func(c *config.Config, v float64) { c.Initial.Specific = v }, 1},
	{"boundary", func(c *config.Config) float64 { return c.Boundary.Value },
		func(c *config.Config, v float64) { c.Boundary.Value = v }, 1},
	{"thickness", func(c *config.Config) float64 { return float64(c.Boundary.Thickness) },
		func(c *config.Config, v float64) { c.Boundary.Thickness = int(v) }, 1},
}

type solvedMsg struct {
	res *experiment.Result
	err error
}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	status        string
	width, height int
	viewer        Viewer
	onResult      ResultFunc
}

func NewInteractiveApp(onResult ResultFunc) *model {
	return &model{
		state:    stateMenu,
		presets:  config.ListPresets(),
		width:    80,
		height:   24,
		onResult: onResult,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateView {
			v, cmd := m.viewer.Update(msg)
			m.viewer = v.(Viewer)
			return m, cmd
		}
		return m, nil
	case solvedMsg:
		return m.solved(msg)
	default:
		if m.state == stateView {
			v, cmd := m.viewer.Update(msg)
			m.viewer = v.(Viewer)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateView:
		v, cmd := m.viewer.Update(msg)
		m.viewer = v.(Viewer)
		return m, cmd
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.status = stateConfig, 0, ""
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%g", &val)
			p.set(m.cfg, val)
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", p.get(m.cfg))
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-p.step)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+p.step)
	case "s":
		m.state, m.status = stateSolving, ""
		return m, solve(m.cfg.Clone())
	}
	return m, nil
}

func solve(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		ec, err := cfg.Experiment()
		if err != nil {
			return solvedMsg{err: err}
		}
		e := experiment.New(ec)
		if err := e.Setup(); err != nil {
			return solvedMsg{err: err}
		}
		res, err := e.Run(context.Background())
		return solvedMsg{res: res, err: err}
	}
}

func (m model) solved(msg solvedMsg) (model, tea.Cmd) {
	if msg.err != nil {
		m.state, m.status = stateConfig, msg.err.Error()
		return m, nil
	}
	if m.onResult != nil {
		m.onResult(m.selected, m.cfg.Clone(), msg.res)
	}
	m.viewer = NewViewer(m.selected, &export.Dataset{Field: msg.res.Field, Space: msg.res.Space, Time: msg.res.Time})
	m.viewer.width, m.viewer.height = m.width, m.height
	m.state = stateView
	return m, m.viewer.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSolving:
		return "\n\n    " + StatusRunning.Render("solving "+m.selected+"...") + "\n"
	case stateView:
		return m.viewer.View()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle().Render("DIFFSIM") + "\n    " + Subtle.Render("explicit diffusion solver") + "\n\n")
	for i, name := range m.presets {
		desc := config.Presets[name].Summary()
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), accentStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", idleStyle.Render(fmt.Sprintf("%-10s", name)), idleStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + idleStyle.Render(" navigate  ") + keyStyle.Render("enter") + idleStyle.Render(" select  ") + keyStyle.Render("q") + idleStyle.Render(" quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle().Render(strings.ToUpper(m.selected)) + "\n    " + Subtle.Render(m.cfg.Summary()) + "\n\n")
	for i, p := range params {
		valStr := fmt.Sprintf("%10g", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", p.name)), accentStyle.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", idleStyle.Render(fmt.Sprintf("%-10s", p.name)), idleStyle.Render(valStr)))
		}
	}
	if m.status != "" {
		b.WriteString("\n    " + StatusError.Render(m.status) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + idleStyle.Render(" select  ") + keyStyle.Render("h/l") + idleStyle.Render(" adjust  ") + keyStyle.Render("s") + idleStyle.Render(" solve  ") + keyStyle.Render("esc") + idleStyle.Render(" back") + "\n")
	return b.String()
}

func RunInteractive(onResult ResultFunc) error {
	_, err := tea.NewProgram(NewInteractiveApp(onResult), tea.WithAltScreen()).Run()
	return err
}
