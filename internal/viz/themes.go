package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the viewer chrome. Heatmap cells always use the heat ramp.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff7a45"),
		Secondary: lipgloss.Color("#ffc53d"),
		Accent:    lipgloss.Color("#ff4d4f"),
		Muted:     lipgloss.Color("#8c6e63"),
	}

	ThemeGlacier = Theme{
		Name:      "glacier",
		Primary:   lipgloss.Color("#69c0ff"),
		Secondary: lipgloss.Color("#b5f5ec"),
		Accent:    lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#5c7080"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#f0f0f0"),
		Secondary: lipgloss.Color("#bfbfbf"),
		Accent:    lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#737373"),
	}

	CurrentTheme = ThemeEmber

	Themes = []Theme{ThemeEmber, ThemeGlacier, ThemeMono}
)

// GetTheme returns the named theme, or the default one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme cycles through Themes.
func NextTheme() {
	next := 0
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			next = (i + 1) % len(Themes)
			break
		}
	}
	CurrentTheme = Themes[next]
}

func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for _, t := range Themes {
		names = append(names, t.Name)
	}
	return names
}
