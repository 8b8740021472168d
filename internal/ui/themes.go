package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escapes, one per color role.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
	// Palette is the lipgloss rendition used by styled output.
	Palette Palette
}

// Palette holds lipgloss colors for the same roles as Theme.
type Palette struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Palette: Palette{
			Text:    lipgloss.Color("#E0E0E0"),
			Border:  lipgloss.Color("#00AFFF"),
			Accent:  lipgloss.Color("#00AFFF"),
			Success: lipgloss.Color("#5FFF00"),
			Warning: lipgloss.Color("#FFD700"),
			Error:   lipgloss.Color("#FF0000"),
			Dim:     lipgloss.Color("#8A8A8A"),
			Info:    lipgloss.Color("#AF87FF"),
		},
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Palette: Palette{
			Text:    lipgloss.Color("#1C1C1C"),
			Border:  lipgloss.Color("#005FFF"),
			Accent:  lipgloss.Color("#005FFF"),
			Success: lipgloss.Color("#008700"),
			Warning: lipgloss.Color("#AF5F00"),
			Error:   lipgloss.Color("#AF0000"),
			Dim:     lipgloss.Color("#585858"),
			Info:    lipgloss.Color("#5F0087"),
		},
	}

	// OrangeTheme is the warm palette of the dashboard.
	OrangeTheme = Theme{
		Name:      "orange",
		Primary:   "\033[38;5;208m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;214m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;69m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Palette: Palette{
			Text:    lipgloss.Color("#E0E0E0"),
			Border:  lipgloss.Color("#FF6600"),
			Accent:  lipgloss.Color("#FF8C00"),
			Success: lipgloss.Color("#9ECE6A"),
			Warning: lipgloss.Color("#FFB347"),
			Error:   lipgloss.Color("#FF4444"),
			Dim:     lipgloss.Color("#666666"),
			Info:    lipgloss.Color("#4488FF"),
		},
	}

	// NoColorTheme disables color. Used for --no-color and NO_COLOR.
	NoColorTheme = Theme{
		Name: "none",
		Palette: Palette{
			Text:    lipgloss.NoColor{},
			Border:  lipgloss.NoColor{},
			Accent:  lipgloss.NoColor{},
			Success: lipgloss.NoColor{},
			Warning: lipgloss.NoColor{},
			Error:   lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
			Info:    lipgloss.NoColor{},
		},
	}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		OrangeTheme.Name:  OrangeTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// CurrentPalette returns the lipgloss palette of the active theme.
func CurrentPalette() Palette { return GetCurrentTheme().Palette }

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name. Unknown names select DarkTheme.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme activates the named theme unless colors are disabled by
// noColor or by the NO_COLOR environment variable (https://no-color.org/).
func InitTheme(name string, noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}
