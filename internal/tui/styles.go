package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montcalc/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui palette by
// initTUIStyles.
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	accentStyle        lipgloss.Style
	infoStyle          lipgloss.Style
	successStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	selectedStyle      lipgloss.Style
	barStyle           lipgloss.Style
	footerKeyStyle     lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui palette. Run calls
// it again once the theme has been chosen.
func initTUIStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(p.Accent)
	infoStyle = lipgloss.NewStyle().Foreground(p.Info)
	successStyle = lipgloss.NewStyle().Foreground(p.Success)
	errorStyle = lipgloss.NewStyle().Foreground(p.Error)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	barStyle = lipgloss.NewStyle().Foreground(p.Accent)
	footerKeyStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)

	statusRunningStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	statusPausedStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().Foreground(p.Accent)
	memSparklineStyle = lipgloss.NewStyle().Foreground(p.Warning)
}
