package ui

import "github.com/charmbracelet/lipgloss"

// ANSI escapes of the active theme, by role.

func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorDim() string       { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// Cell renders s padded to width in color c. Padding is computed on the
// visible text so colored cells line up.
func Cell(s string, width int, c lipgloss.TerminalColor) string {
	return lipgloss.NewStyle().Width(width).Foreground(c).Render(s)
}

// Header renders a bold table header cell in the accent color.
func Header(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Bold(true).Underline(true).Foreground(CurrentPalette().Accent).Render(s)
}
