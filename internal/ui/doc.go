// Package ui holds the color themes shared by the CLI and the TUI dashboard.
// The CLI uses the ANSI escape accessors (ColorRed, ColorReset, ...); the
// dashboard and the result table use the lipgloss palette of the same theme.
package ui
