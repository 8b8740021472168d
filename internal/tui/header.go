package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montcalc/internal/format"
)

// HeaderModel renders the top bar: title, run description and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	run       string
	width     int
}

// NewHeaderModel creates a header. run describes the chain, e.g.
// "bn254 × 1024".
func NewHeaderModel(version, run string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, run: run}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "montcalc monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(title) + pipe +
		infoStyle.Render(h.run) + pipe +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += spaces(gap)
	}
	return headerStyle.Width(max(h.width, 0)).Render(row)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
