package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montcalc/internal/format"
)

// FooterModel renders the run status, overall progress and key help.
type FooterModel struct {
	keys     KeyMap
	progress float64
	eta      time.Duration
	paused   bool
	done     bool
	failed   bool
	width    int
}

// NewFooterModel creates a footer.
func NewFooterModel(keys KeyMap) FooterModel {
	return FooterModel{keys: keys}
}

func (f *FooterModel) SetWidth(w int)   { f.width = w }
func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.failed = e }

// SetProgress updates the overall progress and its estimate.
func (f *FooterModel) SetProgress(avg float64, eta time.Duration) {
	f.progress, f.eta = avg, eta
}

// Status returns the status word shown in the footer.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("FAILED")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("RUNNING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	help := make([]string, 0, 6)
	for _, b := range f.keys.ShortHelp() {
		h := b.Help()
		help = append(help, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	progress := f.progress
	if f.done && !f.failed {
		progress = 1
	}
	line := " " + f.Status() + "  " + format.FormatProgressBarWithETA(progress, f.eta, 20) + "  " + strings.Join(help, "  ")
	if f.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(f.width).Render(line)
	}
	return line
}
