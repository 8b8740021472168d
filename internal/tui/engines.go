package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/format"
	"github.com/agbru/montcalc/internal/orchestration"
)

type rowStatus int

const (
	rowRunning rowStatus = iota
	rowDone
	rowFailed
	rowCanceled
)

type engineRow struct {
	name     string
	progress float64
	status   rowStatus
	duration time.Duration
	err      error
}

type groupRow struct {
	summary  orchestration.GroupSummary
	mismatch map[string]string
}

// EnginesModel is the main panel: one progress row per engine, then the
// agreed value of every shape group once the run is over.
type EnginesModel struct {
	rows     []engineRow
	groups   []groupRow
	failure  error
	cursor   int
	showFull bool
	width    int
	height   int
}

// NewEnginesModel creates a panel for the named engines, in run order.
func NewEnginesModel(names []string) EnginesModel {
	rows := make([]engineRow, len(names))
	for i, n := range names {
		rows[i] = engineRow{name: n}
	}
	return EnginesModel{rows: rows}
}

// SetSize updates dimensions.
func (m *EnginesModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// Reset puts every row back to running.
func (m *EnginesModel) Reset() {
	for i := range m.rows {
		m.rows[i] = engineRow{name: m.rows[i].name}
	}
	m.groups, m.failure = nil, nil
}

// UpdateProgress sets the progress of row idx. Out-of-range indexes are
// ignored.
func (m *EnginesModel) UpdateProgress(idx int, v float64) {
	if idx < 0 || idx >= len(m.rows) {
		return
	}
	m.rows[idx].progress = v
}

// ApplyResults marks rows as finished from the results of the run.
func (m *EnginesModel) ApplyResults(results []orchestration.ChainResult) {
	byName := make(map[string]orchestration.ChainResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	for i := range m.rows {
		r, ok := byName[m.rows[i].name]
		if !ok {
			continue
		}
		row := &m.rows[i]
		row.duration, row.err = r.Duration, r.Err
		switch {
		case r.Err == nil:
			row.status, row.progress = rowDone, 1
		case apperrors.IsContextError(r.Err):
			row.status = rowCanceled
		default:
			row.status = rowFailed
		}
	}
}

// AddGroup records the agreed value of a shape group.
func (m *EnginesModel) AddGroup(g orchestration.GroupSummary) {
	m.groups = append(m.groups, groupRow{summary: g})
}

// SetFailure records a run failure. Mismatches are shown next to their
// shape group, anything else as a status line.
func (m *EnginesModel) SetFailure(err error) {
	mismatches := orchestration.Mismatches(err)
	if len(mismatches) == 0 {
		m.failure = err
		return
	}
	for _, mm := range mismatches {
		m.groups = append(m.groups, groupRow{
			summary:  orchestration.GroupSummary{Shape: mm.Group},
			mismatch: mm.Results,
		})
	}
	m.failure = err
}

// MoveCursor moves the selected row by delta, clamped to the table.
func (m *EnginesModel) MoveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.rows)-1, 0))
}

// ToggleFull switches between truncated and full hex values.
func (m *EnginesModel) ToggleFull() { m.showFull = !m.showFull }

// Selected returns the name of the selected engine.
func (m EnginesModel) Selected() string {
	if len(m.rows) == 0 {
		return ""
	}
	return m.rows[m.cursor].name
}

// Completed returns the number of rows no longer running.
func (m EnginesModel) Completed() int {
	n := 0
	for _, r := range m.rows {
		if r.status != rowRunning {
			n++
		}
	}
	return n
}

const (
	colName = 18
	colPct  = 8
	colDur  = 10
)

// View renders the panel.
func (m EnginesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ENGINES"))
	b.WriteString("\n")

	barWidth := max(m.width-colName-colPct-colDur-16, 10)
	for i, r := range m.rows {
		name := lipgloss.NewStyle().Width(colName).Render(r.name)
		if i == m.cursor {
			name = selectedStyle.Width(colName).Render("› " + r.name)
		}
		bar := barStyle.Render(format.ProgressBar(r.progress, barWidth))
		pct := lipgloss.NewStyle().Width(colPct).Align(lipgloss.Right).Render(fmt.Sprintf("%.1f%%", r.progress*100))
		fmt.Fprintf(&b, "%s %s %s  %s\n", name, bar, pct, m.statusCell(r))
	}

	if len(m.groups) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("RESULTS"))
		b.WriteString("\n")
		for _, g := range m.groups {
			b.WriteString(m.groupLine(g))
		}
	}
	if m.failure != nil && len(m.groups) == 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Failure: " + m.failure.Error()))
		b.WriteString("\n")
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m EnginesModel) statusCell(r engineRow) string {
	switch r.status {
	case rowDone:
		return successStyle.Render(fmt.Sprintf("%-*s ✓", colDur, format.FormatExecutionDuration(r.duration)))
	case rowFailed:
		return errorStyle.Render("✗ " + r.err.Error())
	case rowCanceled:
		return dimStyle.Render("canceled")
	default:
		return dimStyle.Render("running")
	}
}

func (m EnginesModel) value(hex string) string {
	if m.showFull {
		return hex
	}
	return format.TruncateHex(hex, 12)
}

func (m EnginesModel) groupLine(g groupRow) string {
	if g.mismatch != nil {
		var b strings.Builder
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %s: MISMATCH", g.summary.Shape)))
		b.WriteString("\n")
		for _, name := range slices.Sorted(maps.Keys(g.mismatch)) {
			fmt.Fprintf(&b, "    %-*s %s\n", colName, name, m.value(g.mismatch[name]))
		}
		return b.String()
	}
	s := g.summary
	mark := dimStyle.Render("unverified")
	if s.Verified {
		mark = successStyle.Render("✓ oracle")
	}
	return fmt.Sprintf("  %s %s %s  %s\n",
		infoStyle.Render(s.Shape), accentStyle.Render("0x"+m.value(s.Result)), mark,
		dimStyle.Render(fmt.Sprintf("(%d agree, fastest %s)", s.Engines, s.Fastest)))
}
