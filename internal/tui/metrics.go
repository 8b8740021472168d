package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/montcalc/internal/format"
	"github.com/agbru/montcalc/internal/sysmon"
)

// sparklineSamples is how many samples each sparkline keeps.
const sparklineSamples = 60

// MetricsModel shows runtime memory, host load and chain throughput.
type MetricsModel struct {
	mem        MemStatsMsg
	sys        sysmon.Stats
	cpuHistory []float64
	memHistory *RingBuffer
	throughput *RingBuffer

	// totalMults is the number of multiplications of the whole run.
	totalMults   float64
	lastProgress float64
	lastUpdate   time.Time

	width  int
	height int
}

// NewMetricsModel creates a panel for a run of totalMults multiplications.
func NewMetricsModel(totalMults int) MetricsModel {
	return MetricsModel{
		memHistory: NewRingBuffer(sparklineSamples),
		throughput: NewRingBuffer(sparklineSamples),
		totalMults: float64(totalMults),
		lastUpdate: time.Now(),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// UpdateMemStats stores a runtime sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) { m.mem = msg }

// UpdateSysStats stores a host sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.sys = msg.Stats
	m.cpuHistory = msg.History
	m.memHistory.Push(msg.Stats.MemPercent)
}

// UpdateProgress derives the multiplication rate from the average progress
// of the run. Updates closer than 50ms apart are merged.
func (m *MetricsModel) UpdateProgress(avg float64, now time.Time) {
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt < 0.05 {
		return
	}
	if dp := avg - m.lastProgress; dp > 0 {
		m.throughput.Push(dp * m.totalMults / dt)
	}
	m.lastProgress, m.lastUpdate = avg, now
}

// Rate returns the latest multiplications per second.
func (m MetricsModel) Rate() float64 { return m.throughput.Last() }

// View renders the panel.
func (m MetricsModel) View() string {
	sparkW := max(m.width-20, 8)
	var b strings.Builder
	b.WriteString(titleStyle.Render("SYSTEM"))
	b.WriteString("\n")
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("%-11s", label)), accentStyle.Render(value))
	}
	line("Heap:", format.FormatBytes(m.mem.Alloc)+" / "+format.FormatBytes(m.mem.HeapSys))
	line("GC:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6))
	line("Goroutines:", fmt.Sprint(m.mem.NumGoroutine))
	line("Process:", fmt.Sprintf("%.0f%% CPU, %s RSS", m.sys.ProcCPU, format.FormatBytes(m.sys.ProcRSS)))
	line("Rate:", formatRate(m.Rate()))
	fmt.Fprintf(&b, "%s %s %s\n", dimStyle.Render(fmt.Sprintf("%-11s", "CPU:")),
		cpuSparklineStyle.Render(RenderSparkline(m.cpuHistory, 100, sparkW)), fmt.Sprintf("%.0f%%", m.sys.CPUPercent))
	fmt.Fprintf(&b, "%s %s %s", dimStyle.Render(fmt.Sprintf("%-11s", "Memory:")),
		memSparklineStyle.Render(RenderSparkline(m.memHistory.Slice(), 100, sparkW)), fmt.Sprintf("%.0f%%", m.sys.MemPercent))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}

// formatRate renders multiplications per second with an SI prefix.
func formatRate(r float64) string {
	switch {
	case r <= 0:
		return "-"
	case r >= 1e9:
		return fmt.Sprintf("%.2f G mul/s", r/1e9)
	case r >= 1e6:
		return fmt.Sprintf("%.2f M mul/s", r/1e6)
	case r >= 1e3:
		return fmt.Sprintf("%.2f k mul/s", r/1e3)
	default:
		return fmt.Sprintf("%.0f mul/s", r)
	}
}
