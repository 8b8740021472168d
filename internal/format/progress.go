package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates produced from very slow progress rates.
const maxETA = 24 * time.Hour

// ProgressState aggregates the progress of concurrently running engines.
// It is not safe for concurrent use; ProgressWithETA adds locking.
type ProgressState struct {
	progresses []float64
	numEngines int
}

// NewProgressState creates a state tracking numEngines progress values.
func NewProgressState(numEngines int) *ProgressState {
	if numEngines < 0 {
		numEngines = 0
	}
	return &ProgressState{
		progresses: make([]float64, numEngines),
		numEngines: numEngines,
	}
}

// Update records the progress of the engine at index. Out of range indices
// are ignored and values are clamped to [0, 1].
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress over all engines.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numEngines == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numEngines)
}

// ProgressWithETA extends ProgressState with a progress rate used to
// estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	numEngines   int
	startTime    time.Time
	progressRate float64 // average progress per second
}

// NewProgressWithETA starts the clock for numEngines engines.
func NewProgressWithETA(numEngines int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numEngines),
		numEngines:    numEngines,
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a progress value and returns the new average together
// with the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate of the remaining time, or 0 when no
// rate is known yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1 {
		return 0
	}
	secs := (1 - avg) / p.progressRate
	eta := time.Duration(secs * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an estimate as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders a bar of length cells for progress in [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 50.00% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	etaText := FormatETA(eta)
	if progress >= 1 {
		etaText = "done"
	}
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, etaText)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
