package orchestration

import (
	"time"

	"github.com/agbru/montcalc/internal/format"
	"github.com/agbru/montcalc/internal/progress"
)

// ProgressAggregator folds per-engine progress updates into an average and
// an ETA. The CLI spinner and the TUI dashboard both consume it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numEngines int
}

// NewProgressAggregator returns nil if numEngines <= 0.
func NewProgressAggregator(numEngines int) *ProgressAggregator {
	if numEngines <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numEngines),
		numEngines: numEngines,
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	EngineIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies one progress update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.EngineIndex, update.Value)
	return AggregatedProgress{
		EngineIndex:     update.EngineIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumEngines returns the number of engines being tracked.
func (a *ProgressAggregator) NumEngines() int { return a.numEngines }

// IsMultiEngine reports whether more than one engine is tracked.
func (a *ProgressAggregator) IsMultiEngine() bool { return a.numEngines > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
