package tui

import (
	"time"

	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/sysmon"
)

// ProgressMsg carries one engine's progress and the run-wide average.
type ProgressMsg struct {
	EngineIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries every engine's result, sorted.
type ComparisonResultsMsg struct {
	Results []orchestration.ChainResult
}

// GroupMsg carries the agreed value of one shape group.
type GroupMsg struct {
	Group orchestration.GroupSummary
}

// ErrorMsg reports a run failure or a mismatch.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a host and process sample.
type SysStatsMsg struct {
	Stats   sysmon.Stats
	History []float64
}

// CalculationCompleteMsg ends a run. Generation identifies the run so that
// messages from a run replaced by a restart are ignored.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg reports that the run context was canceled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
