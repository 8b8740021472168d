package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/progress"
)

// programRef is a shared reference to the tea.Program.
// bubbletea copies the model on every Update, so the bridge goroutines need
// a pointer that survives copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards progress updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends a ProgressMsg per
// update, then a ProgressDoneMsg.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numEngines)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			EngineIndex:     ap.EngineIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter sends results to the dashboard instead of writing them.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends a copy of results.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.ChainResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: append([]orchestration.ChainResult(nil), results...)})
}

// PresentGroup sends one group.
func (t *TUIResultPresenter) PresentGroup(g orchestration.GroupSummary, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(GroupMsg{Group: g})
}

// HandleError sends an ErrorMsg and returns the exit code for err.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
