package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/montcalc/internal/progress"
)

// ChainResult is the outcome of one engine's chain. It is the shared domain
// type between orchestration and presentation.
type ChainResult struct {
	// Name is the engine name, "<algorithm>/<shape>".
	Name      string
	Algorithm string
	Shape     string
	// Result is the final chain value in hex, empty on error.
	Result   string
	Steps    int
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how results are presented.
type PresentationOptions struct {
	Field   string
	Steps   int
	Verbose bool
	Verify  bool
}

// ProgressReporter displays progress while chains run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	f(wg, progressChan, numEngines, out)
}

// NullProgressReporter drains the progress channel without output. Used in
// quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders the comparison of a run.
type ResultPresenter interface {
	// PresentComparisonTable renders every result, sorted by shape then speed.
	PresentComparisonTable(results []ChainResult, opts PresentationOptions, out io.Writer)
	// PresentGroup renders the agreed value of one shape group.
	PresentGroup(group GroupSummary, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports an error and maps it to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ExpectedFunc returns the reference chain value for a shape, in hex.
type ExpectedFunc func(shape string) (string, error)
