package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/progress"
)

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	t.Parallel()
	reporter := &TUIProgressReporter{ref: &programRef{}} // no program: Send is a no-op

	ch := make(chan progress.ProgressUpdate, 10)
	for _, v := range []float64{0.25, 0.5, 0.75, 1} {
		ch <- progress.ProgressUpdate{EngineIndex: 0, Value: v}
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()
}

func TestTUIProgressReporter_ZeroEngines(t *testing.T) {
	t.Parallel()
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan progress.ProgressUpdate, 1)
	ch <- progress.ProgressUpdate{EngineIndex: 0, Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"mismatch", apperrors.MismatchError{Group: "8x32"}, apperrors.ExitErrorMismatch},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestTUIResultPresenter_NoProgram(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	presenter.PresentComparisonTable([]orchestration.ChainResult{{Name: "acar/8x32"}}, orchestration.PresentationOptions{}, nil)
	presenter.PresentGroup(orchestration.GroupSummary{Shape: "8x32"}, orchestration.PresentationOptions{}, nil)
}
