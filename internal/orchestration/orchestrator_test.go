package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/montcalc/internal/config"
	"github.com/agbru/montcalc/internal/engine"
	"github.com/agbru/montcalc/internal/engine/mocks"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/metrics"
	"github.com/agbru/montcalc/internal/progress"
)

// fakePresenter records what AnalyzeComparisonResults asked it to show.
type fakePresenter struct {
	mu     sync.Mutex
	tables int
	groups []GroupSummary
}

func (p *fakePresenter) PresentComparisonTable([]ChainResult, PresentationOptions, io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tables++
}

func (p *fakePresenter) PresentGroup(g GroupSummary, _ PresentationOptions, _ io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.groups = append(p.groups, g)
}

type handlerFunc func(err error) int

func (f handlerFunc) HandleError(err error, _ time.Duration, _ io.Writer) int { return f(err) }

var exitCodeHandler = handlerFunc(func(err error) int {
	return apperrors.HandleCalculationError(err, 0, io.Discard, nil)
})

func newMock(ctrl *gomock.Controller, alg engine.Algorithm, shape limb.Shape) *mocks.MockEngine {
	m := mocks.NewMockEngine(ctrl)
	m.EXPECT().Name().Return(string(alg) + "/" + shape.Name).AnyTimes()
	m.EXPECT().Algorithm().Return(alg).AnyTimes()
	m.EXPECT().Shape().Return(shape).AnyTimes()
	return m
}

func TestExecuteChains(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	ok := newMock(ctrl, engine.ACAR, limb.Shape4x64)
	ok.EXPECT().Chain(gomock.Any(), "0a", "0b", 16, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ int, report progress.ProgressCallback) (string, error) {
			report(0.5)
			report(1)
			return "01", nil
		})
	failing := newMock(ctrl, engine.Domb, limb.Shape4x64)
	failing.EXPECT().Chain(gomock.Any(), "0a", "0b", 16, gomock.Any()).Return("", errors.New("boom"))
	canceled := newMock(ctrl, engine.BM17, limb.Shape8x32)
	canceled.EXPECT().Chain(gomock.Any(), "0a", "0b", 16, gomock.Any()).Return("", context.Canceled)

	var (
		mu      sync.Mutex
		updates []progress.ProgressUpdate
	)
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		if n != 3 {
			t.Errorf("reporter told %d engines, want 3", n)
		}
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})

	rec := metrics.NewRecorder(nil)
	results := ExecuteChains(context.Background(),
		[]engine.Engine{ok, failing, canceled},
		ChainRequest{A: "0a", B: "0b", Steps: 16},
		reporter, io.Discard, WithRecorder(rec))

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Err != nil || results[0].Result != "01" || results[0].Shape != "4x64" || results[0].Steps != 16 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	var calcErr apperrors.CalculationError
	if !errors.As(results[1].Err, &calcErr) || calcErr.Engine != "domb/4x64" {
		t.Errorf("engine failure should be a CalculationError, got %v", results[1].Err)
	}
	if !errors.Is(results[2].Err, context.Canceled) || errors.As(results[2].Err, &calcErr) {
		t.Errorf("context errors should pass through unwrapped, got %#v", results[2].Err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 2 || updates[0].EngineIndex != 0 || updates[1].Value != 1 {
		t.Errorf("unexpected progress updates: %+v", updates)
	}

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "montcalc_chains_total" {
			found = len(f.GetMetric()) == 3
		}
	}
	if !found {
		t.Error("recorder should hold one chains_total series per engine")
	}
}

func TestExecuteChainsParallelismLimit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	var running, peak int32
	chain := func(context.Context, string, string, int, progress.ProgressCallback) (string, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return "00", nil
	}
	var engines []engine.Engine
	for _, alg := range []engine.Algorithm{engine.ACAR, engine.BH23, engine.Domb, engine.CarryLast} {
		m := newMock(ctrl, alg, limb.Shape4x64)
		m.EXPECT().Chain(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(chain)
		engines = append(engines, m)
	}

	ExecuteChains(context.Background(), engines, ChainRequest{Steps: 1, Parallelism: 2}, NullProgressReporter{}, io.Discard)
	if peak > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", peak)
	}
}

func TestExecuteChainsNoDeadlock(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	flood := func(_ context.Context, _, _ string, _ int, report progress.ProgressCallback) (string, error) {
		for i := 0; i < 10000; i++ {
			report(float64(i) / 10000)
		}
		return "00", nil
	}
	slow := func(ctx context.Context, _, _ string, _ int, report progress.ProgressCallback) (string, error) {
		for i := 0; i < 100; i++ {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			report(float64(i) / 100)
			time.Sleep(10 * time.Millisecond)
		}
		return "00", nil
	}
	a := newMock(ctrl, engine.ACAR, limb.Shape8x32)
	a.EXPECT().Chain(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(flood)
	b := newMock(ctrl, engine.BM17, limb.Shape8x32)
	b.EXPECT().Chain(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(slow)

	// A reporter that never reads must not block the engines.
	stalled := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
		time.Sleep(20 * time.Millisecond)
		NullProgressReporter{}.DisplayProgress(wg, ch, 0, nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []ChainResult)
	go func() {
		done <- ExecuteChains(ctx, []engine.Engine{a, b}, ChainRequest{Steps: 100}, stalled, io.Discard)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case results := <-done:
		if !errors.Is(results[1].Err, context.Canceled) {
			t.Errorf("slow engine should observe cancellation, got %v", results[1].Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK: ExecuteChains did not return after cancellation")
	}
}

func TestCompareResults(t *testing.T) {
	t.Parallel()
	oracle := func(values map[string]string) ExpectedFunc {
		return func(shape string) (string, error) {
			v, ok := values[shape]
			if !ok {
				return "", errors.New("no oracle")
			}
			return v, nil
		}
	}
	tests := []struct {
		name       string
		results    []ChainResult
		expected   ExpectedFunc
		groups     int
		mismatches []string
		verified   bool
		wantErr    bool
	}{
		{
			name: "agreement per shape",
			results: []ChainResult{
				{Name: "acar/8x32", Shape: "8x32", Result: "aa", Duration: 2},
				{Name: "bm17/8x32", Shape: "8x32", Result: "aa", Duration: 1},
				{Name: "acar/5x51", Shape: "5x51", Result: "bb"},
			},
			groups: 2,
		},
		{
			name: "mismatch within shape",
			results: []ChainResult{
				{Name: "acar/4x64", Shape: "4x64", Result: "aa"},
				{Name: "domb/4x64", Shape: "4x64", Result: "ab"},
			},
			groups:     1,
			mismatches: []string{"4x64"},
			wantErr:    true,
		},
		{
			name: "failures are ignored",
			results: []ChainResult{
				{Name: "acar/4x64", Shape: "4x64", Result: "aa"},
				{Name: "domb/4x64", Shape: "4x64", Err: errors.New("boom")},
				{Name: "bm17/8x32", Shape: "8x32", Err: errors.New("boom")},
			},
			groups: 1,
		},
		{
			name: "oracle agreement",
			results: []ChainResult{
				{Name: "acar/4x64", Shape: "4x64", Result: "aa"},
			},
			expected: oracle(map[string]string{"4x64": "aa"}),
			groups:   1,
			verified: true,
		},
		{
			name: "oracle disagreement",
			results: []ChainResult{
				{Name: "acar/4x64", Shape: "4x64", Result: "aa"},
				{Name: "acar/5x51", Shape: "5x51", Result: "cc"},
			},
			expected:   oracle(map[string]string{"4x64": "ff", "5x51": "cc"}),
			groups:     2,
			mismatches: []string{"4x64"},
			wantErr:    true,
		},
		{
			name: "oracle failure",
			results: []ChainResult{
				{Name: "acar/4x64", Shape: "4x64", Result: "aa"},
			},
			expected: oracle(nil),
			groups:   1,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			groups, err := CompareResults(tt.results, tt.expected)
			if len(groups) != tt.groups {
				t.Errorf("got %d groups, want %d", len(groups), tt.groups)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var shapes []string
			for _, m := range Mismatches(err) {
				shapes = append(shapes, m.Group)
			}
			if strings.Join(shapes, ",") != strings.Join(tt.mismatches, ",") {
				t.Errorf("mismatched groups = %v, want %v", shapes, tt.mismatches)
			}
			if tt.verified && !groups[0].Verified {
				t.Error("group should be verified")
			}
		})
	}
}

func TestCompareResultsFastest(t *testing.T) {
	t.Parallel()
	groups, err := CompareResults([]ChainResult{
		{Name: "acar/8x32", Shape: "8x32", Result: "aa", Duration: 3 * time.Millisecond},
		{Name: "carrylast/8x32", Shape: "8x32", Result: "aa", Duration: time.Millisecond},
		{Name: "slgck14/8x32", Shape: "8x32", Err: context.DeadlineExceeded},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := groups[0]
	if g.Fastest != "carrylast/8x32" || g.Engines != 2 || g.Failed != 1 {
		t.Errorf("unexpected summary %+v", g)
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		results  []ChainResult
		expected int
		groups   int
	}{
		{
			name: "all success",
			results: []ChainResult{
				{Name: "acar/8x32", Shape: "8x32", Result: "05"},
				{Name: "bh23/8x32", Shape: "8x32", Result: "05"},
			},
			expected: apperrors.ExitSuccess,
			groups:   1,
		},
		{
			name: "mismatch",
			results: []ChainResult{
				{Name: "acar/8x32", Shape: "8x32", Result: "05"},
				{Name: "bh23/8x32", Shape: "8x32", Result: "06"},
			},
			expected: apperrors.ExitErrorMismatch,
		},
		{
			name: "all failure",
			results: []ChainResult{
				{Name: "acar/8x32", Shape: "8x32", Err: errors.New("fail")},
				{Name: "bh23/8x32", Shape: "8x32", Err: errors.New("fail")},
			},
			expected: apperrors.ExitErrorGeneric,
		},
		{
			name: "all timed out",
			results: []ChainResult{
				{Name: "acar/8x32", Shape: "8x32", Err: context.DeadlineExceeded},
			},
			expected: apperrors.ExitErrorTimeout,
		},
		{
			name: "mixed success and failure",
			results: []ChainResult{
				{Name: "acar/8x32", Shape: "8x32", Result: "05"},
				{Name: "bh23/8x32", Shape: "8x32", Err: errors.New("fail")},
			},
			expected: apperrors.ExitSuccess,
			groups:   1,
		},
		{
			name:     "no engines",
			expected: apperrors.ExitErrorGeneric,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &fakePresenter{}
			var out strings.Builder
			code := AnalyzeComparisonResults(tt.results, PresentationOptions{}, nil, p, exitCodeHandler, &out)
			if code != tt.expected {
				t.Errorf("exit code %d, want %d", code, tt.expected)
			}
			if p.tables != 1 {
				t.Errorf("table presented %d times, want 1", p.tables)
			}
			if len(p.groups) != tt.groups {
				t.Errorf("%d groups presented, want %d", len(p.groups), tt.groups)
			}
			if !strings.Contains(out.String(), "Global Status") {
				t.Errorf("missing global status line in %q", out.String())
			}
		})
	}
}

func TestGetEnginesToRun(t *testing.T) {
	t.Parallel()
	factory, err := engine.NewDefaultFactory("bn254", field.BN254Scalar, limb.Shapes())
	if err != nil {
		t.Fatal(err)
	}

	all := GetEnginesToRun(config.AppConfig{Algo: "all", Shapes: "all"}, factory)
	if len(all) != len(factory.List()) {
		t.Errorf("all selection returned %d engines, factory has %d", len(all), len(factory.List()))
	}

	some := GetEnginesToRun(config.AppConfig{Algo: "acar,bm17", Shapes: "8x32"}, factory)
	if len(some) != 2 {
		t.Fatalf("got %d engines, want 2", len(some))
	}
	for _, e := range some {
		if e.Shape().Name != "8x32" || (e.Algorithm() != engine.ACAR && e.Algorithm() != engine.BM17) {
			t.Errorf("unexpected engine %s", e.Name())
		}
	}

	if got := GetEnginesToRun(config.AppConfig{Algo: "slgck14", Shapes: "4x64"}, factory); len(got) != 0 {
		t.Errorf("slgck14 has no 4x64 engine, got %d", len(got))
	}
	if got := GetEnginesToRun(config.AppConfig{Shapes: "9x9"}, factory); got != nil {
		t.Errorf("invalid shape should select nothing, got %d", len(got))
	}
}
