package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/montcalc/internal/engine"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/logging"
	"github.com/agbru/montcalc/internal/metrics"
	"github.com/agbru/montcalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per engine.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/montcalc/internal/orchestration"

// ChainRequest is the input shared by every engine of a run.
type ChainRequest struct {
	A, B  string
	Steps int
	// Parallelism caps concurrently running engines; <= 0 means unlimited.
	Parallelism int
}

type execSettings struct {
	recorder       *metrics.Recorder
	logger         logging.Logger
	progressLogger *zerolog.Logger
}

// ExecOption configures ExecuteChains.
type ExecOption func(*execSettings)

// WithRecorder records every chain in r.
func WithRecorder(r *metrics.Recorder) ExecOption {
	return func(s *execSettings) { s.recorder = r }
}

// WithLogger logs chain starts and ends through l.
func WithLogger(l logging.Logger) ExecOption {
	return func(s *execSettings) { s.logger = l }
}

// WithProgressLogger also logs progress at debug level every 25%.
func WithProgressLogger(l zerolog.Logger) ExecOption {
	return func(s *execSettings) { s.progressLogger = &l }
}

// ExecuteChains runs req on every engine concurrently and returns one
// result per engine, in input order. Engine failures are reported in the
// results, never as an early abort of the others. Progress updates flow to
// reporter until every chain has returned.
func ExecuteChains(ctx context.Context, engines []engine.Engine, req ChainRequest, reporter ProgressReporter, out io.Writer, opts ...ExecOption) []ChainResult {
	var settings execSettings
	for _, opt := range opts {
		opt(&settings)
	}

	tracer := otel.Tracer(tracerName)
	ctx, runSpan := tracer.Start(ctx, "montcalc.run")
	runSpan.SetAttributes(
		attribute.Int("montcalc.engines", len(engines)),
		attribute.Int("montcalc.steps", req.Steps),
	)
	defer runSpan.End()

	g, ctx := errgroup.WithContext(ctx)
	if req.Parallelism > 0 {
		g.SetLimit(req.Parallelism)
	}
	results := make([]ChainResult, len(engines))
	progressChan := make(chan progress.ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	subject := progress.NewProgressSubject()
	subject.Register(progress.NewChannelObserver(progressChan))
	if settings.progressLogger != nil {
		subject.Register(progress.NewLoggingObserver(*settings.progressLogger, 0.25))
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	for i, e := range engines {
		idx, eng := i, e
		report := subject.Freeze(idx)
		g.Go(func() error {
			results[idx] = runChain(ctx, eng, req, report, settings)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runChain(ctx context.Context, eng engine.Engine, req ChainRequest, report progress.ProgressCallback, s execSettings) ChainResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "montcalc.chain")
	defer span.End()
	shape := eng.Shape().Name
	span.SetAttributes(
		attribute.String("montcalc.engine", eng.Name()),
		attribute.String("montcalc.algorithm", string(eng.Algorithm())),
		attribute.String("montcalc.shape", shape),
	)
	if s.logger != nil {
		s.logger.Debug("chain started", logging.String("engine", eng.Name()), logging.Int("steps", req.Steps))
	}

	start := time.Now()
	res, err := eng.Chain(ctx, req.A, req.B, req.Steps, report)
	elapsed := time.Since(start)

	if err != nil {
		if !apperrors.IsContextError(err) {
			err = apperrors.CalculationError{Engine: eng.Name(), Cause: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.recorder != nil {
		s.recorder.ObserveChain(eng.Name(), string(eng.Algorithm()), shape, req.Steps, elapsed, err)
	}
	if s.logger != nil {
		if err != nil {
			s.logger.Error("chain failed", err, logging.String("engine", eng.Name()))
		} else {
			s.logger.Debug("chain finished", logging.String("engine", eng.Name()), logging.Duration("elapsed", elapsed))
		}
	}

	return ChainResult{
		Name:      eng.Name(),
		Algorithm: string(eng.Algorithm()),
		Shape:     shape,
		Result:    res,
		Steps:     req.Steps,
		Duration:  elapsed,
		Err:       err,
	}
}

// GroupSummary is the agreed outcome of the engines sharing a shape.
type GroupSummary struct {
	Shape string
	// Result is the value every successful engine produced.
	Result string
	// Engines counts the successful engines; Failed the others.
	Engines int
	Failed  int
	// Fastest is the quickest successful engine.
	Fastest  string
	Duration time.Duration
	// Verified is true when Result matched the oracle.
	Verified bool
}

// OracleName labels the reference value inside a MismatchError.
const OracleName = "oracle"

// SortResults orders results by shape, then successes before failures,
// then by duration.
func SortResults(results []ChainResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Shape != b.Shape {
			return a.Shape < b.Shape
		}
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return a.Duration < b.Duration
	})
}

// CompareResults groups results by shape and checks that the successful
// engines of each group agree and, when expected is not nil, that they match
// the oracle. Every disagreeing group contributes an apperrors.MismatchError
// to the returned error. Groups where every engine failed are omitted.
func CompareResults(results []ChainResult, expected ExpectedFunc) ([]GroupSummary, error) {
	sorted := append([]ChainResult(nil), results...)
	SortResults(sorted)

	var (
		groups []GroupSummary
		errs   []error
	)
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Shape == sorted[start].Shape {
			end++
		}
		g, err := compareGroup(sorted[start:end], expected)
		if g.Engines > 0 {
			groups = append(groups, g)
		}
		if err != nil {
			errs = append(errs, err)
		}
		start = end
	}
	return groups, errors.Join(errs...)
}

func compareGroup(rs []ChainResult, expected ExpectedFunc) (GroupSummary, error) {
	g := GroupSummary{Shape: rs[0].Shape}
	values := map[string]string{}
	for _, r := range rs {
		if r.Err != nil {
			g.Failed++
			continue
		}
		if g.Engines == 0 {
			g.Result, g.Fastest, g.Duration = r.Result, r.Name, r.Duration
		}
		g.Engines++
		values[r.Name] = r.Result
	}
	if g.Engines == 0 {
		return g, nil
	}

	mismatch := false
	for _, v := range values {
		if v != g.Result {
			mismatch = true
		}
	}
	if expected != nil {
		want, err := expected(g.Shape)
		if err != nil {
			return g, fmt.Errorf("oracle for %s: %w", g.Shape, err)
		}
		if want != g.Result {
			mismatch = true
		} else if !mismatch {
			g.Verified = true
		}
		values[OracleName] = want
	}
	if mismatch {
		return g, apperrors.MismatchError{Group: g.Shape, Results: values}
	}
	return g, nil
}

// AnalyzeComparisonResults presents the results of a run and returns the
// process exit code: success when at least one engine finished and every
// group agrees, mismatch when any group disagrees, and the handler's code
// for the first failure when nothing finished.
func AnalyzeComparisonResults(results []ChainResult, opts PresentationOptions, expected ExpectedFunc, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	SortResults(results)
	presenter.PresentComparisonTable(results, opts, out)

	var firstErr error
	success := 0
	for _, r := range results {
		if r.Err == nil {
			success++
		} else if firstErr == nil {
			firstErr = r.Err
		}
	}
	if success == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the chain.\n")
		if firstErr == nil {
			firstErr = errors.New("no engines selected")
		}
		return handler.HandleError(firstErr, 0, out)
	}

	groups, err := CompareResults(results, expected)
	if err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results.\n")
		return handler.HandleError(err, 0, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	for _, g := range groups {
		presenter.PresentGroup(g, opts, out)
	}
	return apperrors.ExitSuccess
}

// Mismatches extracts the MismatchErrors joined in err.
func Mismatches(err error) []apperrors.MismatchError {
	var out []apperrors.MismatchError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if m, ok := e.(apperrors.MismatchError); ok {
			out = append(out, m)
			return
		}
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		walk(errors.Unwrap(e))
	}
	walk(err)
	return out
}
