package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/montcalc/internal/cli"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/logging"
	"github.com/agbru/montcalc/internal/metrics"
	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/sysmon"
	"github.com/agbru/montcalc/internal/ui"
)

// runCalculate runs the chain on every selected engine, compares the
// results and reports them.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	engines := orchestration.GetEnginesToRun(a.Config, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(engines, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter, progressOut = orchestration.NullProgressReporter{}, io.Discard
	}

	logger := logging.NewLogger(a.ErrWriter, "orchestration")
	mem := metrics.NewMemoryCollector()
	recorder := metrics.NewRecorder(mem)
	sampler := sysmon.NewSampler(1)
	sampler.Sample()

	expected, err := a.expectedFunc()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	req := orchestration.ChainRequest{
		A:           a.Config.A,
		B:           a.Config.B,
		Steps:       a.Config.Steps,
		Parallelism: a.Config.Parallelism,
	}
	before := mem.Snapshot()
	start := time.Now()
	results := orchestration.ExecuteChains(ctx, engines, req, reporter, progressOut,
		orchestration.WithRecorder(recorder),
		orchestration.WithLogger(logger),
		orchestration.WithProgressLogger(logger.Zerolog()))
	elapsed := time.Since(start)
	delta := mem.Snapshot().Since(before)
	logger.Debug("run finished", logging.Int("engines", len(engines)), logging.Duration("elapsed", elapsed))

	groups, compareErr := orchestration.CompareResults(results, expected)
	for _, m := range orchestration.Mismatches(compareErr) {
		recorder.ObserveMismatch(m.Group)
		logger.Info("result mismatch", logging.String("shape", m.Group))
	}

	exitCode := a.present(results, groups, compareErr, expected, out)

	if code := a.export(results, groups, compareErr, recorder, out); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(delta, a.Config.Steps*len(engines), out)
		cli.DisplaySystemStats(sampler.Sample(), out)
	}
	return exitCode
}

// present prints the results. Quiet mode prints only the agreed values, or
// the error on ErrWriter.
func (a *Application) present(results []orchestration.ChainResult, groups []orchestration.GroupSummary, compareErr error, expected orchestration.ExpectedFunc, out io.Writer) int {
	if !a.Config.Quiet {
		opts := orchestration.PresentationOptions{
			Field:   a.Config.ModulusLabel(),
			Steps:   a.Config.Steps,
			Verbose: a.Config.Verbose,
			Verify:  a.Config.Verify,
		}
		presenter := cli.CLIResultPresenter{}
		return orchestration.AnalyzeComparisonResults(results, opts, expected, presenter, presenter, out)
	}

	if compareErr != nil {
		return apperrors.HandleCalculationError(compareErr, 0, a.ErrWriter, nil)
	}
	if len(groups) == 0 {
		err := errors.New("no engine could complete the chain")
		for _, r := range results {
			if r.Err != nil {
				err = r.Err
				break
			}
		}
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, nil)
	}
	cli.DisplayQuietResult(out, groups)
	return apperrors.ExitSuccess
}

// export writes the report and metrics files when requested.
func (a *Application) export(results []orchestration.ChainResult, groups []orchestration.GroupSummary, compareErr error, recorder *metrics.Recorder, out io.Writer) int {
	code := apperrors.ExitSuccess
	if a.Config.OutputFile != "" {
		modulus, _ := a.Config.ModulusHex()
		report := cli.BuildReport(a.Config, modulus, results, groups, compareErr)
		if err := cli.WriteReportToFile(a.Config.OutputFile, report, a.Config.OutputFormat); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			code = apperrors.ExitErrorGeneric
		} else if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
	}
	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}
