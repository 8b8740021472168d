package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/format"
	"github.com/agbru/montcalc/internal/metrics"
	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/progress"
	"github.com/agbru/montcalc/internal/sysmon"
	"github.com/agbru/montcalc/internal/ui"
)

// CLIProgressReporter shows a spinner and progress bar while chains run.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIResultPresenter renders results as colored terminal text.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per engine. Column widths are
// measured on the visible text, so colored cells stay aligned.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ChainResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW, perOpW := len("Engine"), len("Duration"), len("Per op")
	for _, r := range results {
		nameW = max(nameW, lipgloss.Width(r.Name))
		durW = max(durW, lipgloss.Width(displayDuration(r.Duration)))
		perOpW = max(perOpW, lipgloss.Width(format.FormatPerOp(r.Duration, r.Steps)))
	}
	nameW, durW, perOpW = nameW+3, durW+3, perOpW+3

	fmt.Fprintln(out, ui.Header("Engine", nameW)+ui.Header("Duration", durW)+ui.Header("Per op", perOpW)+ui.Header("Status", 6))
	pal := ui.CurrentPalette()
	for _, r := range results {
		status := ui.Cell("✅ Success", 0, pal.Success)
		if r.Err != nil {
			status = ui.Cell(fmt.Sprintf("❌ Failure (%v)", r.Err), 0, pal.Error)
		}
		fmt.Fprintln(out,
			ui.Cell(r.Name, nameW, pal.Accent)+
				ui.Cell(displayDuration(r.Duration), durW, pal.Warning)+
				ui.Cell(format.FormatPerOp(r.Duration, r.Steps), perOpW, pal.Dim)+
				status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentGroup prints the agreed value of a shape group.
func (CLIResultPresenter) PresentGroup(g orchestration.GroupSummary, opts orchestration.PresentationOptions, out io.Writer) {
	value := g.Result
	if !opts.Verbose {
		value = format.TruncateHex(value, HexDisplayEdges)
	}
	fmt.Fprintf(out, "\n%s%s%s: %s%d%s engine(s) agree, fastest %s%s%s in %s\n",
		ui.ColorBold(), g.Shape, ui.ColorReset(),
		ui.ColorGreen(), g.Engines, ui.ColorReset(),
		ui.ColorCyan(), g.Fastest, ui.ColorReset(),
		displayDuration(g.Duration))
	fmt.Fprintf(out, "  chain(%d) = 0x%s\n", opts.Steps, value)
	switch {
	case g.Verified:
		fmt.Fprintf(out, "  %s✓ matches the arbitrary-precision oracle%s\n", ui.ColorGreen(), ui.ColorReset())
	case opts.Verify:
		fmt.Fprintf(out, "  %s! not verified%s\n", ui.ColorYellow(), ui.ColorReset())
	}
	if g.Failed > 0 {
		fmt.Fprintf(out, "  %s%d engine(s) failed%s\n", ui.ColorRed(), g.Failed, ui.ColorReset())
	}
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider feeds theme colors to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats prints the allocations made during the run. Kernels
// are expected to allocate nothing per multiplication.
func DisplayMemoryStats(delta metrics.MemoryDelta, multiplications int, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Total allocated:  %s\n", format.FormatBytes(delta.Bytes))
	fmt.Fprintf(out, "  Heap objects:     %s\n", format.FormatNumberString(fmt.Sprint(delta.Objects)))
	fmt.Fprintf(out, "  Allocs per op:    %.3f\n", delta.PerOp(multiplications))
	fmt.Fprintf(out, "  GC cycles:        %d\n", delta.GCs)
}

// DisplayQuietResult prints one "shape value" line per group.
func DisplayQuietResult(out io.Writer, groups []orchestration.GroupSummary) {
	for _, g := range groups {
		fmt.Fprintf(out, "%s %s\n", g.Shape, strings.ToLower(g.Result))
	}
}

// DisplaySystemStats prints a host and process sample.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nSystem Stats:\n")
	fmt.Fprintf(out, "  Host CPU:         %.1f%% of %d logical CPUs\n", s.CPUPercent, s.LogicalCPUs)
	fmt.Fprintf(out, "  Host memory:      %.1f%%\n", s.MemPercent)
	fmt.Fprintf(out, "  Process CPU:      %.1f%%\n", s.ProcCPU)
	fmt.Fprintf(out, "  Process RSS:      %s\n", format.FormatBytes(s.ProcRSS))
}
