package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/montcalc/internal/config"
	"github.com/agbru/montcalc/internal/engine"
	"github.com/agbru/montcalc/internal/format"
	"github.com/agbru/montcalc/internal/limb"
	"github.com/agbru/montcalc/internal/ui"
)

// PrintExecutionConfig displays the modulus, chain and environment of a run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Chain of %s%d%s multiplications over %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Steps, ui.ColorReset(),
		ui.ColorMagenta(), cfg.ModulusLabel(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Operands: a=0x%s b=0x%s\n", format.TruncateHex(cfg.A, HexDisplayEdges), format.TruncateHex(cfg.B, HexDisplayEdges))
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, parallelism %s%d%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Parallelism, ui.ColorReset())
	if cfg.Verbose {
		fmt.Fprintf(out, "CPU: %s\n", limb.Features())
	}
}

// PrintExecutionMode announces which engines are about to run.
func PrintExecutionMode(engines []engine.Engine, out io.Writer) {
	switch len(engines) {
	case 0:
		fmt.Fprintf(out, "Execution mode: %sno engine matches the selection%s.\n", ui.ColorRed(), ui.ColorReset())
		return
	case 1:
		fmt.Fprintf(out, "Execution mode: single chain with %s%s%s.\n", ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "Execution mode: parallel comparison of %d engines.\n", len(engines))
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
