package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/montcalc/internal/engine"
	"github.com/agbru/montcalc/internal/format"
	"github.com/agbru/montcalc/internal/progress"
	"github.com/agbru/montcalc/internal/ui"
)

const hexDigits = 64

// REPLConfig holds the settings of an interactive session.
type REPLConfig struct {
	// Field labels the modulus in the banner and status.
	Field string
	// A and B seed the chain command.
	A, B string
	// Timeout bounds each chain command.
	Timeout time.Duration
	// FullHex disables truncation of displayed values.
	FullHex bool
}

// REPL is an interactive session over the engines of one factory.
type REPL struct {
	config  REPLConfig
	factory engine.Factory
	// current is the selected engine name, or "" for every engine.
	current string
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a session running every engine of factory.
func NewREPL(factory engine.Factory, config REPLConfig) *REPL {
	return &REPL{
		config:  config,
		factory: factory,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads commands until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"mont> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%smontcalc interactive mode%s over %s%s%s (%d engines)\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorMagenta(), r.config.Field, ui.ColorReset(), len(r.factory.List()))
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smul <a> <b>%s       - a*b*R^-1 mod p on the selected engines\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %snoreduce <a> <b>%s  - same, without the final subtraction\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %schain <n>%s         - run an n-step chain from the configured operands\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sengines%s           - list engines\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %suse <name|all>%s    - select one engine or all of them\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s               - toggle full hex display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s            - show the session settings\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - show this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - leave interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one command line. It returns false on exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "mul", "m":
		r.cmdMultiply(args, false)
	case "noreduce", "nr":
		r.cmdMultiply(args, true)
	case "chain", "c":
		r.cmdChain(ctx, args)
	case "engines", "list", "ls":
		r.cmdEngines()
	case "use":
		r.cmdUse(args)
	case "hex":
		r.config.FullHex = !r.config.FullHex
		fmt.Fprintf(r.out, "Full hex display: %s%t%s\n", ui.ColorGreen(), r.config.FullHex, ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// selected returns the engines commands run on, in name order.
func (r *REPL) selected() []engine.Engine {
	names := r.factory.List()
	if r.current != "" {
		names = []string{r.current}
	}
	engines := make([]engine.Engine, 0, len(names))
	for _, name := range names {
		if e, err := r.factory.Get(name); err == nil {
			engines = append(engines, e)
		}
	}
	return engines
}

func (r *REPL) display(hex string) string {
	if r.config.FullHex {
		return hex
	}
	return format.TruncateHex(hex, HexDisplayEdges)
}

// agreement tracks the first result per Montgomery radix. Engines sharing
// R must agree; 5x51 uses R = 2^255 and is compared only with itself.
type agreement map[uint]string

func (g agreement) status(e engine.Engine, value string) string {
	bits := e.Shape().TotalBits()
	first, seen := g[bits]
	if !seen {
		g[bits] = value
		return ui.ColorGreen() + "✓" + ui.ColorReset()
	}
	if first != value {
		return ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
	}
	return ui.ColorGreen() + "✓" + ui.ColorReset()
}

// padOperand strips an 0x prefix and left-pads short values to the
// 64-digit encoding the engines expect.
func padOperand(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if n := len(s); n > 0 && n < hexDigits {
		s = strings.Repeat("0", hexDigits-n) + s
	}
	return s
}

func (r *REPL) cmdMultiply(args []string, noReduce bool) {
	if len(args) != 2 {
		name := "mul"
		if noReduce {
			name = "noreduce"
		}
		fmt.Fprintf(r.out, "%sUsage: %s <a> <b>%s\n", ui.ColorRed(), name, ui.ColorReset())
		return
	}
	a, b := padOperand(args[0]), padOperand(args[1])

	seen := agreement{}
	for _, e := range r.selected() {
		var (
			value string
			err   error
		)
		if noReduce {
			value, err = e.MultiplyNoReduce(a, b)
		} else {
			value, err = e.Multiply(a, b)
		}
		if err != nil {
			fmt.Fprintf(r.out, "  %s%-16s%s: %sError - %v%s\n", ui.ColorYellow(), e.Name(), ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		// unreduced values may legitimately differ by p
		status := ""
		if !noReduce {
			status = " " + seen.status(e, value)
		}
		fmt.Fprintf(r.out, "  %s%-16s%s: 0x%s%s\n", ui.ColorYellow(), e.Name(), ui.ColorReset(), r.display(value), status)
	}
}

func (r *REPL) cmdChain(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: chain <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps <= 0 {
		fmt.Fprintf(r.out, "%sInvalid step count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	engines := r.selected()
	fmt.Fprintf(r.out, "Chain of %s%d%s steps on %d engines...\n", ui.ColorMagenta(), steps, ui.ColorReset(), len(engines))

	seen := agreement{}
	for _, e := range engines {
		value, elapsed, err := r.runChain(ctx, e, steps)
		if err != nil {
			fmt.Fprintf(r.out, "  %s%-16s%s: %sError - %v%s\n", ui.ColorYellow(), e.Name(), ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			if ctx.Err() != nil {
				return
			}
			continue
		}
		fmt.Fprintf(r.out, "  %s%-16s%s: %s%10s%s %s 0x%s\n",
			ui.ColorYellow(), e.Name(), ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(elapsed), ui.ColorReset(),
			seen.status(e, value), r.display(value))
	}
}

// runChain runs one engine's chain with a progress display.
func (r *REPL) runChain(ctx context.Context, e engine.Engine, steps int) (string, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	progressChan := make(chan progress.ProgressUpdate, 10)
	observer := progress.NewChannelObserver(progressChan)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	value, err := e.Chain(ctx, r.config.A, r.config.B, steps, func(p float64) { observer.Update(0, p) })
	elapsed := time.Since(start)
	close(progressChan)
	wg.Wait()
	return value, elapsed, err
}

func (r *REPL) cmdEngines() {
	fmt.Fprintf(r.out, "\n%sEngines over %s:%s\n", ui.ColorBold(), r.config.Field, ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.current {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdUse(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: use <name|all>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := strings.ToLower(args[0])
	if name == "all" {
		r.current = ""
		fmt.Fprintf(r.out, "Running %sall engines%s\n", ui.ColorGreen(), ui.ColorReset())
		return
	}
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.current = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	current := r.current
	if current == "" {
		current = "all"
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Field:     %s%s%s\n", ui.ColorCyan(), r.config.Field, ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:    %s%s%s\n", ui.ColorCyan(), current, ui.ColorReset())
	fmt.Fprintf(r.out, "  Chain a:   %s0x%s%s\n", ui.ColorCyan(), r.display(r.config.A), ui.ColorReset())
	fmt.Fprintf(r.out, "  Chain b:   %s0x%s%s\n", ui.ColorCyan(), r.display(r.config.B), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:   %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Full hex:  %s%t%s\n", ui.ColorCyan(), r.config.FullHex, ui.ColorReset())
	fmt.Fprintln(r.out)
}
