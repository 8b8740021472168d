// Package config parses and validates the montcalc command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/field"
	"github.com/agbru/montcalc/internal/limb"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "MONTCALC_"

// Default operands are the first two inputs of the BN254 benchmark chain.
const (
	DefaultA = "14a9c2762b8ab0f20cb1096618a19a05d483d5405f405ef524524a41d90fff2f"
	DefaultB = "0aefa8fa0094edcbcd47dd061763108702bbdc704174a53b54507c8c28c69c77"
)

// Defaults for the remaining flags.
const (
	DefaultField   = "bn254"
	DefaultSteps   = 1024
	DefaultTimeout = time.Minute
	DefaultFormat  = "text"
	DefaultTheme   = "dark"
)

// OutputFormats lists the accepted values of --format.
var OutputFormats = []string{"text", "json", "yaml"}

// Themes lists the accepted values of --theme.
var Themes = []string{"dark", "light", "orange", "none"}

// AppConfig is the fully resolved configuration of one montcalc run.
type AppConfig struct {
	// Field is the preset name. Ignored when Modulus is set.
	Field string
	// Modulus is an explicit 64-digit hex modulus.
	Modulus string
	// Shapes is "all" or a comma-separated list such as "8x32,4x64".
	Shapes string
	// Algo is "all" or a comma-separated list of algorithm names.
	Algo string
	// A and B are the chain's starting operands in hex.
	A, B string
	// Steps is the chain length.
	Steps int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verify cross-checks every result against the math/big oracle.
	Verify bool
	// Quiet prints only the agreed result.
	Quiet bool
	// Verbose enables debug logging and full hex values.
	Verbose bool
	NoColor bool
	TUI     bool
	// REPL starts an interactive session instead of a single run. Timeout
	// then bounds each chain command.
	REPL bool
	// OutputFile receives the results in OutputFormat.
	OutputFile   string
	OutputFormat string
	// MetricsFile receives Prometheus metrics in text exposition format.
	MetricsFile string
	Theme       string
	// Parallelism caps the number of engines running at once.
	Parallelism int
}

// ModulusLabel returns the name used for the modulus in output.
func (c AppConfig) ModulusLabel() string {
	if c.Modulus != "" {
		return "custom"
	}
	return c.Field
}

// ModulusHex resolves the modulus to hex, from Modulus or the Field preset.
func (c AppConfig) ModulusHex() (string, error) {
	if c.Modulus != "" {
		return c.Modulus, nil
	}
	p, err := field.Lookup(c.Field)
	if err != nil {
		return "", err
	}
	return p.Hex, nil
}

// SelectedShapes expands Shapes into limb shapes.
func (c AppConfig) SelectedShapes() ([]limb.Shape, error) {
	if c.Shapes == "" || strings.EqualFold(c.Shapes, "all") {
		return limb.Shapes(), nil
	}
	var out []limb.Shape
	for _, name := range splitList(c.Shapes) {
		s, err := limb.ParseShape(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SelectedAlgorithms expands Algo into a list of names, or nil for all.
func (c AppConfig) SelectedAlgorithms() []string {
	if c.Algo == "" || strings.EqualFold(c.Algo, "all") {
		return nil
	}
	return splitList(c.Algo)
}

// Validate checks the configuration. algos lists the algorithm names the
// caller can run.
func (c AppConfig) Validate(algos []string) error {
	if c.Steps <= 0 {
		return apperrors.NewConfigError("--steps must be positive, got %d", c.Steps)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Parallelism < 0 {
		return apperrors.NewConfigError("--parallelism must not be negative, got %d", c.Parallelism)
	}
	if _, err := c.ModulusHex(); err != nil {
		return apperrors.NewConfigError("%v (known: %s)", err, strings.Join(presetNames(), ", "))
	}
	if _, err := c.SelectedShapes(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	for _, a := range c.SelectedAlgorithms() {
		if !slices.Contains(algos, a) {
			return apperrors.NewConfigError("unknown algorithm %q (available: %s)", a, strings.Join(algos, ", "))
		}
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return apperrors.NewConfigError("unknown --format %q (available: %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if !slices.Contains(Themes, c.Theme) {
		return apperrors.NewConfigError("unknown --theme %q (available: %s)", c.Theme, strings.Join(Themes, ", "))
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui are mutually exclusive")
	}
	if c.REPL && (c.TUI || c.Quiet) {
		return apperrors.NewConfigError("--repl cannot be combined with --tui or --quiet")
	}
	return nil
}

// ParseConfig parses args into an AppConfig. Flag errors and usage go to
// errWriter. Values not given on the command line are taken from MONTCALC_*
// environment variables, then from the defaults.
func ParseConfig(program string, args []string, errWriter io.Writer, algos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Field, "field", DefaultField, "Named modulus ("+strings.Join(presetNames(), ", ")+").")
	fs.StringVar(&cfg.Modulus, "modulus", "", "Explicit odd modulus as 64 hex digits (overrides --field).")
	fs.StringVar(&cfg.Shapes, "shapes", "all", "Limb shapes to run: 'all' or a list of "+shapeNames()+".")
	fs.StringVar(&cfg.Algo, "algo", "all", "Algorithms to run: 'all' or a list of "+strings.Join(algos, ", ")+".")
	fs.StringVar(&cfg.A, "a", DefaultA, "First chain operand (hex, below the modulus).")
	fs.StringVar(&cfg.B, "b", DefaultB, "Second chain operand (hex, below the modulus).")
	fs.IntVar(&cfg.Steps, "steps", DefaultSteps, "Number of chained multiplications.")
	fs.IntVar(&cfg.Steps, "n", DefaultSteps, "Shorthand for --steps.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run (e.g. 30s, 5m).")
	fs.BoolVar(&cfg.Verify, "verify", false, "Check every result against the arbitrary-precision oracle.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Debug logging and full hex values.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run the interactive dashboard.")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start an interactive session (mul, noreduce, chain, engines).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write results to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.OutputFormat, "format", DefaultFormat, "Output file format ("+strings.Join(OutputFormats, ", ")+").")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run.")
	fs.StringVar(&cfg.Theme, "theme", DefaultTheme, "Color theme ("+strings.Join(Themes, ", ")+").")
	fs.IntVar(&cfg.Parallelism, "parallelism", 0, "Maximum concurrent engines (0 = number of CPUs).")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", program)
		fmt.Fprintf(errWriter, "Runs a chain of Montgomery multiplications with each selected\nalgorithm and limb shape, and checks that all of them agree.\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables %s* override defaults but not flags.\n", EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyDefaultParallelism(cfg)

	if err := cfg.Validate(algos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func presetNames() []string {
	var names []string
	for _, p := range field.Known() {
		names = append(names, p.Name)
	}
	return names
}

func shapeNames() string {
	var names []string
	for _, s := range limb.Shapes() {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
