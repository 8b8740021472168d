package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/montcalc/internal/cli"
	"github.com/agbru/montcalc/internal/config"
	"github.com/agbru/montcalc/internal/engine"
	apperrors "github.com/agbru/montcalc/internal/errors"
	"github.com/agbru/montcalc/internal/oracle"
	"github.com/agbru/montcalc/internal/orchestration"
	"github.com/agbru/montcalc/internal/tui"
	"github.com/agbru/montcalc/internal/ui"
)

// Application represents the montcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   engine.Factory
	ErrWriter io.Writer
	// In feeds the interactive session. Defaults to os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom engine Factory for the application.
func WithFactory(f engine.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader the interactive session reads commands from.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "montcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, algorithmNames())
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Factory == nil {
		factory, err := defaultFactory(cfg)
		if err != nil {
			return nil, err
		}
		app.Factory = factory
	}
	return app, nil
}

func algorithmNames() []string {
	algs := engine.Algorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = string(a)
	}
	return names
}

// defaultFactory builds every engine the configured modulus supports. A
// modulus the kernels cannot use is a configuration error.
func defaultFactory(cfg config.AppConfig) (engine.Factory, error) {
	modulus, err := cfg.ModulusHex()
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	shapes, err := cfg.SelectedShapes()
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	factory, err := engine.NewDefaultFactory(cfg.ModulusLabel(), modulus, shapes)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid modulus: %v", err)
	}
	if err := validateOperands(factory, cfg.A, cfg.B); err != nil {
		return nil, err
	}
	return factory, nil
}

// validateOperands rejects operands that some engine cannot decode or that
// are not below the modulus, before any chain starts.
func validateOperands(f engine.Factory, a, b string) error {
	for _, name := range f.List() {
		e, err := f.Get(name)
		if err != nil {
			return err
		}
		if _, err := e.Multiply(a, b); err != nil {
			return apperrors.NewConfigError("invalid operand for %s: %v", name, err)
		}
	}
	return nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	if a.Config.REPL {
		return a.runREPL(ctx, out)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runCalculate(ctx, out)
}

// runREPL starts an interactive session on stdin. --timeout bounds each
// chain command rather than the session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Field:   a.Config.ModulusLabel(),
		A:       a.Config.A,
		B:       a.Config.B,
		Timeout: a.Config.Timeout,
		FullHex: a.Config.Verbose,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	engines := orchestration.GetEnginesToRun(a.Config, a.Factory)
	expected, err := a.expectedFunc()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, nil)
	}
	return tui.Run(ctx, engines, a.Config, expected, Version)
}

// expectedFunc returns the oracle check for --verify, or nil. The oracle
// value depends only on R, so it is computed once per radix width.
func (a *Application) expectedFunc() (orchestration.ExpectedFunc, error) {
	if !a.Config.Verify {
		return nil, nil
	}
	modulus, err := a.Config.ModulusHex()
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	shapes, err := a.Config.SelectedShapes()
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	byBits := map[uint]string{}
	byShape := map[string]string{}
	for _, s := range shapes {
		bits := s.TotalBits()
		if _, ok := byBits[bits]; !ok {
			v, err := oracle.ChainHex(a.Config.A, a.Config.B, modulus, bits, a.Config.Steps)
			if err != nil {
				return nil, apperrors.NewConfigError("%v", err)
			}
			byBits[bits] = v
		}
		byShape[s.Name] = byBits[bits]
	}
	return func(shape string) (string, error) {
		v, ok := byShape[shape]
		if !ok {
			return "", apperrors.NewConfigError("no oracle value for shape %s", shape)
		}
		return v, nil
	}, nil
}

// IsHelpError reports whether err comes from --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
