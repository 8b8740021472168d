package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/montcalc/internal/errors"
)

var testAlgos = []string{"acar", "bh23", "bm17", "carrylast", "domb", "slgck14"}

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("montcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Field != DefaultField || cfg.Steps != DefaultSteps || cfg.Timeout != DefaultTimeout {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.A != DefaultA || cfg.B != DefaultB {
		t.Errorf("default operands not applied: %q %q", cfg.A, cfg.B)
	}
	if cfg.Parallelism < 1 {
		t.Errorf("Parallelism = %d, want >= 1", cfg.Parallelism)
	}
	shapes, err := cfg.SelectedShapes()
	if err != nil || len(shapes) != 3 {
		t.Errorf("SelectedShapes() = %v, %v; want all three shapes", shapes, err)
	}
	if cfg.SelectedAlgorithms() != nil {
		t.Errorf("SelectedAlgorithms() = %v, want nil for all", cfg.SelectedAlgorithms())
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()
	args := []string{
		"--field", "bls12-377", "--shapes", "8x32, 4x64", "--algo", "ACAR,domb",
		"-n", "16", "--timeout", "5s", "--verify", "-q", "--format", "yaml",
		"-o", "out.yaml", "--parallelism", "2",
	}
	cfg, err := ParseConfig("montcalc", args, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Field != "bls12-377" || cfg.Steps != 16 || cfg.Timeout != 5*time.Second {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !cfg.Verify || !cfg.Quiet || cfg.OutputFile != "out.yaml" || cfg.OutputFormat != "yaml" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if got := cfg.SelectedAlgorithms(); len(got) != 2 || got[0] != "acar" || got[1] != "domb" {
		t.Errorf("SelectedAlgorithms() = %v", got)
	}
	shapes, err := cfg.SelectedShapes()
	if err != nil || len(shapes) != 2 || shapes[0].Name != "8x32" || shapes[1].Name != "4x64" {
		t.Errorf("SelectedShapes() = %v, %v", shapes, err)
	}
	if cfg.Parallelism != 2 {
		t.Errorf("Parallelism = %d, want 2", cfg.Parallelism)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"zero steps", []string{"--steps", "0"}},
		{"negative timeout", []string{"--timeout", "-1s"}},
		{"unknown field", []string{"--field", "p999"}},
		{"unknown shape", []string{"--shapes", "3x86"}},
		{"unknown algorithm", []string{"--algo", "karatsuba"}},
		{"unknown format", []string{"--format", "xml"}},
		{"unknown theme", []string{"--theme", "neon"}},
		{"quiet with tui", []string{"--quiet", "--tui"}},
		{"repl with tui", []string{"--repl", "--tui"}},
		{"repl with quiet", []string{"--repl", "-q"}},
		{"positional args", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			_, err := ParseConfig("montcalc", tt.args, &buf, testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := ParseConfig("montcalc", []string{"-h"}, &buf, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("MONTCALC_")) {
		t.Errorf("usage should mention the environment prefix, got %q", buf.String())
	}
}

// The caller reports validation errors, so ParseConfig must not print them.
func TestParseConfigValidationErrorIsNotPrinted(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := ParseConfig("montcalc", []string{"-n", "0"}, &buf, testAlgos)
	if err == nil || !strings.Contains(err.Error(), "--steps must be positive") {
		t.Fatalf("error = %v, want steps validation error", err)
	}
	if buf.Len() != 0 {
		t.Errorf("ParseConfig wrote %q, want nothing", buf.String())
	}
}

func TestModulusHex(t *testing.T) {
	t.Parallel()
	custom := AppConfig{Field: "bn254", Modulus: "0f"}
	if got, _ := custom.ModulusHex(); got != "0f" {
		t.Errorf("explicit modulus should win, got %q", got)
	}
	if custom.ModulusLabel() != "custom" {
		t.Errorf("ModulusLabel() = %q, want custom", custom.ModulusLabel())
	}
	named := AppConfig{Field: "BN254"}
	got, err := named.ModulusHex()
	if err != nil || got[:8] != "30644e72" {
		t.Errorf("ModulusHex() = %q, %v", got, err)
	}
}

// Environment tests mutate process state and cannot run in parallel.

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MONTCALC_STEPS", "64")
	t.Setenv("MONTCALC_ALGO", "bm17")
	t.Setenv("MONTCALC_VERIFY", "yes")
	t.Setenv("MONTCALC_TIMEOUT", "not-a-duration")
	t.Setenv("MONTCALC_REPL", "1")

	cfg, err := ParseConfig("montcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Steps != 64 || cfg.Algo != "bm17" || !cfg.Verify || !cfg.REPL {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("invalid duration should keep default, got %s", cfg.Timeout)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("MONTCALC_STEPS", "64")
	t.Setenv("MONTCALC_QUIET", "true")

	cfg, err := ParseConfig("montcalc", []string{"-n", "8", "--quiet=false"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Steps != 8 {
		t.Errorf("flag should win over env, Steps = %d", cfg.Steps)
	}
	if cfg.Quiet {
		t.Error("explicit --quiet=false should win over MONTCALC_QUIET")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		def      bool
		expected bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.expected {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.in, tt.def, got)
		}
	}
}

func TestApplyDefaultParallelism(t *testing.T) {
	t.Parallel()
	if got := ApplyDefaultParallelism(AppConfig{Parallelism: 3}); got.Parallelism != 3 {
		t.Errorf("explicit parallelism overwritten: %d", got.Parallelism)
	}
	if got := ApplyDefaultParallelism(AppConfig{}); got.Parallelism != EstimateParallelism() {
		t.Errorf("default parallelism = %d, want %d", got.Parallelism, EstimateParallelism())
	}
}
