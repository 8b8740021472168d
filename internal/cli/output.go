package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/montcalc/internal/config"
	"github.com/agbru/montcalc/internal/orchestration"
)

// Report is the machine-readable record of a run written by --output.
type Report struct {
	Generated time.Time      `json:"generated" yaml:"generated"`
	Field     string         `json:"field" yaml:"field"`
	Modulus   string         `json:"modulus" yaml:"modulus"`
	A         string         `json:"a" yaml:"a"`
	B         string         `json:"b" yaml:"b"`
	Steps     int            `json:"steps" yaml:"steps"`
	Verified  bool           `json:"verified" yaml:"verified"`
	Status    string         `json:"status" yaml:"status"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	Groups    []GroupRecord  `json:"groups" yaml:"groups"`
	Engines   []EngineRecord `json:"engines" yaml:"engines"`
}

// GroupRecord is the agreed result of one shape.
type GroupRecord struct {
	Shape    string `json:"shape" yaml:"shape"`
	Result   string `json:"result" yaml:"result"`
	Engines  int    `json:"engines" yaml:"engines"`
	Fastest  string `json:"fastest" yaml:"fastest"`
	Verified bool   `json:"verified" yaml:"verified"`
}

// EngineRecord is one engine's chain.
type EngineRecord struct {
	Name       string  `json:"name" yaml:"name"`
	Algorithm  string  `json:"algorithm" yaml:"algorithm"`
	Shape      string  `json:"shape" yaml:"shape"`
	Result     string  `json:"result,omitempty" yaml:"result,omitempty"`
	DurationNs int64   `json:"duration_ns" yaml:"duration_ns"`
	NsPerOp    float64 `json:"ns_per_op" yaml:"ns_per_op"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report status values.
const (
	StatusSuccess  = "success"
	StatusMismatch = "mismatch"
	StatusFailure  = "failure"
)

// BuildReport assembles a Report. compareErr is the error returned by
// orchestration.CompareResults.
func BuildReport(cfg config.AppConfig, modulusHex string, results []orchestration.ChainResult, groups []orchestration.GroupSummary, compareErr error) Report {
	r := Report{
		Generated: time.Now().UTC(),
		Field:     cfg.ModulusLabel(),
		Modulus:   modulusHex,
		A:         cfg.A,
		B:         cfg.B,
		Steps:     cfg.Steps,
		Verified:  cfg.Verify,
		Status:    StatusSuccess,
	}
	for _, g := range groups {
		r.Groups = append(r.Groups, GroupRecord{
			Shape: g.Shape, Result: g.Result, Engines: g.Engines, Fastest: g.Fastest, Verified: g.Verified,
		})
	}
	for _, res := range results {
		rec := EngineRecord{
			Name:       res.Name,
			Algorithm:  res.Algorithm,
			Shape:      res.Shape,
			Result:     res.Result,
			DurationNs: res.Duration.Nanoseconds(),
		}
		if res.Steps > 0 {
			rec.NsPerOp = float64(res.Duration.Nanoseconds()) / float64(res.Steps)
		}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
		r.Engines = append(r.Engines, rec)
	}
	switch {
	case compareErr != nil:
		r.Status, r.Error = StatusMismatch, compareErr.Error()
	case len(groups) == 0:
		r.Status = StatusFailure
	}
	return r
}

// EncodeReport writes r to w in the given format (text, json or yaml).
func EncodeReport(w io.Writer, r Report, outputFormat string) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return encodeText(w, r)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}

func encodeText(w io.Writer, r Report) error {
	fmt.Fprintf(w, "# Montgomery Chain Result\n")
	fmt.Fprintf(w, "# Generated: %s\n", r.Generated.Format(time.RFC3339))
	fmt.Fprintf(w, "# Field: %s\n", r.Field)
	fmt.Fprintf(w, "# Modulus: %s\n", r.Modulus)
	fmt.Fprintf(w, "# Steps: %d\n", r.Steps)
	fmt.Fprintf(w, "# Status: %s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintf(w, "# Error: %s\n", r.Error)
	}
	fmt.Fprintf(w, "\n")
	for _, g := range r.Groups {
		fmt.Fprintf(w, "%s = %s\n", g.Shape, g.Result)
	}
	fmt.Fprintf(w, "\n")
	for _, e := range r.Engines {
		if e.Error != "" {
			fmt.Fprintf(w, "%-16s error: %s\n", e.Name, e.Error)
			continue
		}
		_, err := fmt.Fprintf(w, "%-16s %12dns %10.1fns/op\n", e.Name, e.DurationNs, e.NsPerOp)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteReportToFile writes r to path, creating parent directories.
func WriteReportToFile(path string, r Report, outputFormat string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := EncodeReport(f, r, outputFormat); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
