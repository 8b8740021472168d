package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates engines or the oracle disagree on a result.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an invalid flag,
// an unknown field preset or a malformed operand.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while an engine was running a
// chain, preserving the original cause.
type CalculationError struct {
	// Engine is the name of the engine that failed, if known.
	Engine string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string {
	if e.Engine == "" {
		return e.Cause.Error()
	}
	return e.Engine + ": " + e.Cause.Error()
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its time budget.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation. Cause,
// when set, is a sentinel that callers can match with errors.Is.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
	// Cause is the optional sentinel behind the failure.
	Cause error
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap returns the sentinel cause, if any.
func (e ValidationError) Unwrap() error { return e.Cause }

// MismatchError reports engines that produced different results for the
// same input, or a result that disagrees with the reference oracle.
type MismatchError struct {
	// Group is the shape the disagreeing engines share.
	Group string
	// Results maps engine name to the result it produced.
	Results map[string]string
}

// Error lists the disagreeing engines.
func (e MismatchError) Error() string {
	names := make([]string, 0, len(e.Results))
	for name := range e.Results {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	fmt.Fprintf(&b, "result mismatch in %s:", e.Group)
	for _, n := range names {
		fmt.Fprintf(&b, " %s=%s", n, e.Results[n])
	}
	return b.String()
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies terminal color escapes to HandleCalculationError.
// A nil provider prints without color.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError reports err on out and maps it to an exit code.
// A nil error maps to ExitSuccess.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration)
	}

	var (
		timeout  TimeoutError
		mismatch MismatchError
		cfg      ConfigError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The run exceeded its time limit%s.%s\n", yellow, elapsed, reset)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled by user%s.%s\n", yellow, elapsed, reset)
		return ExitErrorCanceled
	case errors.As(err, &mismatch):
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", red, mismatch, reset)
		return ExitErrorMismatch
	case errors.As(err, &cfg):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", red, cfg, reset)
		return ExitErrorConfig
	default:
		fmt.Fprintf(out, "%sStatus: Failure. Unexpected error: %v%s\n", red, err, reset)
		return ExitErrorGeneric
	}
}
