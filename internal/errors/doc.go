// Package apperrors defines the error types and exit codes shared by the
// montcalc command and its internal packages.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w. Every type that carries a
// cause implements Unwrap so that errors.Is and errors.As see through it.
package apperrors
