// Package logging provides a small structured logging interface for montcalc.
// Components log through Logger; the command backs it with zerolog, one
// JSON object per line, tagged with the emitting component.
package logging
