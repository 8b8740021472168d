// Package format holds pure formatting helpers shared by the CLI and the TUI:
// durations, byte sizes, progress bars with ETA and hex truncation.
package format
