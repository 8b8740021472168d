// Package orchestration runs the selected engines concurrently on the same
// chain, then compares their results shape by shape and, optionally,
// against the arbitrary-precision oracle. Presentation is delegated to the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
