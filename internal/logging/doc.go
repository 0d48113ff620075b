// Package logging assembles the structured slog loggers used across silencecut.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context helpers so every line emitted during a trim run carries
// the run identifier. A no-op logger is provided for tests and for wiring code
// that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
