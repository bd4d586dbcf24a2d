// Package logging assembles structured slog loggers and formatting helpers used
// across tagreview.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine code can tag log lines
// with record ids, import batch ids, and the CLI session id. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
