// Package logging assembles structured slog loggers and formatting helpers used
// across reel.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so step code can automatically tag log lines
// with run IDs, episode numbers, and step names. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
