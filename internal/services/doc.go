// Package services defines shared utilities consumed by the pipeline steps and
// the surfaces that drive them.
//
// Key responsibilities:
//   - Context helpers that stamp episode numbers, step names, and run
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (configuration, not found, validation, io) with errors.Is.
//
// Use these helpers when wiring new step logic so error reporting and
// observability stay uniform across the pipeline.
package services
