// Package pipeline wires the generation steps into a registry and runs them
// for one episode.
//
// NewRegistry is the single place steps are registered. Runner executes the
// requested step names in the order given, without deduplication or
// reordering, and stops at the first failure; artifacts written by earlier
// steps are kept. Runs against the same episode are serialized with an
// advisory file lock, and each run is recorded in the history ledger when a
// Recorder is configured.
package pipeline
