// Package history keeps a SQLite ledger of pipeline runs and the outcome of
// every step they executed.
//
// The ledger is informational: the pipeline never reads it back to decide what
// to do, and a failure to record is logged by the caller rather than failing
// the run. Schema changes bump schemaVersion; users delete history.db to adopt
// a new schema.
package history
