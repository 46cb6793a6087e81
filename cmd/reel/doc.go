// Package main hosts the reel CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds a pipeline
// runner backed by the history ledger, and exposes the pipeline, the run
// history, shot-list summaries, and the HTTP façade. Generation logic lives in
// the internal packages; commands here only parse flags and render results.
package main
