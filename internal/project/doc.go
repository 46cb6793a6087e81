// Package project reads the static production inputs that live in a project
// tree: the series bible, the platform profile, the budget profile, and the
// per-episode brief.
//
// All files are YAML and all are optional. A missing file yields the zero
// value (or, for the budget, documented defaults) so that a fresh project can
// run the pipeline end to end before any creative material has been written.
// Text fields are normalized to NFC so that briefs authored on different
// systems render identically.
package project
