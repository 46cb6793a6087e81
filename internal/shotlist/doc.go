// Package shotlist builds, encodes, and summarizes the per-episode shot list.
//
// Build distributes a fixed shot budget across the scene table by weight,
// spreads the curated video shots evenly inside their scenes, synthesizes the
// remaining storyboard shots from per-scene vocabularies with a generator
// seeded by the episode number, and stretches or trims the final shot so the
// episode runs exactly TargetRuntimeSec. The same episode and budget always
// produce the same rows.
//
// The CSV column order (Header) is an external contract shared with the
// renderer tooling; changing it is a breaking change.
package shotlist
