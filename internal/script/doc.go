// Package script renders the episode script scaffold: one block per scene of
// the fixed scene table, with dialogue attributed to the characters named in
// the brief.
package script
