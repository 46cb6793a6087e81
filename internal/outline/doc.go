// Package outline renders episodes/epNNNN/outline.md from the episode brief and
// the series bible's structural beats.
package outline
