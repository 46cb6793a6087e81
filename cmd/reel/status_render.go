package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"reel/internal/layout"
	"reel/internal/stage"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// stepStatus labels one line of run output.
type stepStatus int

const (
	stepWrote stepStatus = iota
	stepSkipped
	stepFailed
)

var stepStatusStyles = map[stepStatus]struct {
	label string
	color string
}{
	stepWrote:   {"WROTE", ansiGreen},
	stepSkipped: {"SKIP", ansiDim},
	stepFailed:  {"FAIL", ansiRed},
}

func statusForOutcome(outcome string) stepStatus {
	if outcome == stage.OutcomeSkipped.String() {
		return stepSkipped
	}
	return stepWrote
}

// renderStepLine prints "  WROTE  shotlist  12ms" with the label padded so
// step names line up.
func renderStepLine(step string, status stepStatus, detail string, colorize bool) string {
	style := stepStatusStyles[status]
	label := fmt.Sprintf("%-5s", style.label)
	if colorize {
		label = style.color + label + ansiReset
	}
	line := fmt.Sprintf("  %s  %-8s  %s", label, step, detail)
	return strings.TrimRight(line, " ")
}

func renderRunHeader(episode int, runID string, colorize bool) string {
	title := layout.Label(episode)
	if runID != "" {
		title += " run " + runID
	}
	if colorize {
		return ansiBold + title + ansiReset
	}
	return title
}

// renderField prints one aligned "label value" line of a detail block.
func renderField(label string, value any) string {
	return fmt.Sprintf("  %-11s %v", label+":", value)
}

// shouldColorize reports whether w is a terminal and NO_COLOR is unset.
func shouldColorize(w io.Writer) bool {
	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
