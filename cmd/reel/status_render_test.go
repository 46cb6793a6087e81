package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"reel/internal/stage"
)

func TestRenderStepLine(t *testing.T) {
	tests := []struct {
		name   string
		status stepStatus
		detail string
		want   string
	}{
		{name: "shotlist", status: stepWrote, detail: "3ms", want: "  WROTE  shotlist  3ms"},
		{name: "outline", status: stepSkipped, detail: "0s", want: "  SKIP   outline   0s"},
		{name: "package", status: stepFailed, detail: "", want: "  FAIL   package"},
	}
	for _, tt := range tests {
		if got := renderStepLine(tt.name, tt.status, tt.detail, false); got != tt.want {
			t.Errorf("renderStepLine(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	colored := renderStepLine("package", stepFailed, "stopped", true)
	if !strings.HasPrefix(colored, "  "+ansiRed+"FAIL ") || !strings.Contains(colored, ansiReset+"  package") {
		t.Fatalf("expected red label, got %q", colored)
	}
}

func TestStatusForOutcome(t *testing.T) {
	if statusForOutcome(stage.OutcomeWrote.String()) != stepWrote {
		t.Fatal("wrote outcome should render as WROTE")
	}
	if statusForOutcome(stage.OutcomeSkipped.String()) != stepSkipped {
		t.Fatal("skipped outcome should render as SKIP")
	}
}

func TestRenderRunHeader(t *testing.T) {
	if got := renderRunHeader(1, "abc", false); got != "EP0001 run abc" {
		t.Fatalf("got %q", got)
	}
	if got := renderRunHeader(12, "", true); got != ansiBold+"EP0012"+ansiReset {
		t.Fatalf("got %q", got)
	}
}

func TestRenderTableFooter(t *testing.T) {
	out := renderTable(
		[]column{{header: "Scene"}, {header: "Shots", numeric: true}},
		[][]string{{"SC01", "35"}, {"SC02"}},
		[]string{"Total", "35"},
	)
	for _, want := range []string{"SCENE", "SC01", "SC02", "TOTAL", "35"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("no columns should render nothing")
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestShouldColorizeHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if shouldColorize(os.Stdout) {
		t.Fatal("NO_COLOR must disable color")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("短文本", 10); got != "短文本" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("got %q", got)
	}
}
