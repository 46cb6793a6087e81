package shotlist_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"reel/internal/layout"
	"reel/internal/logging"
	"reel/internal/shotlist"
	"reel/internal/stage"
)

func writeBudget(t *testing.T, root, body string) {
	t.Helper()
	path := filepath.Join(root, "specs", "budget.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStepWritesThenSkips(t *testing.T) {
	root := t.TempDir()
	step := shotlist.NewStep(logging.NewNop())
	ctx := context.Background()
	sc := stage.NewContext(root, 1, []string{shotlist.StepName}, false)

	outcome, err := step.Run(ctx, sc)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if outcome != stage.OutcomeWrote {
		t.Fatalf("first run outcome = %s", outcome)
	}
	path := layout.NewEpisode(root, 1).Path(layout.ShotlistFile)
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	outcome, err = step.Run(ctx, sc)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if outcome != stage.OutcomeSkipped {
		t.Fatalf("second run outcome = %s", outcome)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("skipped run changed shotlist.csv")
	}

	rows, err := shotlist.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 250 {
		t.Fatalf("expected 250 rows, got %d", len(rows))
	}
}

func TestStepSkipLeavesHandEditsAlone(t *testing.T) {
	root := t.TempDir()
	path := layout.NewEpisode(root, 2).Path(layout.ShotlistFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	step := shotlist.NewStep(nil)

	outcome, err := step.Run(context.Background(), stage.NewContext(root, 2, nil, false))
	if err != nil || outcome != stage.OutcomeSkipped {
		t.Fatalf("outcome=%s err=%v", outcome, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "edited" {
		t.Fatal("existing shot list overwritten without force")
	}

	outcome, err = step.Run(context.Background(), stage.NewContext(root, 2, nil, true))
	if err != nil || outcome != stage.OutcomeWrote {
		t.Fatalf("forced outcome=%s err=%v", outcome, err)
	}
	if _, err := shotlist.ReadFile(path); err != nil {
		t.Fatalf("forced rewrite unreadable: %v", err)
	}
}

func TestStepHonoursBudgetFile(t *testing.T) {
	root := t.TempDir()
	writeBudget(t, root, "per_episode:\n  total_shots_target: 60\n  video_clips_target: 3\n  video_clip_duration_sec: 4\n")

	if _, err := shotlist.NewStep(nil).Run(context.Background(), stage.NewContext(root, 7, nil, false)); err != nil {
		t.Fatal(err)
	}
	rows, err := shotlist.ReadFile(layout.NewEpisode(root, 7).Path(layout.ShotlistFile))
	if err != nil {
		t.Fatal(err)
	}
	sum := shotlist.Summarize(rows)
	if sum.Shots != 60 || sum.Video != 3 || sum.TotalSec != shotlist.TargetRuntimeSec {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestStepIsDeterministicAcrossRoots(t *testing.T) {
	var outputs [][]byte
	for range 2 {
		root := t.TempDir()
		if _, err := shotlist.NewStep(nil).Run(context.Background(), stage.NewContext(root, 9, nil, false)); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(layout.NewEpisode(root, 9).Path(layout.ShotlistFile))
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Fatal("independent runs produced different shot lists")
	}
}
