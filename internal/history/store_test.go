package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"reel/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := store.StartRun(ctx, history.RunStart{
		ID:        "run-1",
		Episode:   1,
		Steps:     []string{"outline", "shotlist"},
		Force:     true,
		StartedAt: started,
	}); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	for i, name := range []string{"outline", "shotlist"} {
		if err := store.RecordStep(ctx, "run-1", history.StepRecord{
			Seq:       i,
			Name:      name,
			Outcome:   "wrote",
			Duration:  1500 * time.Millisecond,
			StartedAt: started.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("RecordStep: %v", err)
		}
	}
	if err := store.FinishRun(ctx, "run-1", history.RunCompleted, "", started.Add(3*time.Second)); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run == nil {
		t.Fatal("run not found")
	}
	if run.Status != history.RunCompleted || !run.Force || run.Episode != 1 {
		t.Fatalf("unexpected run %+v", run)
	}
	if len(run.Steps) != 2 || run.Steps[1] != "shotlist" {
		t.Fatalf("steps = %v", run.Steps)
	}
	if len(run.StepRuns) != 2 || run.StepRuns[1].Name != "shotlist" || run.StepRuns[0].Duration != 1500*time.Millisecond {
		t.Fatalf("step runs = %+v", run.StepRuns)
	}
	if run.FinishedAt == nil || !run.FinishedAt.Equal(started.Add(3*time.Second)) {
		t.Fatalf("finished_at = %v", run.FinishedAt)
	}
}

func TestListRunsNewestFirstAndFiltered(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, ep := range []int{1, 2, 1} {
		id := []string{"a", "b", "c"}[i]
		if err := store.StartRun(ctx, history.RunStart{ID: id, Episode: ep, Steps: []string{"outline"}, StartedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.FinishRun(ctx, "b", history.RunFailed, "boom", base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	all, err := store.ListRuns(ctx, history.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Fatalf("unexpected order %+v", all)
	}
	if all[1].Status != history.RunFailed || all[1].Error != "boom" {
		t.Fatalf("failed run = %+v", all[1])
	}

	ep1, err := store.ListRuns(ctx, history.ListOptions{Episode: 1, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(ep1) != 1 || ep1[0].ID != "c" {
		t.Fatalf("filtered = %+v", ep1)
	}
}

func TestGetRunUnknown(t *testing.T) {
	store := openStore(t)
	run, err := store.GetRun(context.Background(), "missing")
	if err != nil || run != nil {
		t.Fatalf("GetRun(missing) = %v, %v", run, err)
	}
	if err := store.FinishRun(context.Background(), "missing", history.RunCompleted, "", time.Now()); err == nil {
		t.Fatal("FinishRun on unknown run should fail")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.StartRun(context.Background(), history.RunStart{ID: "x", Episode: 3, Steps: []string{"package"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	runs, err := store.ListRuns(context.Background(), history.ListOptions{Episode: 3})
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs=%v err=%v", runs, err)
	}
}
