package packaging_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reel/internal/layout"
	"reel/internal/packaging"
	"reel/internal/services"
	"reel/internal/shotlist"
	"reel/internal/stage"
)

func sampleRows(video, storyboard int) []shotlist.Row {
	n := video + storyboard
	rows := make([]shotlist.Row, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("S%04d", i+1)
		seed := int64(100002 + i)
		row := shotlist.Row{
			ShotID:           id,
			Episode:          1,
			SceneID:          "SC01",
			Beat:             shotlist.BeatHook,
			DurationSec:      3,
			LocationName:     "青岚宗外门院",
			Characters:       "C1|C2",
			StoryboardPrompt: "still " + id,
			NegativePrompt:   "blurry",
			Seed:             &seed,
			ReferencePack:    "refpacks/C1;refpacks/C2",
			OutputType:       shotlist.OutputStoryboard,
			OutputPath:       "episodes/ep0001/storyboard/" + id + ".png",
			Priority:         shotlist.PriorityMid,
		}
		if i%4 == 1 && video > 0 {
			video--
			row.OutputType = shotlist.OutputVideo
			row.Priority = shotlist.PriorityHigh
			row.VideoPrompt = "motion " + id
			row.OutputPath = "episodes/ep0001/clips/" + id + ".mp4"
		}
		rows = append(rows, row)
	}
	return rows
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var out []map[string]any
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(sc.Bytes(), &obj); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		out = append(out, obj)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestPackageSplitsTasks(t *testing.T) {
	root := t.TempDir()
	ep := layout.NewEpisode(root, 1)
	if err := shotlist.WriteFile(ep.Path(layout.ShotlistFile), sampleRows(3, 10)); err != nil {
		t.Fatal(err)
	}

	outcome, err := packaging.NewStep(nil).Run(context.Background(), stage.NewContext(root, 1, nil, false))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome != stage.OutcomeWrote {
		t.Fatalf("outcome = %s", outcome)
	}

	video := readLines(t, ep.Path(layout.PromptsDir, layout.VideoTasksFile))
	storyboard := readLines(t, ep.Path(layout.PromptsDir, layout.StoryboardTasksFile))
	if len(video) != 3 || len(storyboard) != 10 {
		t.Fatalf("video=%d storyboard=%d, want 3 and 10", len(video), len(storyboard))
	}

	required := []string{"shot_id", "episode", "scene_id", "beat", "duration_sec", "output_type",
		"priority", "output_path", "seed", "reference_pack", "prompt", "negative_prompt", "meta"}
	for _, task := range append(video, storyboard...) {
		for _, key := range required {
			if _, ok := task[key]; !ok {
				t.Fatalf("task %v missing %q", task["shot_id"], key)
			}
		}
	}
	if got := video[0]["prompt"]; got != "motion S0002" {
		t.Fatalf("video prompt = %v", got)
	}
	if got := storyboard[0]["prompt"]; got != "still S0001" {
		t.Fatalf("storyboard prompt = %v", got)
	}
	packs, _ := storyboard[0]["reference_pack"].([]any)
	if len(packs) != 2 || packs[1] != "refpacks/C2" {
		t.Fatalf("reference_pack = %v", storyboard[0]["reference_pack"])
	}
	meta, _ := storyboard[0]["meta"].(map[string]any)
	if meta["location"] != "青岚宗外门院" {
		t.Fatalf("meta = %v", meta)
	}

	for _, dir := range layout.OutputDirs {
		if info, err := os.Stat(ep.Path(dir)); err != nil || !info.IsDir() {
			t.Fatalf("directory %s not created", dir)
		}
	}
	plan, err := os.ReadFile(ep.Path(layout.DeliveryDir, layout.RenderPlanFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(plan), "- storyboard: 10 帧（输出到 episodes/ep0001/storyboard/）") {
		t.Fatalf("unexpected render plan:\n%s", plan)
	}
	if _, err := os.Stat(ep.Path(layout.DeliveryDir, layout.ChecklistFile)); err != nil {
		t.Fatal(err)
	}
}

func TestPackageKeepsUnicodeUnescaped(t *testing.T) {
	root := t.TempDir()
	ep := layout.NewEpisode(root, 1)
	if err := shotlist.WriteFile(ep.Path(layout.ShotlistFile), sampleRows(0, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := packaging.NewStep(nil).Run(context.Background(), stage.NewContext(root, 1, nil, false)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(ep.Path(layout.PromptsDir, layout.StoryboardTasksFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "青岚宗外门院") {
		t.Fatalf("non-ASCII text escaped: %s", data)
	}
	video, err := os.ReadFile(ep.Path(layout.PromptsDir, layout.VideoTasksFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(video) != 0 {
		t.Fatalf("expected empty video manifest, got %q", video)
	}
}

func TestPackageWithoutShotlistCreatesNothing(t *testing.T) {
	root := t.TempDir()
	_, err := packaging.NewStep(nil).Run(context.Background(), stage.NewContext(root, 1, nil, false))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, layout.EpisodesDir)); !os.IsNotExist(err) {
		t.Fatal("package step created files without a shot list")
	}
}

func TestPackageSkipsWhenComplete(t *testing.T) {
	root := t.TempDir()
	ep := layout.NewEpisode(root, 1)
	if err := shotlist.WriteFile(ep.Path(layout.ShotlistFile), sampleRows(1, 2)); err != nil {
		t.Fatal(err)
	}
	step := packaging.NewStep(nil)
	sc := stage.NewContext(root, 1, nil, false)
	if _, err := step.Run(context.Background(), sc); err != nil {
		t.Fatal(err)
	}
	outcome, err := step.Run(context.Background(), sc)
	if err != nil || outcome != stage.OutcomeSkipped {
		t.Fatalf("outcome=%s err=%v", outcome, err)
	}

	if err := os.Remove(ep.Path(layout.DeliveryDir, layout.ChecklistFile)); err != nil {
		t.Fatal(err)
	}
	outcome, err = step.Run(context.Background(), sc)
	if err != nil || outcome != stage.OutcomeWrote {
		t.Fatalf("partial outputs: outcome=%s err=%v", outcome, err)
	}
}

func TestNewTaskNullSeed(t *testing.T) {
	task := packaging.NewTask(shotlist.Row{ShotID: "S0001"}, 5)
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"seed":null`) || !strings.Contains(string(data), `"episode":5`) {
		t.Fatalf("unexpected task JSON %s", data)
	}
	if !strings.Contains(string(data), `"reference_pack":[]`) {
		t.Fatalf("reference_pack should be an empty array: %s", data)
	}
}
