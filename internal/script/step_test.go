package script_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"reel/internal/layout"
	"reel/internal/script"
	"reel/internal/stage"
	"reel/internal/testsupport"
)

func TestStepWritesThenSkips(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "")
	testsupport.WriteBrief(t, root, 2)
	path := layout.NewEpisode(root, 2).Path(layout.ScriptFile)

	step := script.NewStep(nil)
	outcome, err := step.Run(context.Background(), stage.NewContext(root, 2, nil, false))
	if err != nil || outcome != stage.OutcomeWrote {
		t.Fatalf("outcome=%s err=%v", outcome, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, "# EP0002 剧本：废井\n") {
		t.Fatalf("unexpected heading in:\n%s", doc)
	}
	if !strings.Contains(doc, "林照") || !strings.Contains(doc, "陆沉") {
		t.Fatalf("expected bible names in:\n%s", doc)
	}

	testsupport.WriteFile(t, path, "hand edited")
	outcome, err = step.Run(context.Background(), stage.NewContext(root, 2, nil, false))
	if err != nil || outcome != stage.OutcomeSkipped {
		t.Fatalf("outcome=%s err=%v", outcome, err)
	}
	if data, _ := os.ReadFile(path); string(data) != "hand edited" {
		t.Fatal("skip rewrote the script")
	}

	outcome, err = step.Run(context.Background(), stage.NewContext(root, 2, nil, true))
	if err != nil || outcome != stage.OutcomeWrote {
		t.Fatalf("forced outcome=%s err=%v", outcome, err)
	}
	if data, _ := os.ReadFile(path); string(data) == "hand edited" {
		t.Fatal("force did not regenerate the script")
	}
}

func TestStepWithoutBriefUsesRoleLabels(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteProject(t, root, "")

	if _, err := script.NewStep(nil).Run(context.Background(), stage.NewContext(root, 7, nil, false)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(layout.NewEpisode(root, 7).Path(layout.ScriptFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "林照") || !strings.Contains(string(data), "主角") {
		t.Fatalf("expected role labels only:\n%s", data)
	}
}
