package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"reel/internal/layout"
	"reel/internal/project"
)

// SeriesBible is a small bible with two characters and three beats.
const SeriesBible = `title: 青岚
characters:
  - id: C1
    name: 林照
    role: protagonist
  - id: C2
    name: 陆沉
    role: antagonist
format:
  episode_beats:
    - beat: hook
      minutes: 0-1
      goal: 立冲突
    - beat: mid_turn
      minutes: 7
      goal: 反转
    - beat: cliffhanger
      minutes: 14-15
      goal: 留悬念
`

// Platform is a minimal platform profile.
const Platform = `name: douyin
aspect_ratio: "9:16"
resolution: 1080x1920
`

// Brief is a brief requiring both characters.
const Brief = `title_working: 废井
purpose: 主角第一次反抗
required:
  characters: [C1, C2]
  locations: [L1, L4]
  plot_points: [木剑落地, 玉坠裂开]
`

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteProject lays down the bible and platform profile under root, plus a
// budget file when budget is non-empty.
func WriteProject(t testing.TB, root, budget string) {
	t.Helper()
	WriteFile(t, project.SeriesBiblePath(root), SeriesBible)
	WriteFile(t, project.PlatformPath(root), Platform)
	if budget != "" {
		WriteFile(t, project.BudgetPath(root), budget)
	}
}

// WriteBrief writes the sample brief for episode.
func WriteBrief(t testing.TB, root string, episode int) {
	t.Helper()
	WriteFile(t, layout.NewEpisode(root, episode).Path(layout.BriefFile), Brief)
}
