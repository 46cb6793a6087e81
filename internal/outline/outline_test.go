package outline

import (
	"strings"
	"testing"

	"reel/internal/project"
)

func TestRenderWithBeats(t *testing.T) {
	bible := project.SeriesBible{Format: project.Format{EpisodeBeats: []project.EpisodeBeat{
		{Beat: "hook", Minutes: "0-1", Goal: "立冲突"},
		{Beat: "escalation_1", Minutes: "3", Goal: "加压"},
	}}}
	brief := project.Brief{
		TitleWorking: "外门羞辱",
		Purpose:      "确立主角处境",
		Required: project.Required{
			Characters: []string{"C1", "C2"},
			Locations:  []string{"L1"},
			PlotPoints: []string{"木剑落地", "玉坠发热"},
		},
	}
	doc := Render(3, brief, bible)
	for _, want := range []string{
		"# EP0003 大纲：外门羞辱\n**Purpose**：确立主角处境\n",
		"- 角色：C1, C2\n- 地点：L1\n- 关键点：\n  - 木剑落地\n  - 玉坠发热\n",
		"## Hook (0-1)\n- 目标：立冲突\n- 当集目标推进：确立主角处境\n- 必须覆盖：木剑落地; 玉坠发热\n- 角色：C1, C2；地点：L1\n\n",
		"## Escalation 1 (3)\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("outline missing %q\n%s", want, doc)
		}
	}
}

func TestRenderWithoutBeatsOrBrief(t *testing.T) {
	doc := Render(1, project.Brief{}, project.SeriesBible{})
	want := "# EP0001 大纲：EP0001\n\n## 必要元素\n\n## 结构节拍\n- （未在 specs/series_bible.yaml 中找到 episode_beats）\n"
	if doc != want {
		t.Fatalf("got %q\nwant %q", doc, want)
	}
}

func TestBeatSectionPlaceholders(t *testing.T) {
	bible := project.SeriesBible{Format: project.Format{EpisodeBeats: []project.EpisodeBeat{{Beat: "mid_turn"}}}}
	doc := Render(1, project.Brief{}, bible)
	for _, want := range []string{
		"## Mid Turn ()\n",
		"- 当集目标推进：推进主线并制造代价\n",
		"- 必须覆盖：（待补充）\n",
		"- 角色：（待补充）；地点：（待补充）\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}
}
