package outline

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reel/internal/layout"
	"reel/internal/project"
)

const pending = "（待补充）"

var beatTitle = cases.Title(language.English)

// Render produces the outline document. Output depends only on its inputs.
func Render(episode int, brief project.Brief, bible project.SeriesBible) string {
	label := layout.Label(episode)
	title := brief.TitleWorking
	if title == "" {
		title = label
	}
	req := brief.Required

	var b strings.Builder
	fmt.Fprintf(&b, "# %s 大纲：%s\n", label, title)
	if brief.Purpose != "" {
		fmt.Fprintf(&b, "**Purpose**：%s\n", brief.Purpose)
	}

	b.WriteString("\n## 必要元素\n")
	if len(req.Characters) > 0 {
		fmt.Fprintf(&b, "- 角色：%s\n", strings.Join(req.Characters, ", "))
	}
	if len(req.Locations) > 0 {
		fmt.Fprintf(&b, "- 地点：%s\n", strings.Join(req.Locations, ", "))
	}
	if len(req.PlotPoints) > 0 {
		b.WriteString("- 关键点：\n")
		for _, p := range req.PlotPoints {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}

	b.WriteString("\n## 结构节拍\n")
	beats := bible.Format.EpisodeBeats
	if len(beats) == 0 {
		b.WriteString("- （未在 specs/series_bible.yaml 中找到 episode_beats）\n")
		return b.String()
	}
	for _, beat := range beats {
		writeBeat(&b, beat, brief)
		b.WriteString("\n")
	}
	return b.String()
}

func writeBeat(b *strings.Builder, beat project.EpisodeBeat, brief project.Brief) {
	purpose := brief.Purpose
	if purpose == "" {
		purpose = "推进主线并制造代价"
	}
	req := brief.Required

	fmt.Fprintf(b, "## %s (%s)\n", BeatLabel(beat.Beat), beat.Minutes)
	fmt.Fprintf(b, "- 目标：%s\n", beat.Goal)
	fmt.Fprintf(b, "- 当集目标推进：%s\n", purpose)
	fmt.Fprintf(b, "- 必须覆盖：%s\n", joinOr(req.PlotPoints, "; "))
	fmt.Fprintf(b, "- 角色：%s；地点：%s\n", joinOr(req.Characters, ", "), joinOr(req.Locations, ", "))
}

// BeatLabel turns a beat key such as escalation_1 into "Escalation 1".
func BeatLabel(beat string) string {
	return beatTitle.String(strings.ReplaceAll(beat, "_", " "))
}

func joinOr(values []string, sep string) string {
	if len(values) == 0 {
		return pending
	}
	return strings.Join(values, sep)
}
