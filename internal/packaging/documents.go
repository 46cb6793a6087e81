package packaging

import (
	"fmt"
	"strings"

	"reel/internal/layout"
	"reel/internal/project"
)

// RenderPlan renders delivery/RENDER_PLAN.md.
func RenderPlan(ep layout.Episode, platform project.Platform, storyboard, video int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s 渲染计划（ComfyUI 预留）\n\n", layout.Label(ep.Number))
	if platform.Name != "" || platform.AspectRatio != "" {
		fmt.Fprintf(&b, "- platform: %s（%s）\n", orDash(platform.Name), orDash(platform.AspectRatio))
	}
	fmt.Fprintf(&b, "- storyboard: %d 帧（输出到 %s/）\n", storyboard, ep.Rel(layout.StoryboardDir))
	fmt.Fprintf(&b, "- video clips: %d 条（输出到 %s/）\n\n", video, ep.Rel(layout.ClipsDir))
	b.WriteString("## 输入文件\n")
	fmt.Fprintf(&b, "- shotlist: %s\n", ep.Rel(layout.ShotlistFile))
	fmt.Fprintf(&b, "- storyboard tasks: %s\n", ep.Rel(layout.PromptsDir, layout.StoryboardTasksFile))
	fmt.Fprintf(&b, "- video tasks: %s\n", ep.Rel(layout.PromptsDir, layout.VideoTasksFile))
	return b.String()
}

// Checklist renders delivery/DELIVERY_CHECKLIST.md.
func Checklist() string {
	return "# 交付检查清单（不含渲染）\n\n" +
		"## 文本资产\n" +
		"- [x] brief.yaml\n- [x] outline.md\n- [x] script.md\n- [x] shotlist.csv\n\n" +
		"## 渲染输入（ComfyUI预留）\n" +
		"- [x] prompts/storyboard_tasks.jsonl\n- [x] prompts/video_tasks.jsonl\n- [x] delivery/RENDER_PLAN.md\n\n" +
		"## 待渲染输出（目标路径）\n" +
		"- [ ] storyboard/*.png\n- [ ] clips/*.mp4\n"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
