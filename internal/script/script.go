package script

import (
	"fmt"
	"strings"

	"reel/internal/layout"
	"reel/internal/project"
)

const (
	protagonistID = "C1"
	antagonistID  = "C2"

	protagonistFallback = "主角"
	antagonistFallback  = "反派"
)

type line struct {
	speaker string
	tone    string
	text    string
}

type sceneBlock struct {
	id       string
	location string
	beat     string
	lines    []line
}

// cast maps character ids to the names a script prints.
type cast map[string]string

// newCast resolves names only for characters the brief requires; everyone
// else prints under a role label.
func newCast(brief project.Brief, bible project.SeriesBible) cast {
	c := make(cast, len(brief.Required.Characters))
	for _, id := range brief.Required.Characters {
		c[id] = bible.CharacterName(id)
	}
	return c
}

func (c cast) name(id, fallback string) string {
	if n, ok := c[id]; ok {
		return n
	}
	return fallback
}

func scenes(c cast) []sceneBlock {
	hero := c.name(protagonistID, protagonistFallback)
	rival := c.name(antagonistID, antagonistFallback)
	return []sceneBlock{
		{"SC01", "外门院·清晨", "hook", []line{
			{rival, "冷笑", "来，废柴，示范一下什么叫不配。"},
			{hero, "压着怒", "我只求考核资格。"},
		}},
		{"SC02", "管事处·白天", "setup", []line{
			{"管事", "敷衍", "名册上没你。"},
			{hero, "克制", "我昨日的贡献——"},
		}},
		{"SC03", "藏经阁外·夜", "escalation_1", []line{
			{"执事", "冷", "想学？先去后山废井，把遗失法器取回。"},
			{rival, "假惺惺", "他只是想看看门规。"},
		}},
		{"SC04", "后山废井口·夜", "mid_turn", []line{
			{hero, "喘息", "……别掉下去。"},
			{"仙箓", "浮现", "以命换路，以弱破局。"},
		}},
		{"SC05", "废井深处·夜", "escalation_2", []line{
			{hero, "咬牙", "我不会按你们写好的结局走。"},
		}},
		{"SC06", "外门院·深夜", "cliffhanger", []line{
			{rival, "命令", "东西给我。"},
			{hero, "第一次不退", "不。"},
		}},
	}
}

// Render produces the script document.
func Render(episode int, brief project.Brief, bible project.SeriesBible) string {
	label := layout.Label(episode)
	title := brief.TitleWorking
	if title == "" {
		title = label
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s 剧本：%s\n\n", label, title)
	if brief.Purpose != "" {
		fmt.Fprintf(&b, "**Purpose**：%s\n\n", brief.Purpose)
	}
	for _, sc := range scenes(newCast(brief, bible)) {
		fmt.Fprintf(&b, "## %s %s（%s）\n", sc.id, sc.location, sc.beat)
		b.WriteString("- 动作：按镜头表实现（近景为主、快切）。\n")
		for _, l := range sc.lines {
			fmt.Fprintf(&b, "- %s（%s）：%s\n", l.speaker, l.tone, l.text)
		}
		b.WriteString("\n")
	}
	return b.String()
}
