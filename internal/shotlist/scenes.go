package shotlist

// Beat is a structural narrative phase of an episode.
type Beat string

const (
	BeatHook        Beat = "hook"
	BeatSetup       Beat = "setup"
	BeatEscalation1 Beat = "escalation_1"
	BeatMidTurn     Beat = "mid_turn"
	BeatEscalation2 Beat = "escalation_2"
	BeatCliffhanger Beat = "cliffhanger"
)

// Scene is one entry of the fixed scene table. Weight is the scene's share of
// the shot budget.
type Scene struct {
	ID           string
	Beat         Beat
	LocationID   string
	LocationName string
	Lighting     string
	Weight       float64
}

// VideoPlanItem is a hand-authored shot rendered as a motion clip instead of
// a storyboard frame.
type VideoPlanItem struct {
	SceneID       string
	Beat          Beat
	Characters    string
	Action        string
	Dialogue      string
	Emotion       string
	ShotType      string
	Movement      string
	Props         string
	ReferencePack string
	Seed          int64
}

// DefaultScenes returns the scene table. Weights sum to 1.
func DefaultScenes() []Scene {
	return []Scene{
		{ID: "SC01", Beat: BeatHook, LocationID: "L1", LocationName: "青岚宗外门院", Lighting: "daylight", Weight: 0.14},
		{ID: "SC02", Beat: BeatSetup, LocationID: "L1", LocationName: "管事处", Lighting: "indoor soft", Weight: 0.12},
		{ID: "SC03", Beat: BeatEscalation1, LocationID: "L3", LocationName: "藏经阁外", Lighting: "warm lantern", Weight: 0.18},
		{ID: "SC04", Beat: BeatMidTurn, LocationID: "L4", LocationName: "后山废井口", Lighting: "moonlight rim", Weight: 0.16},
		{ID: "SC05", Beat: BeatEscalation2, LocationID: "L4", LocationName: "废井深处", Lighting: "low light", Weight: 0.24},
		{ID: "SC06", Beat: BeatCliffhanger, LocationID: "L1", LocationName: "外门院深夜", Lighting: "night lantern", Weight: 0.16},
	}
}

// DefaultVideoPlan returns the curated video shots in emission order.
func DefaultVideoPlan() []VideoPlanItem {
	return []VideoPlanItem{
		{SceneID: "SC01", Beat: BeatHook, Characters: "C1", Action: "C1压住怒意，玉坠微热，抬眼", Dialogue: "我只求考核资格。", Emotion: "爆发前的隐忍", ShotType: "MCU", Movement: "slow push-in", Props: "C1_jade_pendant", ReferencePack: "refpacks/C1", Seed: 223402},
		{SceneID: "SC01", Beat: BeatHook, Characters: "C2", Action: "C2冷笑特写，压迫感拉满", Dialogue: "资格？你连活着都不配。", Emotion: "嘲讽", ShotType: "CU", Movement: "handheld slight", Props: "", ReferencePack: "refpacks/C2", Seed: 223403},
		{SceneID: "SC04", Beat: BeatMidTurn, Characters: "C1", Action: "脚下一滑险坠井，玉坠裂开仙箓浮现", Dialogue: "以命换路，以弱破局。", Emotion: "惊惧/顿悟", ShotType: "CU", Movement: "handheld shake", Props: "C1_jade_pendant|rune_scroll", ReferencePack: "refpacks/C1", Seed: 223406},
		{SceneID: "SC06", Beat: BeatCliffhanger, Characters: "C1|C2", Action: "C2伸手索要法器，C1第一次拒绝", Dialogue: "东西给我。", Emotion: "对峙", ShotType: "MCU", Movement: "slow push-in", Props: "lost_artifact", ReferencePack: "refpacks/C1;refpacks/C2", Seed: 223409},
		{SceneID: "SC06", Beat: BeatCliffhanger, Characters: "C1", Action: "C1抬眼说“不”，符文补全", Dialogue: "不。", Emotion: "决绝", ShotType: "CU", Movement: "handheld micro", Props: "rune_scroll|lost_artifact", ReferencePack: "refpacks/C1", Seed: 223410},
	}
}

// staging is the vocabulary storyboard shots in a scene are sampled from.
type staging struct {
	Cast      string
	Actions   []string
	Emotions  []string
	Dialogues []string
	Props     []string
}

var sceneStaging = map[string]staging{
	"SC01": {
		Cast:      "C1|C2",
		Actions:   []string{"众人围观，压力逼近", "木剑落地特写", "C1握拳忍耐", "C2冷笑逼近", "人群窃笑切镜"},
		Emotions:  []string{"压迫", "羞辱", "隐忍", "愤怒"},
		Dialogues: []string{"来，废柴。", "示范一下不配。", "资格？", "……", "我只求考核资格。"},
		Props:     []string{"wood_sword", "C1_jade_pendant", ""},
	},
	"SC02": {
		Cast:      "C1",
		Actions:   []string{"名册合上", "管事摆手拒绝", "C1递上木牌", "柜台敲响", "门外脚步声"},
		Emotions:  []string{"受挫", "压抑", "窘迫"},
		Dialogues: []string{"名册上没你。", "别浪费宗门资源。", "陆师兄说了。", "……"},
		Props:     []string{"register_book", "token", ""},
	},
	"SC03": {
		Cast:      "C1|C2",
		Actions:   []string{"灯笼晃动", "执事拦下", "C2假意解围", "绳索递出", "门规牌匾特写"},
		Emotions:  []string{"紧张", "伪善", "冷淡"},
		Dialogues: []string{"止步。", "他只是想看看门规。", "去后山废井。", "……"},
		Props:     []string{"lantern", "rope", ""},
	},
	"SC04": {
		Cast:      "C1",
		Actions:   []string{"井口阴风", "脚步打滑", "玉坠发热", "裂痕蔓延", "符文光点浮现"},
		Emotions:  []string{"恐惧", "顿悟", "震惊"},
		Dialogues: []string{"……", "以命换路。", "以弱破局。"},
		Props:     []string{"C1_jade_pendant", "rune_scroll", "rope"},
	},
	"SC05": {
		Cast:      "C1",
		Actions:   []string{"石壁滑落碎屑", "绳结收紧", "黑影逼近", "呼吸急促", "手抓到法器"},
		Emotions:  []string{"决绝", "紧张", "痛苦"},
		Dialogues: []string{"我不会按你们的结局走。", "再来！", "……"},
		Props:     []string{"rope", "lost_artifact", ""},
	},
	"SC06": {
		Cast:      "C1|C2",
		Actions:   []string{"灯影拉长", "C2伸手索要", "C1护住法器", "符文一闪", "众人惊住"},
		Emotions:  []string{"对峙", "爆发", "凝固"},
		Dialogues: []string{"东西给我。", "不。", "你敢？", "……"},
		Props:     []string{"lost_artifact", "rune_scroll", ""},
	},
}

// fallbackStaging covers scenes outside the built-in table.
var fallbackStaging = staging{
	Cast:      "C1",
	Actions:   []string{"环境建立", "人物反应", "细节特写"},
	Emotions:  []string{"紧张", "平静"},
	Dialogues: []string{"……"},
	Props:     []string{""},
}

func stagingFor(sceneID string) staging {
	if s, ok := sceneStaging[sceneID]; ok {
		return s
	}
	return fallbackStaging
}

// Weighted pools; repeated entries raise an option's probability.
var (
	shotTypes    = []string{"CU", "MCU", "MS", "WS"}
	movements    = []string{"static", "static", "slow push-in", "handheld slight"}
	compositions = []string{"rule-of-thirds", "center", "two-shot", "over-shoulder", "diagonal"}
)

// durationPool returns the storyboard duration distribution for a beat. Hook
// and cliffhanger cut faster and vary more.
func durationPool(beat Beat) []int {
	switch beat {
	case BeatHook:
		return []int{2, 2, 3, 3, 4}
	case BeatCliffhanger:
		return []int{2, 3, 3, 4, 4, 5}
	default:
		return []int{3, 3, 3, 4, 4, 5}
	}
}
