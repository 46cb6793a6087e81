package shotlist

import (
	"fmt"
	"strings"

	"reel/internal/layout"
	"reel/internal/project"
	"reel/internal/seedrand"
	"reel/internal/services"
)

const (
	// TargetRuntimeSec is the fixed episode runtime every shot list sums to.
	TargetRuntimeSec = 900
	// SeedBase is added to the episode number to seed the generator.
	SeedBase = 1000
	// storyboardSeedBase + shot number is the render seed of a storyboard shot.
	storyboardSeedBase = 100001

	styleKeywords  = "cinematic|realistic|ancient|9:16"
	negativePrompt = "blurry|lowres|deformed hands|extra fingers|text|watermark|logo|bad anatomy"
	defaultCamera  = "eye-level"

	wardrobeC1 = "C1:dark-blue hanfu"
	wardrobeC2 = "C2:black robe silver pattern"

	continuityC1   = "C1半束发髻+深蓝常驻道袍+玉坠一致"
	continuityC2   = "C2黑衣银纹+高发髻+银剑穗一致"
	continuityRune = "符文为古风发光符号，避免现代字体"
)

// Plan holds every input of one shot-list build.
type Plan struct {
	Episode   int
	Budget    project.Budget
	Scenes    []Scene
	VideoPlan []VideoPlanItem
}

// NewPlan returns a plan over the built-in scene table and video plan.
func NewPlan(episode int, budget project.Budget) Plan {
	return Plan{
		Episode:   episode,
		Budget:    budget,
		Scenes:    DefaultScenes(),
		VideoPlan: DefaultVideoPlan(),
	}
}

// Build returns the shot list for episode under budget using the built-in
// tables.
func Build(episode int, budget project.Budget) ([]Row, error) {
	res, err := NewPlan(episode, budget).Build()
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Result is a built shot list plus the allocation that produced it.
type Result struct {
	Rows       []Row
	Allocation []int
	// DroppedVideo counts curated video shots that did not fit because their
	// scene was allocated fewer shots than it had video items.
	DroppedVideo int
}

// Build produces the shot list. Random draws happen once per field per shot
// position in a fixed order (duration, shot_type, movement, composition,
// action, emotion, dialogue, props), video positions included, so the stream
// stays aligned regardless of which positions become video shots.
func (p Plan) Build() (Result, error) {
	if p.Episode < 1 {
		return Result{}, services.Wrap(services.ErrConfiguration, "shotlist", "build",
			fmt.Sprintf("episode must be positive, got %d", p.Episode), nil)
	}
	if err := ValidateScenes(p.Scenes); err != nil {
		return Result{}, err
	}
	if err := p.Budget.Validate(); err != nil {
		return Result{}, err
	}

	ep := layout.NewEpisode("", p.Episode)
	alloc := Allocate(p.Budget.TotalShots, p.Scenes)

	videos := p.VideoPlan[:min(p.Budget.VideoClips, len(p.VideoPlan))]
	byScene := make(map[string][]VideoPlanItem)
	for _, item := range videos {
		byScene[item.SceneID] = append(byScene[item.SceneID], item)
	}

	rng := seedrand.New(int64(SeedBase + p.Episode))
	res := Result{Rows: make([]Row, 0, p.Budget.TotalShots), Allocation: alloc}
	shotNum := 0
	start := 0

	for si, scene := range p.Scenes {
		n := alloc[si]
		pending := byScene[scene.ID]
		slots := VideoSlots(n, len(pending))
		res.DroppedVideo += len(pending) - len(slots)
		slotItem := make(map[int]VideoPlanItem, len(slots))
		for i, pos := range slots {
			slotItem[pos] = pending[i]
		}
		vocab := stagingFor(scene.ID)

		for i := 0; i < n; i++ {
			shotNum++
			row := storyboardRow(rng, p.Episode, shotNum, scene, vocab)
			if item, ok := slotItem[i]; ok {
				applyVideo(&row, item, scene, p.Budget.VideoClipDurationSec)
			}
			row.OutputPath = ep.ShotOutputPath(row.ShotID, row.IsVideo())
			row.StartTimeSec = start
			start += row.DurationSec
			res.Rows = append(res.Rows, row)
		}
	}

	normalizeRuntime(res.Rows, TargetRuntimeSec)
	return res, nil
}

func storyboardRow(rng *seedrand.Rand, episode, shotNum int, scene Scene, vocab staging) Row {
	duration := seedrand.Choice(rng, durationPool(scene.Beat))
	shotType := seedrand.Choice(rng, shotTypes)
	movement := seedrand.Choice(rng, movements)
	composition := seedrand.Choice(rng, compositions)
	action := seedrand.Choice(rng, vocab.Actions)
	emotion := seedrand.Choice(rng, vocab.Emotions)
	dialogue := seedrand.Choice(rng, vocab.Dialogues)
	props := seedrand.Choice(rng, vocab.Props)

	seed := int64(storyboardSeedBase + shotNum)
	row := Row{
		ShotID:          fmt.Sprintf("S%04d", shotNum),
		Episode:         episode,
		SceneID:         scene.ID,
		Beat:            scene.Beat,
		DurationSec:     duration,
		LocationID:      scene.LocationID,
		LocationName:    scene.LocationName,
		Characters:      vocab.Cast,
		Action:          action,
		Dialogue:        dialogue,
		Emotion:         emotion,
		ShotType:        shotType,
		Camera:          defaultCamera,
		Movement:        movement,
		Composition:     composition,
		Props:           props,
		Wardrobe:        wardrobeFor(vocab.Cast),
		Lighting:        scene.Lighting,
		StyleKeywords:   styleKeywords,
		ContinuityNotes: continuityFor(vocab.Cast, props),
		NegativePrompt:  negativePrompt,
		Seed:            &seed,
		ReferencePack:   referencePackFor(vocab.Cast),
		OutputType:      OutputStoryboard,
		Priority:        PriorityMid,
	}
	row.StoryboardPrompt = renderPrompt(scene, row.Characters, action, emotion, "no modern text")
	return row
}

func applyVideo(row *Row, item VideoPlanItem, scene Scene, clipSec int) {
	seed := item.Seed
	row.Characters = item.Characters
	row.Action = item.Action
	row.Dialogue = item.Dialogue
	row.Emotion = item.Emotion
	row.ShotType = item.ShotType
	row.Movement = item.Movement
	row.Props = item.Props
	row.ReferencePack = item.ReferencePack
	row.Seed = &seed
	row.OutputType = OutputVideo
	row.Priority = PriorityHigh
	row.Wardrobe = wardrobeFor(item.Characters)
	row.ContinuityNotes = continuityFor(item.Characters, item.Props)
	row.DurationSec = clipSec
	row.StoryboardPrompt = renderPrompt(scene, item.Characters, item.Action, item.Emotion, "cinematic realism")
	row.VideoPrompt = renderPrompt(scene, item.Characters, item.Action, item.Emotion,
		fmt.Sprintf("%ds video, slight camera move, cinematic realistic", clipSec))
}

// normalizeRuntime moves the whole difference to target onto the last row,
// never leaving it shorter than one second.
func normalizeRuntime(rows []Row, target int) {
	if len(rows) == 0 {
		return
	}
	total := 0
	for _, r := range rows {
		total += r.DurationSec
	}
	if total == target {
		return
	}
	last := &rows[len(rows)-1]
	last.DurationSec = max(1, last.DurationSec+target-total)
}

func renderPrompt(scene Scene, characters, action, emotion, extra string) string {
	base := fmt.Sprintf("Vertical 9:16, cinematic realistic live-action ancient xianxia, %s, %s, characters %s, %s, emotion %s.",
		scene.LocationName, scene.Lighting, characters, action, emotion)
	if extra == "" {
		return base
	}
	return base + " " + extra
}

func hasCharacter(cast, id string) bool {
	for _, c := range strings.Split(cast, "|") {
		if c == id {
			return true
		}
	}
	return false
}

func wardrobeFor(cast string) string {
	if hasCharacter(cast, "C2") {
		return wardrobeC1 + "; " + wardrobeC2
	}
	return wardrobeC1
}

func referencePackFor(cast string) string {
	if hasCharacter(cast, "C2") {
		return "refpacks/C1;refpacks/C2"
	}
	return "refpacks/C1"
}

func continuityFor(cast, props string) string {
	var notes []string
	if hasCharacter(cast, "C1") {
		notes = append(notes, continuityC1)
	}
	if hasCharacter(cast, "C2") {
		notes = append(notes, continuityC2)
	}
	if strings.Contains(props, "rune_scroll") {
		notes = append(notes, continuityRune)
	}
	return strings.Join(notes, "; ")
}
