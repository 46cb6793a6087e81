package shotlist

import (
	"fmt"
	"strconv"
	"strings"
)

// OutputType routes a shot to the still or the motion renderer.
type OutputType string

const (
	OutputStoryboard OutputType = "storyboard"
	OutputVideo      OutputType = "video"
)

// Priority orders render work.
type Priority string

const (
	PriorityMid  Priority = "mid"
	PriorityHigh Priority = "high"
)

// Header is the shotlist.csv column order.
var Header = []string{
	"shot_id", "episode", "scene_id", "beat", "start_time_sec", "duration_sec",
	"location_id", "location_name", "characters", "action", "dialogue", "emotion",
	"shot_type", "camera", "movement", "composition", "props", "wardrobe", "lighting",
	"style_keywords", "continuity_notes", "storyboard_prompt", "video_prompt",
	"negative_prompt", "seed", "reference_pack", "output_type", "output_path", "priority",
}

// Row is one planned shot.
type Row struct {
	ShotID       string
	Episode      int
	SceneID      string
	Beat         Beat
	StartTimeSec int
	DurationSec  int

	LocationID      string
	LocationName    string
	Characters      string
	Action          string
	Dialogue        string
	Emotion         string
	ShotType        string
	Camera          string
	Movement        string
	Composition     string
	Props           string
	Wardrobe        string
	Lighting        string
	StyleKeywords   string
	ContinuityNotes string

	StoryboardPrompt string
	VideoPrompt      string
	NegativePrompt   string
	// Seed is nil when a hand-edited shot list leaves the column blank.
	Seed          *int64
	ReferencePack string

	OutputType OutputType
	OutputPath string
	Priority   Priority
}

// IsVideo reports whether the row is a motion clip.
func (r Row) IsVideo() bool {
	return r.OutputType == OutputVideo
}

// Prompt returns the prompt the row's renderer consumes.
func (r Row) Prompt() string {
	if r.IsVideo() {
		return r.VideoPrompt
	}
	return r.StoryboardPrompt
}

// ReferencePacks splits the ';'-separated reference_pack column.
func (r Row) ReferencePacks() []string {
	packs := []string{}
	for _, p := range strings.Split(r.ReferencePack, ";") {
		if p = strings.TrimSpace(p); p != "" {
			packs = append(packs, p)
		}
	}
	return packs
}

// record renders the row in Header order.
func (r Row) record() []string {
	seed := ""
	if r.Seed != nil {
		seed = strconv.FormatInt(*r.Seed, 10)
	}
	return []string{
		r.ShotID, strconv.Itoa(r.Episode), r.SceneID, string(r.Beat),
		strconv.Itoa(r.StartTimeSec), strconv.Itoa(r.DurationSec),
		r.LocationID, r.LocationName, r.Characters, r.Action, r.Dialogue, r.Emotion,
		r.ShotType, r.Camera, r.Movement, r.Composition, r.Props, r.Wardrobe, r.Lighting,
		r.StyleKeywords, r.ContinuityNotes, r.StoryboardPrompt, r.VideoPrompt,
		r.NegativePrompt, seed, r.ReferencePack, string(r.OutputType), r.OutputPath, string(r.Priority),
	}
}

// rowFromRecord parses a record whose columns follow index.
func rowFromRecord(rec []string, index map[string]int) (Row, error) {
	get := func(col string) string {
		if i, ok := index[col]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var (
		row Row
		err error
	)
	row.ShotID = get("shot_id")
	if row.Episode, err = parseWhole(get("episode")); err != nil {
		return Row{}, fmt.Errorf("episode: %w", err)
	}
	row.SceneID = get("scene_id")
	row.Beat = Beat(get("beat"))
	if row.StartTimeSec, err = parseWhole(get("start_time_sec")); err != nil {
		return Row{}, fmt.Errorf("start_time_sec: %w", err)
	}
	if row.DurationSec, err = parseWhole(get("duration_sec")); err != nil {
		return Row{}, fmt.Errorf("duration_sec: %w", err)
	}
	row.LocationID = get("location_id")
	row.LocationName = get("location_name")
	row.Characters = get("characters")
	row.Action = get("action")
	row.Dialogue = get("dialogue")
	row.Emotion = get("emotion")
	row.ShotType = get("shot_type")
	row.Camera = get("camera")
	row.Movement = get("movement")
	row.Composition = get("composition")
	row.Props = get("props")
	row.Wardrobe = get("wardrobe")
	row.Lighting = get("lighting")
	row.StyleKeywords = get("style_keywords")
	row.ContinuityNotes = get("continuity_notes")
	row.StoryboardPrompt = get("storyboard_prompt")
	row.VideoPrompt = get("video_prompt")
	row.NegativePrompt = get("negative_prompt")
	if raw := strings.TrimSpace(get("seed")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Row{}, fmt.Errorf("seed: %w", err)
		}
		row.Seed = &seed
	}
	row.ReferencePack = get("reference_pack")
	row.OutputType = OutputType(get("output_type"))
	row.OutputPath = get("output_path")
	row.Priority = Priority(get("priority"))
	return row, nil
}

// parseWhole accepts integers and integral floats ("3.0"); blank is zero.
func parseWhole(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
