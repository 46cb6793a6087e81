package packaging

import (
	"encoding/json"
	"io"

	"reel/internal/shotlist"
)

// TaskMeta carries staging context a renderer may use for consistency checks.
type TaskMeta struct {
	Location        string `json:"location"`
	Characters      string `json:"characters"`
	Wardrobe        string `json:"wardrobe"`
	Props           string `json:"props"`
	ContinuityNotes string `json:"continuity_notes"`
}

// Task is one render job.
type Task struct {
	ShotID         string   `json:"shot_id"`
	Episode        int      `json:"episode"`
	SceneID        string   `json:"scene_id"`
	Beat           string   `json:"beat"`
	DurationSec    int      `json:"duration_sec"`
	OutputType     string   `json:"output_type"`
	Priority       string   `json:"priority"`
	OutputPath     string   `json:"output_path"`
	Seed           *int64   `json:"seed"`
	ReferencePack  []string `json:"reference_pack"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt"`
	Meta           TaskMeta `json:"meta"`
}

// NewTask converts a shot-list row. Rows with no episode inherit episode.
func NewTask(row shotlist.Row, episode int) Task {
	ep := row.Episode
	if ep == 0 {
		ep = episode
	}
	return Task{
		ShotID:         row.ShotID,
		Episode:        ep,
		SceneID:        row.SceneID,
		Beat:           string(row.Beat),
		DurationSec:    row.DurationSec,
		OutputType:     string(row.OutputType),
		Priority:       string(row.Priority),
		OutputPath:     row.OutputPath,
		Seed:           row.Seed,
		ReferencePack:  row.ReferencePacks(),
		Prompt:         row.Prompt(),
		NegativePrompt: row.NegativePrompt,
		Meta: TaskMeta{
			Location:        row.LocationName,
			Characters:      row.Characters,
			Wardrobe:        row.Wardrobe,
			Props:           row.Props,
			ContinuityNotes: row.ContinuityNotes,
		},
	}
}

// Split routes rows into storyboard and video tasks, preserving order. Any
// output_type other than video is treated as storyboard.
func Split(rows []shotlist.Row, episode int) (storyboard, video []Task) {
	storyboard = []Task{}
	video = []Task{}
	for _, row := range rows {
		task := NewTask(row, episode)
		if row.IsVideo() {
			video = append(video, task)
		} else {
			storyboard = append(storyboard, task)
		}
	}
	return storyboard, video
}

// WriteJSONL writes one compact JSON object per line. Non-ASCII text is kept
// as-is and HTML characters are not escaped.
func WriteJSONL(w io.Writer, tasks []Task) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}
