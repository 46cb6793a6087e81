package shotlist

// SceneSummary counts the shots of one scene.
type SceneSummary struct {
	SceneID  string `json:"scene_id"`
	Beat     Beat   `json:"beat"`
	Shots    int    `json:"shots"`
	Video    int    `json:"video"`
	TotalSec int    `json:"total_sec"`
}

// Summary aggregates a shot list.
type Summary struct {
	Shots      int            `json:"shots"`
	Video      int            `json:"video"`
	Storyboard int            `json:"storyboard"`
	TotalSec   int            `json:"total_sec"`
	Scenes     []SceneSummary `json:"scenes"`
}

// Summarize counts rows overall and per scene, keeping scenes in first-seen
// order. Rows without a scene id count only toward the totals.
func Summarize(rows []Row) Summary {
	sum := Summary{Scenes: []SceneSummary{}}
	pos := make(map[string]int)
	for _, row := range rows {
		sum.Shots++
		sum.TotalSec += row.DurationSec
		if row.IsVideo() {
			sum.Video++
		} else {
			sum.Storyboard++
		}
		if row.SceneID == "" {
			continue
		}

		i, ok := pos[row.SceneID]
		if !ok {
			i = len(sum.Scenes)
			pos[row.SceneID] = i
			sum.Scenes = append(sum.Scenes, SceneSummary{SceneID: row.SceneID, Beat: row.Beat})
		}
		sc := &sum.Scenes[i]
		sc.Shots++
		sc.TotalSec += row.DurationSec
		if row.IsVideo() {
			sc.Video++
		}
	}
	return sum
}
