package project

import (
	"fmt"

	"reel/internal/services"
)

const (
	// DefaultTotalShots is the per-episode shot budget when budget.yaml is silent.
	DefaultTotalShots = 250
	// DefaultVideoClips is the per-episode video clip budget.
	DefaultVideoClips = 5
	// DefaultVideoClipDurationSec is the length of each video clip.
	DefaultVideoClipDurationSec = 3
)

// Budget is the resolved per-episode budget profile.
type Budget struct {
	TotalShots           int
	VideoClips           int
	VideoClipDurationSec int
}

// DefaultBudget returns the budget used when specs/budget.yaml is absent.
func DefaultBudget() Budget {
	return Budget{
		TotalShots:           DefaultTotalShots,
		VideoClips:           DefaultVideoClips,
		VideoClipDurationSec: DefaultVideoClipDurationSec,
	}
}

// budgetFile mirrors specs/budget.yaml. Pointers distinguish an explicit zero
// (e.g. no video clips) from an omitted key.
type budgetFile struct {
	PerEpisode struct {
		TotalShotsTarget     *int `yaml:"total_shots_target"`
		VideoClipsTarget     *int `yaml:"video_clips_target"`
		VideoClipDurationSec *int `yaml:"video_clip_duration_sec"`
	} `yaml:"per_episode"`
}

func (f budgetFile) resolve() Budget {
	b := DefaultBudget()
	if v := f.PerEpisode.TotalShotsTarget; v != nil {
		b.TotalShots = *v
	}
	if v := f.PerEpisode.VideoClipsTarget; v != nil {
		b.VideoClips = *v
	}
	if v := f.PerEpisode.VideoClipDurationSec; v != nil {
		b.VideoClipDurationSec = *v
	}
	return b
}

// Validate reports budgets the allocator cannot honour.
func (b Budget) Validate() error {
	switch {
	case b.TotalShots < 1:
		return services.Wrap(services.ErrConfiguration, "budget", "validate",
			fmt.Sprintf("per_episode.total_shots_target must be positive, got %d", b.TotalShots), nil)
	case b.VideoClips < 0:
		return services.Wrap(services.ErrConfiguration, "budget", "validate",
			fmt.Sprintf("per_episode.video_clips_target must not be negative, got %d", b.VideoClips), nil)
	case b.VideoClipDurationSec < 1:
		return services.Wrap(services.ErrConfiguration, "budget", "validate",
			fmt.Sprintf("per_episode.video_clip_duration_sec must be positive, got %d", b.VideoClipDurationSec), nil)
	}
	return nil
}
