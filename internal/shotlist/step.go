package shotlist

import (
	"context"
	"log/slog"

	"reel/internal/layout"
	"reel/internal/logging"
	"reel/internal/project"
	"reel/internal/services"
	"reel/internal/stage"
)

// StepName is the registry key of the shot-list step.
const StepName = "shotlist"

// Step writes episodes/epNNNN/shotlist.csv.
type Step struct {
	logger *slog.Logger
}

// NewStep constructs the shot-list step.
func NewStep(logger *slog.Logger) *Step {
	return &Step{logger: logging.NewComponentLogger(logger, StepName)}
}

// Run builds and writes the shot list unless it already exists and sc.Force
// is false.
func (s *Step) Run(ctx context.Context, sc stage.Context) (stage.Outcome, error) {
	logger := logging.WithContext(ctx, s.logger)
	ep := layout.NewEpisode(sc.Root, sc.Episode)
	path := ep.Path(layout.ShotlistFile)

	exists, err := layout.Exists(path)
	if err != nil {
		return 0, services.Wrap(services.ErrIO, StepName, "stat", path, err)
	}
	if exists && !sc.Force {
		logger.Info("shot list exists; skipping", logging.String("path", ep.Rel(layout.ShotlistFile)))
		return stage.OutcomeSkipped, nil
	}

	proj, err := project.Load(sc.Root)
	if err != nil {
		return 0, err
	}
	res, err := NewPlan(sc.Episode, proj.Budget).Build()
	if err != nil {
		return 0, err
	}
	if res.DroppedVideo > 0 {
		logger.Warn("video shots dropped; scene allocation too small",
			logging.Int("dropped", res.DroppedVideo))
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := WriteFile(path, res.Rows); err != nil {
		return 0, err
	}

	sum := Summarize(res.Rows)
	logger.Info("shot list written",
		logging.String("path", ep.Rel(layout.ShotlistFile)),
		logging.Int("shots", sum.Shots),
		logging.Int("video", sum.Video),
		logging.Int("total_sec", sum.TotalSec),
	)
	return stage.OutcomeWrote, nil
}
