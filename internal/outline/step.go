package outline

import (
	"context"
	"log/slog"

	"reel/internal/fileutil"
	"reel/internal/layout"
	"reel/internal/logging"
	"reel/internal/project"
	"reel/internal/services"
	"reel/internal/stage"
)

// StepName is the registry key of the outline step.
const StepName = "outline"

// Step writes episodes/epNNNN/outline.md.
type Step struct {
	logger *slog.Logger
}

// NewStep constructs the outline step.
func NewStep(logger *slog.Logger) *Step {
	return &Step{logger: logging.NewComponentLogger(logger, StepName)}
}

// Run renders the outline unless it already exists and sc.Force is false.
// A skipped run reads no inputs.
func (s *Step) Run(ctx context.Context, sc stage.Context) (stage.Outcome, error) {
	logger := logging.WithContext(ctx, s.logger)
	ep := layout.NewEpisode(sc.Root, sc.Episode)
	path := ep.Path(layout.OutlineFile)

	exists, err := layout.Exists(path)
	if err != nil {
		return 0, services.Wrap(services.ErrIO, StepName, "stat", path, err)
	}
	if exists && !sc.Force {
		logger.Info("outline exists; skipping", logging.String("path", ep.Rel(layout.OutlineFile)))
		return stage.OutcomeSkipped, nil
	}

	proj, err := project.Load(sc.Root)
	if err != nil {
		return 0, err
	}
	brief, err := project.LoadBrief(ep.Path(layout.BriefFile))
	if err != nil {
		return 0, err
	}
	if len(proj.Bible.Format.EpisodeBeats) == 0 {
		logger.Warn("series bible defines no episode beats", logging.String("path", project.SeriesBiblePath(sc.Root)))
	}

	doc := Render(sc.Episode, brief, proj.Bible)
	if err := fileutil.WriteFileAtomic(path, []byte(doc), 0o644); err != nil {
		return 0, services.Wrap(services.ErrIO, StepName, "write", path, err)
	}
	logger.Info("outline written",
		logging.String("path", ep.Rel(layout.OutlineFile)),
		logging.Int("beats", len(proj.Bible.Format.EpisodeBeats)),
	)
	return stage.OutcomeWrote, nil
}
