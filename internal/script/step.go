package script

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

// StepName is the registry key of the script step.
const StepName = "script"

// Step writes episodes/epNNNN/script.md.
type Step struct {
	logger *slog.Logger
}

// NewStep constructs the script step.
func NewStep(logger *slog.Logger) *Step {
	return &Step{logger: logging.NewComponentLogger(logger, StepName)}
}

// Run renders the script unless it already exists and sc.Force is false.
// A skipped run reads no inputs.
func (s *Step) Run(ctx context.Context, sc stage.Context) (stage.Outcome, error) {
	logger := logging.WithContext(ctx, s.logger)
	ep := layout.NewEpisode(sc.Root, sc.Episode)
	path := ep.Path(layout.ScriptFile)

	exists, err := layout.Exists(path)
	if err != nil {
		return 0, services.Wrap(services.ErrIO, StepName, "stat", path, err)
	}
	if exists && !sc.Force {
		logger.Info("script exists; skipping", logging.String("path", ep.Rel(layout.ScriptFile)))
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
	if len(brief.Required.Characters) == 0 {
		logger.Debug("brief names no characters; using role labels")
	}

	doc := Render(sc.Episode, brief, proj.Bible)
	if err := fileutil.WriteFileAtomic(path, []byte(doc), 0o644); err != nil {
		return 0, services.Wrap(services.ErrIO, StepName, "write", path, err)
	}
	logger.Info("script written",
		logging.String("path", ep.Rel(layout.ScriptFile)),
		logging.Int("characters", len(brief.Required.Characters)),
	)
	return stage.OutcomeWrote, nil
}
