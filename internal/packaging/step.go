package packaging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"reel/internal/fileutil"
	"reel/internal/layout"
	"reel/internal/logging"
	"reel/internal/project"
	"reel/internal/services"
	"reel/internal/shotlist"
	"reel/internal/stage"
)

// StepName is the registry key of the package step.
const StepName = "package"

// Step writes the task manifests and delivery documents.
type Step struct {
	logger *slog.Logger
}

// NewStep constructs the package step.
func NewStep(logger *slog.Logger) *Step {
	return &Step{logger: logging.NewComponentLogger(logger, StepName)}
}

func outputs(ep layout.Episode) []string {
	return []string{
		ep.Path(layout.PromptsDir, layout.StoryboardTasksFile),
		ep.Path(layout.PromptsDir, layout.VideoTasksFile),
		ep.Path(layout.DeliveryDir, layout.RenderPlanFile),
		ep.Path(layout.DeliveryDir, layout.ChecklistFile),
	}
}

// Run packages the episode. The shot list must exist; without it nothing is
// created. When every output already exists and sc.Force is false the step is
// skipped.
func (s *Step) Run(ctx context.Context, sc stage.Context) (stage.Outcome, error) {
	logger := logging.WithContext(ctx, s.logger)
	ep := layout.NewEpisode(sc.Root, sc.Episode)
	shotPath := ep.Path(layout.ShotlistFile)

	found, err := layout.Exists(shotPath)
	if err != nil {
		return 0, services.Wrap(services.ErrIO, StepName, "stat", shotPath, err)
	}
	if !found {
		return 0, services.Wrap(services.ErrNotFound, StepName, "load shot list",
			"missing shot list "+ep.Rel(layout.ShotlistFile)+"; run the shotlist step first", nil)
	}

	if !sc.Force {
		complete, err := allExist(outputs(ep))
		if err != nil {
			return 0, services.Wrap(services.ErrIO, StepName, "stat outputs", ep.Dir(), err)
		}
		if complete {
			logger.Info("package outputs exist; skipping")
			return stage.OutcomeSkipped, nil
		}
	}

	rows, err := shotlist.ReadFile(shotPath)
	if err != nil {
		return 0, err
	}
	proj, err := project.Load(sc.Root)
	if err != nil {
		return 0, err
	}

	for _, dir := range layout.OutputDirs {
		if err := os.MkdirAll(ep.Path(dir), 0o755); err != nil {
			return 0, services.Wrap(services.ErrIO, StepName, "create directories", ep.Path(dir), err)
		}
	}

	storyboard, video := Split(rows, sc.Episode)
	files := []struct {
		path string
		fill func(io.Writer) error
	}{
		{ep.Path(layout.PromptsDir, layout.StoryboardTasksFile), func(w io.Writer) error { return WriteJSONL(w, storyboard) }},
		{ep.Path(layout.PromptsDir, layout.VideoTasksFile), func(w io.Writer) error { return WriteJSONL(w, video) }},
		{ep.Path(layout.DeliveryDir, layout.RenderPlanFile), writeString(RenderPlan(ep, proj.Platform, len(storyboard), len(video)))},
		{ep.Path(layout.DeliveryDir, layout.ChecklistFile), writeString(Checklist())},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := fileutil.WriteAtomic(f.path, 0o644, f.fill); err != nil {
			return 0, services.Wrap(services.ErrIO, StepName, "write", f.path, err)
		}
	}

	logger.Info("episode packaged",
		logging.Int("storyboard_tasks", len(storyboard)),
		logging.Int("video_tasks", len(video)),
	)
	return stage.OutcomeWrote, nil
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func allExist(paths []string) (bool, error) {
	for _, p := range paths {
		ok, err := layout.Exists(p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
