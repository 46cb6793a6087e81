package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reel/internal/history"
	"reel/internal/logging"
	"reel/internal/services"
	"reel/internal/stage"
)

// Recorder receives run and step results. *history.Store implements it.
type Recorder interface {
	StartRun(ctx context.Context, start history.RunStart) error
	RecordStep(ctx context.Context, runID string, rec history.StepRecord) error
	FinishRun(ctx context.Context, runID string, status history.RunStatus, errMsg string, finishedAt time.Time) error
}

// Request names the episode and steps of one run.
type Request struct {
	Root    string
	Episode int
	Steps   []string
	Force   bool
}

// StepReport is the result of one executed step.
type StepReport struct {
	Name     string        `json:"name"`
	Outcome  string        `json:"outcome"`
	Duration time.Duration `json:"duration_ns"`
}

// Report summarizes a run. On failure it holds the steps that finished before
// the error.
type Report struct {
	RunID   string       `json:"run_id"`
	Episode int          `json:"episode"`
	Steps   []StepReport `json:"steps"`
}

// Runner executes step sequences against one project.
type Runner struct {
	Registry *stage.Registry
	Logger   *slog.Logger
	Recorder Recorder
	// LockDir holds per-episode lock files. Empty disables locking.
	LockDir string
}

// Run executes req.Steps in order and returns on the first error.
func (r *Runner) Run(ctx context.Context, req Request) (Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Registry == nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "pipeline", "run", "no step registry configured", nil)
	}
	if req.Episode < 1 {
		return Report{}, services.Wrap(services.ErrConfiguration, "pipeline", "run",
			fmt.Sprintf("episode must be positive, got %d", req.Episode), nil)
	}
	if len(req.Steps) == 0 {
		return Report{}, services.Wrap(services.ErrConfiguration, "pipeline", "run", "no steps requested", nil)
	}

	runID := uuid.NewString()
	report := Report{RunID: runID, Episode: req.Episode, Steps: []StepReport{}}
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithEpisode(ctx, req.Episode)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, "pipeline"))

	if r.LockDir != "" {
		lock, err := lockEpisode(r.LockDir, req.Episode)
		if err != nil {
			return report, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release episode lock", logging.Error(err))
			}
		}()
	}

	sc := stage.NewContext(req.Root, req.Episode, req.Steps, req.Force)
	runStart := time.Now()
	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Any("steps", sc.Steps),
		logging.Bool("force", sc.Force),
	)
	r.record(logger, func(rec Recorder) error {
		return rec.StartRun(ctx, history.RunStart{
			ID:        runID,
			Episode:   req.Episode,
			Steps:     sc.Steps,
			Force:     sc.Force,
			StartedAt: runStart,
		})
	})

	for seq, name := range sc.Steps {
		if err := r.runStep(ctx, sc, seq, name, &report); err != nil {
			r.finish(ctx, logger, runID, err)
			return report, err
		}
	}

	r.finish(ctx, logger, runID, nil)
	logger.Info("run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("steps", len(report.Steps)),
		logging.Duration("run_duration", time.Since(runStart)),
	)
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, sc stage.Context, seq int, name string, report *Report) error {
	stepCtx := services.WithStep(ctx, name)
	stepLogger := logging.WithContext(stepCtx, logging.NewComponentLogger(r.Logger, "pipeline"))
	runID, _ := services.RunIDFromContext(ctx)

	if err := ctx.Err(); err != nil {
		stepLogger.Warn("run cancelled before step", logging.Error(err))
		return err
	}
	handler, err := r.Registry.Get(name)
	if err != nil {
		logging.ErrorWithContext(stepLogger, "step lookup failed", "step_failure",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run `reel steps` to list registered steps"),
		)
		return err
	}

	started := time.Now()
	stepLogger.Info("step started", logging.String(logging.FieldEventType, "step_start"))
	outcome, err := handler.Run(stepCtx, sc)
	elapsed := time.Since(started)

	rec := history.StepRecord{Seq: seq, Name: name, Duration: elapsed, StartedAt: started}
	if err != nil {
		rec.Outcome = history.StepOutcomeFailed
		rec.Error = err.Error()
		r.record(stepLogger, func(rc Recorder) error { return rc.RecordStep(ctx, runID, rec) })
		logging.ErrorWithContext(stepLogger, "step failed", "step_failure",
			logging.String("error_kind", services.Kind(err)),
			logging.Duration("step_duration", elapsed),
			logging.Error(err),
		)
		return fmt.Errorf("step %s: %w", name, err)
	}

	rec.Outcome = outcome.String()
	r.record(stepLogger, func(rc Recorder) error { return rc.RecordStep(ctx, runID, rec) })
	report.Steps = append(report.Steps, StepReport{Name: name, Outcome: outcome.String(), Duration: elapsed})

	msg, event := "step completed", "step_complete"
	if outcome == stage.OutcomeSkipped {
		msg, event = "step skipped", "step_skip"
	}
	stepLogger.Info(msg,
		logging.String(logging.FieldEventType, event),
		logging.Duration("step_duration", elapsed),
	)
	return nil
}

func (r *Runner) finish(ctx context.Context, logger *slog.Logger, runID string, runErr error) {
	status, msg := history.RunCompleted, ""
	if runErr != nil {
		status, msg = history.RunFailed, runErr.Error()
	}
	// The ledger must record a cancelled run too.
	recCtx := context.WithoutCancel(ctx)
	r.record(logger, func(rec Recorder) error {
		return rec.FinishRun(recCtx, runID, status, msg, time.Now())
	})
}

// record calls fn when a recorder is configured. Failures are logged only.
func (r *Runner) record(logger *slog.Logger, fn func(Recorder) error) {
	if r.Recorder == nil {
		return
	}
	if err := fn(r.Recorder); err != nil {
		logger.Warn("failed to record run history",
			logging.String(logging.FieldEventType, "history_write_failed"),
			logging.Error(err),
		)
	}
}

// Run executes steps for episode under root with the built-in registry and no
// locking or history.
func Run(ctx context.Context, root string, episode int, steps []string, force bool) error {
	runner := &Runner{Registry: NewRegistry(nil)}
	_, err := runner.Run(ctx, Request{Root: root, Episode: episode, Steps: steps, Force: force})
	return err
}
