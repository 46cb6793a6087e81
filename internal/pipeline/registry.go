package pipeline

import (
	"log/slog"

	"reel/internal/outline"
	"reel/internal/packaging"
	"reel/internal/script"
	"reel/internal/shotlist"
	"reel/internal/stage"
)

// StepNames lists the built-in steps in their natural execution order.
var StepNames = []string{outline.StepName, script.StepName, shotlist.StepName, packaging.StepName}

// NewRegistry returns a registry holding every built-in step.
func NewRegistry(logger *slog.Logger) *stage.Registry {
	reg := stage.NewRegistry()
	reg.MustRegister(outline.StepName, outline.NewStep(logger))
	reg.MustRegister(script.StepName, script.NewStep(logger))
	reg.MustRegister(shotlist.StepName, shotlist.NewStep(logger))
	reg.MustRegister(packaging.StepName, packaging.NewStep(logger))
	return reg
}
