package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/taskpipe/executor"
	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/internal/tphcl"
)

// Run executes every loaded pipeline in definition order. A step failure
// that no plugin resolves stops the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config == nil || len(a.config.Pipelines) == 0 {
		a.logger.Warn("No pipelines loaded, execution not required.")
		return nil
	}

	a.logger.Info("Step handlers registered:", "kinds", a.registry.Kinds())
	a.logger.Info("🚀 Starting pipeline execution...")

	for _, pipeline := range a.config.Pipelines {
		if err := a.runPipeline(ctx, pipeline); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
	}

	a.logger.Info("🏁 Execution finished.")
	a.logger.Debug("App.Run method finished.")
	return nil
}

// runPipeline builds the pipeline's executor with its plugin selection and
// runs its steps sequentially.
func (a *App) runPipeline(ctx context.Context, pipeline *model.Pipeline) error {
	logger := a.logger.With("pipeline", pipeline.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	if pipeline.Description != nil {
		description, ok, err := tphcl.EvalString(*pipeline.Description, nil)
		if err != nil {
			return fmt.Errorf("pipeline '%s': invalid description: %w", pipeline.Name, err)
		}
		if ok {
			logger.Debug("Pipeline description.", "description", description)
		}
	}

	plugins, err := pluginsFor(pipeline.Plugins)
	if err != nil {
		return fmt.Errorf("pipeline '%s': %w", pipeline.Name, err)
	}

	exec := executor.NewAsync[*StepParams](executor.WithLogger(logger))
	for _, plugin := range plugins {
		exec.Use(plugin)
	}

	logger.Info("▶️ Starting pipeline.", "steps", len(pipeline.Steps))

	for _, step := range pipeline.Steps {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		if err := a.runStep(ctx, exec, pipeline, step); err != nil {
			return fmt.Errorf("pipeline '%s' failed at step '%s': %w", pipeline.Name, step.ID(), err)
		}
	}

	logger.Info("✅ Pipeline finished.")
	return nil
}
