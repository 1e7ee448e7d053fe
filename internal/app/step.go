package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/specialistvlad/taskpipe/cleanup"
	"github.com/specialistvlad/taskpipe/ctxmerge"
	"github.com/specialistvlad/taskpipe/executor"
	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/internal/registry"
	"github.com/specialistvlad/taskpipe/internal/tphcl"
	"github.com/specialistvlad/taskpipe/retry"
)

// StepParams carries the identity and decoded input of one step execution
// through the task pipeline. Plugins see it as their params type.
type StepParams struct {
	Pipeline  string
	Step      string
	Kind      string
	RunID     string
	StartedAt time.Time
	Input     any
}

// StampRun records the run identity assigned by the stamp plugin.
func (p *StepParams) StampRun(runID string, startedAt time.Time) {
	p.RunID = runID
	p.StartedAt = startedAt
}

// runStep executes a single step: it derives the bounded execution context,
// wraps the handler invocation in the retry policy, and releases every
// cancellation resource when the step settles.
func (a *App) runStep(ctx context.Context, exec *executor.Async[*StepParams], pipeline *model.Pipeline, step *model.Step) error {
	logger := ctxlog.FromContext(ctx)

	enabled, err := stepEnabled(step)
	if err != nil {
		return fmt.Errorf("step '%s': %w", step.ID(), err)
	}
	if !enabled {
		logger.Warn("Step is disabled, skipping.", "step", step.ID())
		return nil
	}

	// Scope the context logger to this step so every line below, including
	// the ones written by plugins and handlers, names its origin.
	ctx = ctxlog.With(ctx, "step", step.ID())

	handler, ok := a.registry.Handler(step.Kind)
	if !ok {
		return fmt.Errorf("step '%s' uses unknown kind '%s'", step.ID(), step.Kind)
	}

	retryOpts, err := retryOptions(step.Retry)
	if err != nil {
		return fmt.Errorf("step '%s': %w", step.ID(), err)
	}

	// Probe-decode the arguments once so a configuration mistake surfaces
	// as a single clean error instead of being retried.
	if step.Arguments != nil {
		probe := handler.NewInput()
		if diags := gohcl.DecodeBody(step.Arguments, nil, probe); diags.HasErrors() {
			return fmt.Errorf("step '%s': invalid arguments: %w", step.ID(), diags)
		}
	}

	_, err = cleanup.Run(func(f *cleanup.Finalizer) (any, error) {
		stepCtx, err := boundedContext(f, ctx, step)
		if err != nil {
			return nil, err
		}

		return retry.Do(stepCtx, func(attemptCtx context.Context) (any, error) {
			// Every attempt decodes into its own input value, so a handler
			// mutating its input cannot contaminate the next attempt.
			input := handler.NewInput()
			if step.Arguments != nil {
				if diags := gohcl.DecodeBody(step.Arguments, nil, input); diags.HasErrors() {
					return nil, fmt.Errorf("invalid arguments: %w", diags)
				}
			}

			params := &StepParams{
				Pipeline: pipeline.Name,
				Step:     step.Name,
				Kind:     step.Kind,
				Input:    input,
			}
			return exec.Exec(attemptCtx, params, func(ec *executor.Context[*StepParams]) (any, error) {
				req := &registry.Request{
					Pipeline: ec.Params.Pipeline,
					Step:     ec.Params.Step,
					Kind:     ec.Params.Kind,
					Input:    ec.Params.Input,
				}
				return handler.Run(ec.Context(), req)
			})
		}, retryOpts...)
	})
	if err != nil {
		return err
	}

	return nil
}

// boundedContext derives the execution context for one step by composing the
// run's context with the step's configured time limits. All cancel and
// detach functions are registered on the finalizer, so they are released in
// reverse order when the step settles.
func boundedContext(f *cleanup.Finalizer, ctx context.Context, step *model.Step) (context.Context, error) {
	if step.Cancellation == nil {
		return ctx, nil
	}

	var timeoutCtx, deadlineCtx context.Context

	if timeout, ok, err := tphcl.EvalDuration(step.Cancellation.Timeout, nil); err != nil {
		return nil, fmt.Errorf("invalid cancellation timeout: %w", err)
	} else if ok {
		bounded, cancel := context.WithTimeout(context.Background(), timeout)
		f.Defer(cancel)
		timeoutCtx = bounded
	}

	if raw, ok, err := tphcl.EvalString(step.Cancellation.Deadline, nil); err != nil {
		return nil, fmt.Errorf("invalid cancellation deadline: %w", err)
	} else if ok {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid cancellation deadline '%s': %w", raw, err)
		}
		bounded, cancel := context.WithDeadline(context.Background(), at)
		f.Defer(cancel)
		deadlineCtx = bounded
	}

	if timeoutCtx == nil && deadlineCtx == nil {
		return ctx, nil
	}

	merged, stop := ctxmerge.Any(ctx, timeoutCtx, deadlineCtx)
	f.Defer(stop)

	// The merged context carries cancellation only, so the run logger has to
	// be re-attached for the handler to see it.
	return ctxlog.WithLogger(merged, ctxlog.FromContext(ctx)), nil
}

// retryOptions evaluates a step's retry block into options for retry.Do. A
// nil block yields no options, which leaves the policy at its defaults.
func retryOptions(r *model.Retry) ([]retry.Option, error) {
	if r == nil {
		return nil, nil
	}

	var opts []retry.Option

	if maxRetries, ok, err := tphcl.EvalInt(r.MaxRetries, nil); err != nil {
		return nil, fmt.Errorf("invalid retry max_retries: %w", err)
	} else if ok {
		opts = append(opts, retry.WithMaxRetries(maxRetries))
	}

	if delay, ok, err := tphcl.EvalDuration(r.Delay, nil); err != nil {
		return nil, fmt.Errorf("invalid retry delay: %w", err)
	} else if ok {
		opts = append(opts, retry.WithRetryDelay(delay))
	}

	if r.Backoff != nil {
		strategy, ok, err := tphcl.EvalString(r.Backoff.Strategy, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid backoff strategy: %w", err)
		}
		if ok {
			switch strategy {
			case "exponential":
				opts = append(opts, retry.WithExponentialBackoff())
			case "fixed":
				// The default spacing; accepted for explicitness.
			default:
				return nil, fmt.Errorf("unknown backoff strategy '%s'", strategy)
			}
		}
	}

	return opts, nil
}

// stepEnabled evaluates the step's enabled attribute, defaulting to true.
func stepEnabled(step *model.Step) (bool, error) {
	if step.Enabled == nil {
		return true, nil
	}
	enabled, ok, err := tphcl.EvalBool(*step.Enabled, nil)
	if err != nil {
		return false, fmt.Errorf("invalid enabled attribute: %w", err)
	}
	if !ok {
		return true, nil
	}
	return enabled, nil
}
