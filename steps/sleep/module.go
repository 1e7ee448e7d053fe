// Package sleep provides a step that pauses for a configured duration. The
// pause honors cancellation, which makes it the natural companion for
// exercising step timeouts and deadlines.
package sleep

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the sleep step.
type Input struct {
	Duration string `hcl:"duration"`
}

// Run is the handler for the 'sleep' step kind.
func Run(ctx context.Context, req *registry.Request) (any, error) {
	input := req.Input.(*Input)

	duration, err := time.ParseDuration(input.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid duration '%s': %w", input.Duration, err)
	}

	ctxlog.FromContext(ctx).Debug("Sleeping.", "duration", duration)

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	case <-timer.C:
	}

	return duration.String(), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("sleep", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Run:      Run,
	})
}
