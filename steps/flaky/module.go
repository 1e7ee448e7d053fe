// Package flaky provides a step that fails a configured number of times
// before succeeding. It exists to exercise retry policies in pipelines and
// in the integration tests.
package flaky

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package. It
// tracks attempt counts per step identity, so retries of the same step
// observe a shared counter while separate application instances stay
// isolated from each other.
type Module struct {
	mu     sync.Mutex
	counts map[string]int
}

// Input defines the arguments for the flaky step.
type Input struct {
	FailTimes int    `hcl:"fail_times"`
	Message   string `hcl:"message,optional"`
}

func (m *Module) run(ctx context.Context, req *registry.Request) (any, error) {
	input := req.Input.(*Input)

	m.mu.Lock()
	key := req.Pipeline + "/" + req.Step
	m.counts[key]++
	attempt := m.counts[key]
	m.mu.Unlock()

	if attempt <= input.FailTimes {
		message := input.Message
		if message == "" {
			message = "flaky step failed"
		}
		return nil, fmt.Errorf("%s (attempt %d of %d planned failures)", message, attempt, input.FailTimes)
	}

	ctxlog.FromContext(ctx).Debug("Flaky step succeeded.", "attempt", attempt)
	return attempt, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	r.RegisterHandler("flaky", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Run:      m.run,
	})
}
