// Package emit provides a step that writes a message to the run log.
package emit

import (
	"context"
	"fmt"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the emit step.
type Input struct {
	Message string `hcl:"message"`
	Level   string `hcl:"level,optional"`
}

// Run is the handler for the 'emit' step kind. The emitted message is also
// the step's result value, so downstream tooling can assert on it.
func Run(ctx context.Context, req *registry.Request) (any, error) {
	input := req.Input.(*Input)
	logger := ctxlog.FromContext(ctx)

	switch input.Level {
	case "", "info":
		logger.Info(input.Message)
	case "debug":
		logger.Debug(input.Message)
	case "warn":
		logger.Warn(input.Message)
	case "error":
		logger.Error(input.Message)
	default:
		return nil, fmt.Errorf("unknown log level '%s'", input.Level)
	}

	return input.Message, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("emit", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Run:      Run,
	})
}
