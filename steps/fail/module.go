// Package fail provides a step that always fails. It exists to exercise
// error handling and the recovery plugin.
package fail

import (
	"context"
	"errors"

	"github.com/specialistvlad/taskpipe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the fail step.
type Input struct {
	Message string `hcl:"message,optional"`
}

// Run is the handler for the 'fail' step kind.
func Run(ctx context.Context, req *registry.Request) (any, error) {
	input := req.Input.(*Input)

	message := input.Message
	if message == "" {
		message = "step failed by configuration"
	}
	return nil, errors.New(message)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("fail", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Run:      Run,
	})
}
