package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that all step modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Request carries the identity of a single step execution into a handler.
// Pipeline and Step name the invocation; Input is the handler's own argument
// struct, decoded from the step's `arguments` block.
type Request struct {
	Pipeline string
	Step     string
	Kind     string
	Input    any
}

// Handler holds the compiled Go parts of a step kind.
type Handler struct {
	// NewInput returns a fresh argument struct for one execution. It must
	// never return a shared value; handlers may be retried and every attempt
	// decodes into its own copy.
	NewInput func() any

	// Run executes the step.
	Run func(ctx context.Context, req *Request) (any, error)
}

// Registry holds all the registered step handlers for a single application
// instance.
type Registry struct {
	handlers map[string]*Handler
}

// New creates a Registry and registers every provided module with it.
func New(modules ...Module) *Registry {
	r := &Registry{
		handlers: make(map[string]*Handler),
	}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterHandler registers a Go handler for a step kind.
func (r *Registry) RegisterHandler(kind string, handler *Handler) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("step handler with kind '%s' already registered", kind))
	}
	slog.Debug("Registering step handler.", "kind", kind)
	r.handlers[kind] = handler
}

// Handler returns the handler registered for a kind.
func (r *Registry) Handler(kind string) (*Handler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Kinds returns the sorted list of registered step kinds.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
