package testutil

import "github.com/specialistvlad/taskpipe/internal/registry"

// SimpleModule is a test helper for easily creating a mock module that
// registers a single step handler.
type SimpleModule struct {
	Kind    string
	Handler *registry.Handler
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.Kind != "" && m.Handler != nil {
		r.RegisterHandler(m.Kind, m.Handler)
	}
}
