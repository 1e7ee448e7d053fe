package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/taskpipe/internal/registry"
)

// ExecutionRecord holds the identity and timing of a single recorded step
// execution.
type ExecutionRecord struct {
	Pipeline string
	Step     string
	Note     string
	At       time.Time
}

// RecorderModule registers a "record" step kind whose handler appends every
// execution to an in-memory journal. Tests use it to assert on execution
// order and attempt counts without scraping logs.
type RecorderModule struct {
	mu      sync.Mutex
	entries []ExecutionRecord
}

type recordInput struct {
	Note string `hcl:"note,optional"`
}

// Register registers the "record" step handler.
func (m *RecorderModule) Register(r *registry.Registry) {
	r.RegisterHandler("record", &registry.Handler{
		NewInput: func() any { return new(recordInput) },
		Run: func(ctx context.Context, req *registry.Request) (any, error) {
			input := req.Input.(*recordInput)

			m.mu.Lock()
			m.entries = append(m.entries, ExecutionRecord{
				Pipeline: req.Pipeline,
				Step:     req.Step,
				Note:     input.Note,
				At:       time.Now(),
			})
			m.mu.Unlock()

			return input.Note, nil
		},
	})
}

// Entries returns a copy of the journal in execution order.
func (m *RecorderModule) Entries() []ExecutionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutionRecord(nil), m.entries...)
}

// StepNames returns just the step names from the journal, in execution
// order.
func (m *RecorderModule) StepNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Step
	}
	return names
}
