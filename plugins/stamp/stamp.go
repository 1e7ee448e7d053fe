// Package stamp injects run metadata into the parameters and the runtime bag
// before the task executes. It demonstrates the two sanctioned mutation
// channels of the before phase: parameter rewriting and plugin-to-plugin
// signaling.
package stamp

import (
	"time"

	"github.com/specialistvlad/taskpipe/executor"
)

// Bag keys under which the plugin records run metadata for other plugins.
const (
	KeyRunID     = "stamp.run_id"
	KeyStartedAt = "stamp.started_at"
)

// Stampable is implemented by parameter types that accept run metadata.
type Stampable interface {
	StampRun(runID string, startedAt time.Time)
}

// Plugin stamps each run. Parameter types that do not implement Stampable
// still get the bag entries.
type Plugin[P any] struct {
	now func() time.Time
}

// New constructs the stamp plugin.
func New[P any]() *Plugin[P] {
	return &Plugin[P]{now: time.Now}
}

// PluginName implements executor.Plugin.
func (p *Plugin[P]) PluginName() string { return "stamp" }

// OnBefore records the run metadata. The pointer assertion runs first so a
// value parameter type with pointer-receiver methods is stamped in place,
// not on a copy.
func (p *Plugin[P]) OnBefore(ec *executor.Context[P]) error {
	at := p.now()
	ec.Runtime.Set(KeyRunID, ec.ID)
	ec.Runtime.Set(KeyStartedAt, at)

	if s, ok := any(&ec.Params).(Stampable); ok {
		s.StampRun(ec.ID, at)
		return nil
	}
	if s, ok := any(ec.Params).(Stampable); ok {
		s.StampRun(ec.ID, at)
	}
	return nil
}
