// Package logging provides the canonical side-effecting plugin: it announces
// every run, reports how it settled, and records the run's duration.
package logging

import (
	"time"

	"github.com/specialistvlad/taskpipe/executor"
	"github.com/specialistvlad/taskpipe/internal/ctxlog"
)

const startedAtKey = "logging.started_at"

// Plugin logs the lifecycle of each run through the logger carried by the
// run's context. The duration spans from the before phase to settlement, so
// it covers the task and any hooks in between.
type Plugin[P any] struct {
	now func() time.Time
}

// New constructs the logging plugin.
func New[P any]() *Plugin[P] {
	return &Plugin[P]{now: time.Now}
}

// PluginName implements executor.Plugin.
func (p *Plugin[P]) PluginName() string { return "logging" }

// OnBefore records the start time in the runtime bag and announces the run.
func (p *Plugin[P]) OnBefore(ec *executor.Context[P]) error {
	ec.Runtime.Set(startedAtKey, p.now())
	ctxlog.FromContext(ec.Context()).With("runID", ec.ID).Info("▶️ Starting task")
	return nil
}

// OnSuccess reports the settled run.
func (p *Plugin[P]) OnSuccess(ec *executor.Context[P]) error {
	logger := ctxlog.FromContext(ec.Context()).With("runID", ec.ID)
	logger.Info("✅ Finished task", "duration", p.sinceStart(ec))
	return nil
}

// OnError reports the failure without altering it.
func (p *Plugin[P]) OnError(ec *executor.Context[P]) error {
	logger := ctxlog.FromContext(ec.Context()).With("runID", ec.ID)
	logger.Error("Task failed.", "error", ec.Err, "duration", p.sinceStart(ec))
	return nil
}

func (p *Plugin[P]) sinceStart(ec *executor.Context[P]) time.Duration {
	v, ok := ec.Runtime.Get(startedAtKey)
	if !ok {
		return 0
	}
	start, ok := v.(time.Time)
	if !ok {
		return 0
	}
	return p.now().Sub(start)
}
