package executor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
)

// Task is the unit of work an executor wraps. It receives the run's Context
// and returns the run's value or an error.
type Task[P any] func(ec *Context[P]) (any, error)

// ErrNilTask is returned when Exec is called without a task.
var ErrNilTask = errors.New("task is nil")

// Option configures an executor at construction time.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger used for registration diagnostics. Runs log
// through the logger carried by their context instead.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// core holds the plugin list and the pipeline shared by both executor
// flavours. The list is expected to be configured via Use before concurrent
// Exec calls begin; no synchronization covers a racing Use.
type core[P any] struct {
	log     *slog.Logger
	plugins []Plugin
}

func newCore[P any](opts ...Option) core[P] {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return core[P]{log: o.log}
}

// Use registers a plugin. Registration order is invocation order for every
// phase; error hooks run in the same order as well, not reversed. When the
// name collides with an existing registration and either side is Exclusive,
// the call is a no-op that logs a warning.
func (c *core[P]) Use(p Plugin) {
	if p == nil {
		return
	}
	name := p.PluginName()
	for _, existing := range c.plugins {
		if existing.PluginName() != name {
			continue
		}
		if isExclusive(existing) || isExclusive(p) {
			c.log.Warn("Plugin already registered, dropping duplicate.", "plugin", name)
			return
		}
	}
	c.plugins = append(c.plugins, p)
}

// Plugins returns the names of the registered plugins in invocation order.
func (c *core[P]) Plugins() []string {
	names := make([]string, len(c.plugins))
	for i, p := range c.plugins {
		names[i] = p.PluginName()
	}
	return names
}

func isExclusive(p Plugin) bool {
	e, ok := p.(Exclusive)
	return ok && e.Exclusive()
}

// RunPhase dispatches a custom phase by name to every enabled PhaseHook
// plugin, under the same ordering and chain-break rules as the lifecycle
// phases. Tasks call it mid-run to open extra interception points.
func (c *core[P]) RunPhase(phase Phase, ec *Context[P]) error {
	if ec == nil || ec.Runtime == nil {
		return errors.New("RunPhase requires a context created by Exec")
	}
	return c.runPhase(phase, ec)
}

// run drives one execution through the pipeline and returns the settled
// context. The error phase runs at most once per run.
func (c *core[P]) run(ctx context.Context, params P, task Task[P]) *Context[P] {
	ec := &Context[P]{
		Params:  params,
		Runtime: &Runtime{},
		ID:      uuid.NewString(),
		ctx:     ctx,
	}
	logger := ctxlog.FromContext(ctx).With("runID", ec.ID)
	logger.Debug("Starting run.", "plugins", len(c.plugins))

	c.advance(ec, task)
	if ec.Err != nil {
		c.runErrorPhase(ec)
	}

	if ec.Err != nil {
		logger.Debug("Run settled with error.", "error", ec.Err)
	} else {
		logger.Debug("Run settled.")
	}
	return ec
}

// advance moves the run through before, task, and success. The first error
// stops it; a before-hook error skips the task entirely.
func (c *core[P]) advance(ec *Context[P], task Task[P]) {
	if task == nil {
		ec.Err = ErrNilTask
		return
	}
	if err := c.runPhase(PhaseBefore, ec); err != nil {
		ec.Err = err
		return
	}
	v, err := task(ec)
	if err != nil {
		ec.Err = err
		return
	}
	ec.Value = v
	if err := c.runPhase(PhaseSuccess, ec); err != nil {
		ec.Err = err
	}
}

// runPhase invokes the phase's hook on each enabled plugin in registration
// order. A hook error ends the phase immediately; BreakChain skips the
// remaining plugins for this phase only.
func (c *core[P]) runPhase(phase Phase, ec *Context[P]) error {
	rt := ec.Runtime
	rt.Hook = phase
	rt.Calls = 0
	rt.BreakChain = false

	logger := ctxlog.FromContext(ec.ctx)
	logger.Debug("Running phase.", "phase", phase, "runID", ec.ID)

	for _, p := range c.plugins {
		if rt.BreakChain {
			logger.Debug("Chain broken, skipping remaining plugins.", "phase", phase, "runID", ec.ID)
			break
		}
		fn := hookFor[P](p, phase)
		if fn == nil {
			continue
		}
		if g, ok := p.(Gate); ok && !g.Enabled(phase) {
			continue
		}
		rt.Calls++
		if err := fn(ec); err != nil {
			return err
		}
	}
	return nil
}

// runErrorPhase notifies error hooks about ec.Err. Unlike the other phases,
// a hook error here supersedes ec.Err and the remaining hooks still run, so
// every plugin observes the failure. ReturnBreakChain ends the phase and
// resolves the run to ec.Value.
func (c *core[P]) runErrorPhase(ec *Context[P]) {
	rt := ec.Runtime
	rt.Hook = PhaseError
	rt.Calls = 0
	rt.BreakChain = false
	rt.ReturnBreakChain = false

	logger := ctxlog.FromContext(ec.ctx)
	logger.Debug("Running phase.", "phase", PhaseError, "runID", ec.ID)

	for _, p := range c.plugins {
		if rt.BreakChain || rt.ReturnBreakChain {
			break
		}
		h, ok := p.(ErrorHook[P])
		if !ok {
			continue
		}
		if g, ok := p.(Gate); ok && !g.Enabled(PhaseError) {
			continue
		}
		rt.Calls++
		if err := h.OnError(ec); err != nil {
			ec.Err = err
		}
	}

	if rt.ReturnBreakChain {
		logger.Debug("Error resolved to a value by plugin.", "runID", ec.ID)
		ec.Err = nil
	}
}

// hookFor resolves the hook function a plugin exposes for a phase, or nil
// when the plugin does not participate. Custom phase names route to
// PhaseHook.
func hookFor[P any](p Plugin, phase Phase) func(*Context[P]) error {
	switch phase {
	case PhaseBefore:
		if h, ok := p.(BeforeHook[P]); ok {
			return h.OnBefore
		}
	case PhaseSuccess:
		if h, ok := p.(SuccessHook[P]); ok {
			return h.OnSuccess
		}
	case PhaseError:
		if h, ok := p.(ErrorHook[P]); ok {
			return h.OnError
		}
	default:
		if h, ok := p.(PhaseHook[P]); ok {
			return func(ec *Context[P]) error { return h.OnPhase(phase, ec) }
		}
	}
	return nil
}

// outcome interprets a settled context: the error wins unless the error
// phase resolved it away.
func outcome[P any](ec *Context[P]) (any, error) {
	if ec.Err != nil {
		return nil, ec.Err
	}
	return ec.Value, nil
}
