// Package recovery converts failed runs into tagged result values, so call
// sites can treat handled failures as data instead of propagated errors.
package recovery

import "github.com/specialistvlad/taskpipe/executor"

// Recovered tags a failure that the plugin converted into a value. The
// original error is preserved for inspection.
type Recovered struct {
	Err error
}

// Option configures the plugin.
type Option func(*config)

type config struct {
	match func(error) bool
}

// WithMatch restricts recovery to errors the predicate accepts; others
// propagate untouched. Without it every error is recovered.
func WithMatch(fn func(error) bool) Option {
	return func(c *config) { c.match = fn }
}

// Plugin resolves the error phase to a Recovered value. It is exclusive:
// a second registration under the same name is dropped by the executor.
type Plugin[P any] struct {
	match func(error) bool
}

// New constructs the recovery plugin.
func New[P any](opts ...Option) *Plugin[P] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return &Plugin[P]{match: c.match}
}

// PluginName implements executor.Plugin.
func (p *Plugin[P]) PluginName() string { return "recovery" }

// Exclusive refuses duplicate registrations. Two recovery plugins in one
// pipeline would shadow each other's predicates.
func (p *Plugin[P]) Exclusive() bool { return true }

// OnError converts the captured error into a Recovered value and ends the
// error phase via ReturnBreakChain.
func (p *Plugin[P]) OnError(ec *executor.Context[P]) error {
	if p.match != nil && !p.match(ec.Err) {
		return nil
	}
	ec.Value = Recovered{Err: ec.Err}
	ec.Runtime.ReturnBreakChain = true
	return nil
}
