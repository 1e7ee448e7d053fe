// Package ctxmerge composes multiple cancellation sources into a single
// context.Context. The composed context is cancelled as soon as any of its
// parents is cancelled, and it reports the firing parent's cancellation cause
// unchanged via context.Cause.
package ctxmerge

import (
	"context"
	"sync"
)

// Any returns a context that is cancelled when any non-nil parent is
// cancelled, together with a stop function that detaches every listener from
// the parents without altering their state.
//
// Nil entries in parents are skipped; they are a convenience for callers that
// assemble cancellation sources conditionally. With zero usable parents the
// returned context is valid and never cancelled.
//
// If a parent is already cancelled when Any is called, the composed context
// is cancelled immediately and no listeners are attached. Callers must not
// depend on whether the immediate path or the listener path was taken; the
// observable contract is identical.
//
// The composed context reports context.Canceled from Err; the root reason of
// the firing parent is available unchanged through context.Cause. Once the
// composed context has fired, later parent cancellations cannot replace the
// recorded cause.
//
// The stop function is idempotent and safe to call at any time, including
// after the composed context has fired.
func Any(parents ...context.Context) (context.Context, func()) {
	var live []context.Context
	for _, p := range parents {
		if p != nil {
			live = append(live, p)
		}
	}

	merged, cancel := context.WithCancelCause(context.Background())

	for _, p := range live {
		if p.Err() != nil {
			cancel(context.Cause(p))
			return merged, func() {}
		}
	}

	m := &merger{
		cancel: cancel,
		stops:  make([]func() bool, 0, len(live)),
	}
	for _, p := range live {
		p := p
		m.stops = append(m.stops, context.AfterFunc(p, func() {
			m.fire(context.Cause(p))
		}))
	}
	return merged, m.clear
}

// merger owns the listeners attached to the constituent contexts.
type merger struct {
	cancel context.CancelCauseFunc

	mu    sync.Mutex
	stops []func() bool
}

// fire settles the composed context with the given cause and detaches from
// the remaining parents. WithCancelCause records only the first cause, so a
// second parent firing concurrently cannot overwrite the reason.
func (m *merger) fire(cause error) {
	m.cancel(cause)
	m.clear()
}

// clear detaches all listeners. Safe to call repeatedly and after firing.
func (m *merger) clear() {
	m.mu.Lock()
	stops := m.stops
	m.stops = nil
	m.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}
