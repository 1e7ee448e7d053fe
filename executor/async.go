package executor

import "context"

// Async executes tasks that may block. The caller's context rides on the
// run's Context, visible to hooks and the task via ec.Context(), so they can
// observe cancellation or deadlines. Cancellation is cooperative: the
// pipeline never interrupts a running hook or task, and hooks of one phase
// are sequenced, never parallel.
type Async[P any] struct {
	core[P]
}

// NewAsync constructs a context-aware executor.
func NewAsync[P any](opts ...Option) *Async[P] {
	return &Async[P]{core: newCore[P](opts...)}
}

// Exec runs task through the hook pipeline under ctx and returns the settled
// value, or the final error when the error hooks did not resolve it.
func (e *Async[P]) Exec(ctx context.Context, params P, task Task[P]) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return outcome(e.run(ctx, params, task))
}

// ExecNoError is Exec with the outcome folded into a Result value instead
// of an error return.
func (e *Async[P]) ExecNoError(ctx context.Context, params P, task Task[P]) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	v, err := outcome(e.run(ctx, params, task))
	return Result{Value: v, Err: err}
}
