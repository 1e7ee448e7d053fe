package executor

import "context"

// Sync executes tasks whose hooks and body complete without blocking. Runs
// execute entirely on the calling goroutine under context.Background().
type Sync[P any] struct {
	core[P]
}

// NewSync constructs a synchronous executor.
func NewSync[P any](opts ...Option) *Sync[P] {
	return &Sync[P]{core: newCore[P](opts...)}
}

// Exec runs task through the hook pipeline and returns the settled value,
// or the final error when the error hooks did not resolve it.
func (e *Sync[P]) Exec(params P, task Task[P]) (any, error) {
	return outcome(e.run(context.Background(), params, task))
}

// ExecNoError is Exec with the outcome folded into a Result value instead
// of an error return.
func (e *Sync[P]) ExecNoError(params P, task Task[P]) Result {
	v, err := outcome(e.run(context.Background(), params, task))
	return Result{Value: v, Err: err}
}
