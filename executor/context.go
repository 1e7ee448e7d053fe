package executor

import "context"

// Context is the execution context of a single run. It is created once per
// Exec call, owned exclusively by that call, and mutated only by the hooks
// and task of that run.
type Context[P any] struct {
	// Params is the caller-supplied input. Before-hooks may mutate it, for
	// example to normalize a request. Mutations applied by hooks that ran
	// before a chain break persist.
	Params P

	// Value is the task's result. Success-hooks may replace it entirely,
	// and an error hook may set it together with ReturnBreakChain to
	// resolve a failed run.
	Value any

	// Err is the captured task or hook error. Once set within a run it is
	// only ever superseded by a later error hook's error or cleared by a
	// return break.
	Err error

	// Runtime is the per-run scratch state shared by this run's hooks.
	Runtime *Runtime

	// ID identifies this run in logs.
	ID string

	ctx context.Context
}

// Context returns the context this run executes under. Async executors
// carry the caller's context; Sync runs use context.Background().
func (ec *Context[P]) Context() context.Context {
	return ec.ctx
}

// Result is the outcome of ExecNoError: either Value or Err, never both
// meaningfully set. It exists for call sites that thread outcomes uniformly
// instead of branching on a returned error.
type Result struct {
	Value any
	Err   error
}

// Ok reports whether the run settled successfully.
func (r Result) Ok() bool {
	return r.Err == nil
}
