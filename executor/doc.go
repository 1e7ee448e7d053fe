// Package executor runs a task through a deterministic plugin-hook pipeline.
//
// A task is wrapped with a before/success/error lifecycle: registered plugins
// observe, intercept, or short-circuit the run at each phase. Plugins execute
// in registration order within every phase, error hooks included, and a
// plugin can stop the remainder of a phase (chain break) or convert a failure
// into a success (return break). Each run owns a fresh Context and Runtime,
// so concurrent runs on one executor never share state.
//
// Two executor flavours exist. Sync is for hooks and tasks that complete
// without blocking. Async carries a context.Context through the run for
// hooks and tasks that block, await cancellation, or call out to the network.
package executor
