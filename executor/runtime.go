package executor

// Phase names a point in the execution lifecycle where plugins may run.
type Phase string

// The three lifecycle phases every run passes through. Additional phase
// names may be dispatched explicitly via RunPhase.
const (
	PhaseBefore  Phase = "before"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Runtime is the per-run scratch state shared by all hooks of one execution.
// It is created fresh for every Exec call and discarded when the run settles;
// nothing in it survives across runs.
type Runtime struct {
	// Hook is the phase currently executing, for diagnostics.
	Hook Phase

	// Calls counts hook invocations within the current phase, across
	// plugins. It resets when a new phase starts.
	Calls int

	// BreakChain stops invoking subsequent plugins for the current phase
	// only. It resets at each phase start.
	BreakChain bool

	// ReturnBreakChain is honored during the error phase: it stops the
	// remaining error hooks and resolves the run to Context.Value instead
	// of propagating the error.
	ReturnBreakChain bool

	bag map[string]any
}

// Set stores a value in the run-scoped extension bag, for plugin-to-plugin
// signaling within one run.
func (r *Runtime) Set(key string, v any) {
	if r.bag == nil {
		r.bag = make(map[string]any)
	}
	r.bag[key] = v
}

// Get reads a value stored by Set.
func (r *Runtime) Get(key string) (any, bool) {
	v, ok := r.bag[key]
	return v, ok
}

// Delete removes a key from the extension bag.
func (r *Runtime) Delete(key string) {
	delete(r.bag, key)
}
