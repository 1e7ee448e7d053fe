package executor

// Plugin is the minimal contract every plugin fulfils. Behavior is added by
// also implementing one or more of the hook interfaces below; a plugin that
// implements none of them is registered but never invoked.
type Plugin interface {
	// PluginName identifies the plugin for dedup and logging.
	PluginName() string
}

// BeforeHook runs before the task. It may mutate ec.Params or set
// ec.Runtime.BreakChain to skip the remaining before-hooks of this run.
type BeforeHook[P any] interface {
	Plugin
	OnBefore(ec *Context[P]) error
}

// SuccessHook runs after the task succeeded. It may replace ec.Value.
type SuccessHook[P any] interface {
	Plugin
	OnSuccess(ec *Context[P]) error
}

// ErrorHook runs after the task or a hook failed. Returning an error
// supersedes ec.Err but does not stop the remaining error hooks. Setting
// ec.Value together with ec.Runtime.ReturnBreakChain resolves the run to
// that value instead of the error.
type ErrorHook[P any] interface {
	Plugin
	OnError(ec *Context[P]) error
}

// PhaseHook receives custom phases dispatched via RunPhase. The lifecycle
// phases have their own interfaces and are not routed here.
type PhaseHook[P any] interface {
	Plugin
	OnPhase(phase Phase, ec *Context[P]) error
}

// Gate is an optional capability: when implemented, Enabled is consulted
// before each hook invocation on this plugin and a false return skips the
// plugin for that phase.
type Gate interface {
	Enabled(phase Phase) bool
}

// Exclusive is an optional capability: a plugin reporting true refuses to
// coexist with another registration under the same name.
type Exclusive interface {
	Exclusive() bool
}
