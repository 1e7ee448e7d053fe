package app

import (
	"github.com/specialistvlad/taskpipe/internal/registry"
	"github.com/specialistvlad/taskpipe/steps/emit"
	"github.com/specialistvlad/taskpipe/steps/fail"
	"github.com/specialistvlad/taskpipe/steps/flaky"
	"github.com/specialistvlad/taskpipe/steps/sleep"
)

// coreModules returns the definitive list of step modules that are compiled
// into the taskpipe binary. It returns fresh instances on every call because
// some modules (flaky) carry per-application state.
func coreModules() []registry.Module {
	return []registry.Module{
		&emit.Module{},
		&sleep.Module{},
		&flaky.Module{},
		&fail.Module{},
	}
}
