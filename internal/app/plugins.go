package app

import (
	"fmt"

	"github.com/specialistvlad/taskpipe/executor"
	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/plugins/logging"
	"github.com/specialistvlad/taskpipe/plugins/recovery"
	"github.com/specialistvlad/taskpipe/plugins/stamp"
)

// pluginFactories maps the names accepted in a pipeline's `plugins` block to
// constructors for the bundled task plugins. Factories return fresh
// instances so that plugin state never leaks between pipelines.
var pluginFactories = map[string]func() executor.Plugin{
	"logging":  func() executor.Plugin { return logging.New[*StepParams]() },
	"stamp":    func() executor.Plugin { return stamp.New[*StepParams]() },
	"recovery": func() executor.Plugin { return recovery.New[*StepParams]() },
}

// defaultPlugins is the selection applied when a pipeline has no `plugins`
// block.
var defaultPlugins = []string{"logging"}

// pluginsFor resolves a pipeline's plugin selection into constructed
// plugins, preserving the configured order.
func pluginsFor(selection *model.Plugins) ([]executor.Plugin, error) {
	names := defaultPlugins
	if selection != nil {
		names = selection.Use
	}

	plugins := make([]executor.Plugin, 0, len(names))
	for _, name := range names {
		factory, ok := pluginFactories[name]
		if !ok {
			return nil, fmt.Errorf("unknown plugin '%s'", name)
		}
		plugins = append(plugins, factory())
	}
	return plugins, nil
}
