package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/model"
)

// ValidateConfig performs a strict check that every step in the loaded
// configuration refers to a registered kind.
func (r *Registry) ValidateConfig(ctx context.Context, cfg *model.Config) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, pipeline := range cfg.Pipelines {
		for _, step := range pipeline.Steps {
			if _, ok := r.handlers[step.Kind]; ok {
				continue
			}
			msg := fmt.Sprintf("pipeline '%s': step '%s' uses unknown kind '%s'", pipeline.Name, step.Name, step.Kind)
			if step.FSInformation != nil {
				msg += fmt.Sprintf(" (defined in %s)", step.FSInformation.FilePath)
			}
			errs = append(errs, msg)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "kinds", r.Kinds())
	return nil
}
