package hclcfg

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/internal/tphcl"
)

// validateConfig performs the structural checks that do not need an
// evaluation context: unique pipeline names, unique step identities within a
// pipeline, and the absence of variable references.
func validateConfig(cfg *model.Config) error {
	var diags hcl.Diagnostics
	seenPipelines := make(map[string]string)

	for _, pipeline := range cfg.Pipelines {
		if prev, dup := seenPipelines[pipeline.Name]; dup {
			return fmt.Errorf("duplicate pipeline '%s': already defined in %s", pipeline.Name, prev)
		}
		seenPipelines[pipeline.Name] = pipeline.FSInformation.FilePath

		seenSteps := make(map[string]struct{})
		for _, step := range pipeline.Steps {
			if _, dup := seenSteps[step.ID()]; dup {
				return fmt.Errorf("pipeline '%s': duplicate step '%s'", pipeline.Name, step.ID())
			}
			seenSteps[step.ID()] = struct{}{}
		}

		diags = append(diags, checkReferences(pipeline.Expressions())...)
	}

	if diags.HasErrors() {
		return diags
	}
	return nil
}

// checkReferences rejects expressions that refer to variables. Pipeline
// files have no variable namespace, so a reference would only fail later
// with a far less helpful message.
func checkReferences(exprs []hcl.Expression) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, traversal := range expr.Variables() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported reference",
				Detail:   fmt.Sprintf("References like '%s' are not supported in pipeline files.", tphcl.TraversalKey(traversal)),
				Subject:  traversal.SourceRange().Ptr(),
			})
		}
	}
	return diags
}
