package testutil

import (
	"testing"

	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/internal/registry"
)

// RunHCLPipelineTest provides a simplified harness for testing the parsing
// of a single pipeline HCL string. It loads without running and returns the
// steps of the first parsed pipeline, or nil when loading failed.
func RunHCLPipelineTest(t *testing.T, pipelineHCL string, modules ...registry.Module) (*HarnessResult, []*model.Step) {
	t.Helper()

	files := map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	}

	result := LoadIntegrationTest(t, files, modules...)

	if result.App != nil && result.App.Config() != nil && len(result.App.Config().Pipelines) > 0 {
		return result, result.App.Config().Pipelines[0].Steps
	}
	return result, nil
}
