package integration_tests

import (
	"testing"

	"github.com/specialistvlad/taskpipe/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestStep_DisabledStepIsSkipped(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "partial" {
			step "emit" "skipped" {
				enabled = false
				arguments {
					message = "should never appear"
				}
			}
			step "emit" "active" {
				arguments {
					message = "still running"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.NoError(t, result.Err)
	testutil.AssertStepDidNotRun(t, result, "emit", "skipped")
	testutil.AssertStepRan(t, result, "emit", "active")
	require.Contains(t, result.LogOutput, "Step is disabled, skipping.")
	require.NotContains(t, result.LogOutput, "should never appear")
}

func TestStep_ExplicitlyEnabledStepRuns(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "explicit" {
			step "emit" "active" {
				enabled = true
				arguments {
					message = "explicitly on"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.NoError(t, result.Err)
	testutil.AssertStepRan(t, result, "emit", "active")
}

func TestStep_NonBooleanEnabledRejected(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "misconfigured" {
			step "emit" "odd" {
				enabled = "yes"
				arguments {
					message = "unreachable"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "invalid enabled attribute")
}
