package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertStepRan checks the log output within a HarnessResult to confirm that
// a specific step has completed. It keys on the step-scoped log attribute,
// making tests resilient to changes in message wording elsewhere.
func AssertStepRan(t *testing.T, result *HarnessResult, kind, stepName string) {
	t.Helper()

	stepAttr := fmt.Sprintf("step=%s.%s", kind, stepName)
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, stepAttr) && strings.Contains(line, "✅ Finished task") {
			return
		}
	}
	require.Failf(t, "step did not complete",
		"no completion log line for step '%s.%s' was found in logs", kind, stepName)
}

// AssertStepDidNotRun is the inverse check: the step must not have produced
// a start line at all.
func AssertStepDidNotRun(t *testing.T, result *HarnessResult, kind, stepName string) {
	t.Helper()

	stepAttr := fmt.Sprintf("step=%s.%s", kind, stepName)
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, stepAttr) && strings.Contains(line, "▶️ Starting task") {
			require.Failf(t, "step unexpectedly ran",
				"found start log line for step '%s.%s': %s", kind, stepName, line)
		}
	}
}
