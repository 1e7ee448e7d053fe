package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/taskpipe/internal/testutil"
	"github.com/specialistvlad/taskpipe/retry"
	"github.com/stretchr/testify/require"
)

func TestRetry_FlakyStepSucceedsWithinBudget(t *testing.T) {
	t.Parallel()

	// The step fails twice, so the third attempt succeeds while the budget
	// still allows a fourth.
	pipelineHCL := `
		pipeline "persistent" {
			step "flaky" "eventually" {
				arguments {
					fail_times = 2
				}
				retry {
					max_retries = 3
					delay       = "10ms"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.NoError(t, result.Err)
	testutil.AssertStepRan(t, result, "flaky", "eventually")
	require.Contains(t, result.LogOutput, "Flaky step succeeded.")
	require.Contains(t, result.LogOutput, "attempt=3")
}

func TestRetry_BudgetExhaustedFailsPipeline(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "doomed" {
			step "flaky" "stubborn" {
				arguments {
					fail_times = 5
					message    = "still broken"
				}
				retry {
					max_retries = 2
					delay       = "10ms"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed at step 'flaky.stubborn'")
	require.Contains(t, result.Err.Error(), "all 3 attempts failed")
	require.Contains(t, result.Err.Error(), "still broken")

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, result.Err, &exhausted)
	require.Equal(t, 3, exhausted.Attempts)
}

func TestRetry_DefaultBudgetAllowsFourAttempts(t *testing.T) {
	t.Parallel()

	// No max_retries attribute, so the default budget of three retries
	// applies and the fourth attempt succeeds. Only the delay is overridden
	// to keep the test fast.
	pipelineHCL := `
		pipeline "defaults" {
			step "flaky" "barely" {
				arguments {
					fail_times = 3
				}
				retry {
					delay = "10ms"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, "attempt=4")
}

func TestRetry_ExponentialBackoffStrategy(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "growing" {
			step "flaky" "eventually" {
				arguments {
					fail_times = 2
				}
				retry {
					max_retries = 3
					delay       = "5ms"
					backoff {
						strategy = "exponential"
					}
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.NoError(t, result.Err)
	testutil.AssertStepRan(t, result, "flaky", "eventually")
}

func TestRetry_UnknownBackoffStrategyRejected(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "misconfigured" {
			step "emit" "never" {
				arguments {
					message = "unreachable"
				}
				retry {
					backoff {
						strategy = "banana"
					}
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "unknown backoff strategy 'banana'")
	testutil.AssertStepDidNotRun(t, result, "emit", "never")
}

func TestRetry_InvalidDelayRejected(t *testing.T) {
	t.Parallel()

	pipelineHCL := `
		pipeline "misconfigured" {
			step "emit" "never" {
				arguments {
					message = "unreachable"
				}
				retry {
					delay = "soon"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "invalid retry delay")
	require.Contains(t, result.Err.Error(), "invalid duration 'soon'")
}

func TestRetry_FailureIsWrappedNotReplaced(t *testing.T) {
	t.Parallel()

	// errors.Is must see through the exhaustion wrapper to the final
	// attempt's error; the handler error here is plain, so unwrapping one
	// level and matching on the message is the observable contract.
	pipelineHCL := `
		pipeline "doomed" {
			step "fail" "always" {
				arguments {
					message = "configured to fail"
				}
				retry {
					max_retries = 1
					delay       = "1ms"
				}
			}
		}
	`
	result := testutil.RunIntegrationTest(t, map[string]string{
		"pipelines/main.hcl": pipelineHCL,
	})

	require.Error(t, result.Err)

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, result.Err, &exhausted)
	require.Equal(t, 2, exhausted.Attempts)
	require.Equal(t, "configured to fail", errors.Unwrap(exhausted).Error())
}
