package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/taskpipe/internal/app"
	"github.com/specialistvlad/taskpipe/internal/hclcfg"
	"github.com/specialistvlad/taskpipe/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, modules...)
}

// RunIntegrationTestWithContext writes the given files into a temporary
// workspace, then loads and runs the application against it. The files map
// uses paths relative to the workspace root; pipeline definitions belong
// under "pipelines/".
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	testApp, logBuffer, startupErr := newHarnessApp(t, files, modules...)
	if startupErr != nil {
		return &HarnessResult{LogOutput: logBuffer.String(), Err: startupErr}
	}

	runErr := testApp.Load(ctx)
	if runErr == nil {
		runErr = testApp.Run(ctx)
	}

	if os.Getenv("TASKPIPE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// LoadIntegrationTest is the parse-focused variant: it loads the
// configuration but never runs it, so loader errors propagate without any
// execution noise on top.
func LoadIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	testApp, logBuffer, startupErr := newHarnessApp(t, files, modules...)
	if startupErr != nil {
		return &HarnessResult{LogOutput: logBuffer.String(), Err: startupErr}
	}

	loadErr := testApp.Load(context.Background())

	if os.Getenv("TASKPIPE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       loadErr,
		App:       testApp,
	}
}

// newHarnessApp builds an isolated application over a temporary workspace.
// Construction panics (such as a duplicate handler registration) are
// captured and returned as errors.
func newHarnessApp(t *testing.T, files map[string]string, modules ...registry.Module) (*app.App, *SafeBuffer, error) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	pipelinesDir := filepath.Join(tmpDir, "pipelines")
	require.NoError(t, os.Mkdir(pipelinesDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		PipelinesPath: pipelinesDir,
		LogLevel:      "debug",
		LogFormat:     "text",
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hclcfg.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return nil, logBuffer, fmt.Errorf("application startup panicked | %v", panicErr)
	}
	return testApp, logBuffer, nil
}
