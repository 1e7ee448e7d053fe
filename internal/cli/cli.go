package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/taskpipe/internal/app"
)

// ExitError carries the process exit code a CLI failure should produce.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `
TaskPipe - A declarative, plugin-hooked pipeline runner.

Usage:
  taskpipe [options] [PIPELINES_PATH]

Arguments:
  PIPELINES_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`

// usageErr builds the exit-code-2 error for an invalid flag value.
func usageErr(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// oneOf reports whether value is among the allowed choices.
func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Parse turns command-line arguments into an app.Config. The boolean result
// is true when the process should exit cleanly without running anything,
// as after printing help.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	flagSet := flag.NewFlagSet("taskpipe", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageHeader)
		flagSet.PrintDefaults()
	}

	pipelinesFlag := flagSet.String("pipelines", "", "Path to the pipelines file or directory.")
	pFlag := flagSet.String("p", "", "Path to the pipelines file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// The named flags win over a bare positional path.
	path := *pipelinesFlag
	if path == "" {
		path = *pFlag
	}
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		slog.Debug("No pipelines path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	slog.Debug("Pipelines path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if !oneOf(logFormat, "text", "json") {
		return nil, false, usageErr("invalid log-format '%s': must be 'text' or 'json'", logFormat)
	}
	logLevel := strings.ToLower(*logLevelFlag)
	if !oneOf(logLevel, "debug", "info", "warn", "error") {
		return nil, false, usageErr("invalid log-level '%s': must be 'debug', 'info', 'warn', or 'error'", logLevel)
	}

	config, err := app.NewConfig(app.Config{
		PipelinesPath: path,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
