package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/fsutil"
	"github.com/specialistvlad/taskpipe/internal/model"
)

// Loader discovers and parses pipeline definition files.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under path, which may be a single file or a
// directory, and returns the merged configuration. Files are merged in
// walk order, so definitions load deterministically.
func (l *Loader) Load(ctx context.Context, path string) (*model.Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipeline definitions...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		logger.Error("Failed to walk pipelines path", "path", path, "error", err)
		return nil, err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl pipeline files found in path", "path", path)
		return model.NewConfig(), nil
	}

	logger.Debug("Found HCL files to load", "files", filePaths)

	parser := hclparse.NewParser()
	cfg := model.NewConfig()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		fileCfg, err := l.loadFile(hclFile, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to process pipeline definitions in %s: %w", filePath, err)
		}
		cfg.Merge(fileCfg)
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	logger.Info("Pipelines loaded successfully.", "pipelines", len(cfg.Pipelines))
	return cfg, nil
}
