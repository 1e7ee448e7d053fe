package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/taskpipe/internal/ctxlog"
	"github.com/specialistvlad/taskpipe/internal/model"
	"github.com/specialistvlad/taskpipe/internal/registry"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads pipeline definitions from a path, which may be a single
	// file or a directory, and translates them into the agnostic model.
	Load(ctx context.Context, path string) (*model.Config, error)
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loader   Loader
	registry *registry.Registry
	appCfg   *Config
	config   *model.Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Call Load before Run.
func NewApp(outW io.Writer, appConfig *Config, loader Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules()
	}
	reg := registry.New(modules...)
	logger.Debug("All step modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		loader:   loader,
		registry: reg,
		appCfg:   appConfig,
	}
}

// Load reads the pipeline configuration from the configured path and checks
// it against the registered step kinds.
func (a *App) Load(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	cfg, err := a.loader.Load(ctx, a.appCfg.PipelinesPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.")

	if err := a.registry.ValidateConfig(ctx, cfg); err != nil {
		return err
	}

	a.config = cfg
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Config returns the loaded pipeline configuration, or nil before Load.
func (a *App) Config() *model.Config {
	return a.config
}
