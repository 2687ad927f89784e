package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/ctxlog"
	"github.com/specialistvlad/ciproject/internal/render"
	"github.com/specialistvlad/ciproject/internal/resolve"
	"github.com/specialistvlad/ciproject/internal/snapshotstore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	store  *snapshotstore.Store
}

// NewApp is the constructor for the main application. Rendered output goes
// to outW and logs to logW, through a logger owned by this App alone.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		store:  snapshotstore.New(),
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Snapshots returns the store holding the last accepted snapshot.
func (a *App) Snapshots() *snapshotstore.Store {
	return a.store
}

// Load reads the configuration snapshot and resolves its project tree. Any
// failure rejects the snapshot as a whole.
func (a *App) Load(ctx context.Context) (*resolve.Tree, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Loading configuration...", "paths", a.config.ConfigPaths)

	model, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	tree, err := resolve.Resolve(ctx, model, a.config.RootProject)
	if err != nil {
		return nil, fmt.Errorf("configuration rejected: %w", err)
	}
	return tree, nil
}

// Run loads and resolves the configuration and renders the project tree.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("App.Run method started.")

	tree, err := a.Load(ctx)
	if err != nil {
		a.logger.Error("Configuration sync failed.", "error", err)
		return err
	}

	if err := a.publish(tree); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.", "projects", tree.Len())
	return nil
}

// publish makes tree the current snapshot and renders it.
func (a *App) publish(tree *resolve.Tree) error {
	snap := a.store.Publish(tree)
	a.logger.Info("Snapshot published.", "version", snap.Version, "root", tree.Root.Project.ID())

	if err := render.Write(a.outW, tree, a.config.Output); err != nil {
		return fmt.Errorf("failed to render project tree: %w", err)
	}
	return nil
}
