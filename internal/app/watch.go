package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ciproject/internal/ctxlog"
	"github.com/specialistvlad/ciproject/internal/watch"
)

const configExtension = ".hcl"

// Watch loads the configuration and then reloads it on every change until
// ctx is cancelled. A snapshot that fails to load or resolve is logged and
// dropped; the previous snapshot stays current.
func (a *App) Watch(ctx context.Context) error {
	a.logger.Debug("App.Watch method started.")

	w, err := watch.New(a.config.ConfigPaths, configExtension, a.config.Debounce)
	if err != nil {
		return fmt.Errorf("failed to start watching configuration: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			a.logger.Warn("Failed to close file watcher.", "error", err)
		}
	}()

	a.reload(ctx)
	a.logger.Info("Watching configuration for changes.", "paths", a.config.ConfigPaths)

	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := w.Run(ctx, a.reload); err != nil {
		return fmt.Errorf("configuration watcher failed: %w", err)
	}

	a.logger.Debug("App.Watch method finished.")
	return nil
}

func (a *App) reload(ctx context.Context) {
	tree, err := a.Load(ctx)
	if err != nil {
		if snap, ok := a.store.Current(); ok {
			a.logger.Error("Configuration reload failed, keeping previous snapshot.", "error", err, "version", snap.Version)
		} else {
			a.logger.Error("Configuration reload failed, no snapshot available yet.", "error", err)
		}
		return
	}
	if err := a.publish(tree); err != nil {
		a.logger.Error("Failed to publish snapshot.", "error", err)
	}
}
