package app

import (
	"context"
	"io"

	"github.com/specialistvlad/ciproject/internal/config"
)

// Validate loads and resolves the configuration at paths without rendering
// anything. It is the programmatic equivalent of a dry configuration sync.
func Validate(ctx context.Context, loader config.Loader, rootProject string, paths ...string) error {
	cfg, err := NewConfig(Config{ConfigPaths: paths, RootProject: rootProject})
	if err != nil {
		return err
	}
	_, err = NewApp(io.Discard, io.Discard, cfg, loader).Load(ctx)
	return err
}
