package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every configuration file found under paths and returns the
	// merged snapshot. Any parse, decode or duplicate error rejects the whole
	// snapshot.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
