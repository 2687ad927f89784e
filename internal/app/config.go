package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/ciproject/internal/render"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // .hcl files or directories
	RootProject string   // empty selects the only unnested project
	Output      render.Format

	Watch    bool          // keep running and reload on change
	Debounce time.Duration // quiet period before a reload; zero uses the watcher default

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}
	for _, p := range cfg.ConfigPaths {
		if strings.TrimSpace(p) == "" {
			return nil, errors.New("configuration paths must not be empty")
		}
	}

	if cfg.Output == "" {
		cfg.Output = render.FormatText
	}
	output, err := render.ParseFormat(string(cfg.Output))
	if err != nil {
		return nil, err
	}
	cfg.Output = output

	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("invalid debounce %s: must not be negative", cfg.Debounce)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}
