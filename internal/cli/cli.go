package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/ciproject/internal/app"
	"github.com/specialistvlad/ciproject/internal/render"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList collects a repeatable string flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ciproject", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ciproject - Validate and render a declarative CI project tree.

Usage:
  ciproject [options] [CONFIG_PATH...]

Arguments:
  CONFIG_PATH
    Path to a .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configPaths pathList
	flagSet.Var(&configPaths, "config", "Path to a configuration file or directory. May be repeated.")
	flagSet.Var(&configPaths, "c", "Path to a configuration file or directory (shorthand).")
	rootFlag := flagSet.String("root", "", "Identifier of the project to render. Defaults to the only unnested project.")
	outputFlag := flagSet.String("output", "text", "Output format. Options: 'text', 'json' or 'yaml'.")
	watchFlag := flagSet.Bool("watch", false, "Keep running and reload the configuration whenever it changes.")
	debounceFlag := flagSet.Duration("debounce", 0, "Quiet period before a reload in watch mode (e.g. 500ms). Defaults to 300ms.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(nil), configPaths...)
	paths = append(paths, flagSet.Args()...)
	if len(paths) == 0 {
		slog.Debug("No configuration path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: paths,
		RootProject: *rootFlag,
		Output:      render.Format(*outputFlag),
		Watch:       *watchFlag,
		Debounce:    *debounceFlag,
		LogFormat:   *logFormatFlag,
		LogLevel:    *logLevelFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
