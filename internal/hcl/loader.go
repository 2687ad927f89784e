// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/ctxlog"
	"github.com/specialistvlad/ciproject/internal/fsutil"
)

const fileExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	env map[string]string
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnv replaces the process environment exposed to expressions as env.
func WithEnv(env map[string]string) Option {
	return func(l *Loader) {
		l.env = env
	}
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.env == nil {
		l.env = environFromOS()
	}
	return l
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under paths and merges their blocks into one
// model. The first failure aborts the load.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, fileExtension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", fileExtension, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files), "files", files)

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.env)
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.merge(ctxlog.With(ctx, "file", file), model, &root, file); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		logger.Debug("Loaded definitions from HCL file.", "file", file)
	}

	logger.Info("Configuration loaded.",
		"files", len(files),
		"projects", len(model.Projects),
		"vcs_roots", len(model.VCSRoots),
		"build_types", len(model.BuildTypes),
		"templates", len(model.Templates),
	)
	return model, nil
}

// merge translates the decoded blocks of one file and adds them to model.
func (l *Loader) merge(ctx context.Context, model *config.Model, root *fileRoot, file string) error {
	for _, b := range root.Projects {
		p, err := translateProject(ctx, b, file)
		if err != nil {
			return err
		}
		if err := model.AddProject(p); err != nil {
			return err
		}
	}
	for _, b := range root.VCSRoots {
		if err := model.AddVCSRoot(translateVCSRoot(b, file)); err != nil {
			return err
		}
	}
	for _, b := range root.Templates {
		tpl, err := translateTemplate(b, file)
		if err != nil {
			return err
		}
		if err := model.AddTemplate(tpl); err != nil {
			return err
		}
	}
	for _, b := range root.BuildTypes {
		bt, err := translateBuildType(b, file)
		if err != nil {
			return err
		}
		if err := model.AddBuildType(bt); err != nil {
			return err
		}
	}
	return nil
}
