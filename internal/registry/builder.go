// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"fmt"
	"log/slog"
)

// Builder assembles a Project. It is the only way to register identifiers
// and is meant to be driven by a single loader.
type Builder struct {
	project *Project
	sealed  bool
	logger  *slog.Logger
}

// NewBuilder starts a project with the given identifier and description.
func NewBuilder(id, description string) *Builder {
	return &Builder{
		project: newProject(id, description),
		logger:  slog.Default(),
	}
}

// WithLogger sets the logger registrations are reported to.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithSource records the file the project is declared in. It has no effect
// once the project is built.
func (b *Builder) WithSource(path string) *Builder {
	if b.sealed {
		b.logger.Debug("Ignoring source change on a sealed project.", "project", b.project.id, "source", path)
		return b
	}
	b.project.source = path
	return b
}

// Register adds id to the collection of the given kind. A failed call leaves
// the project unchanged.
func (b *Builder) Register(kind Kind, id string) error {
	if b.sealed {
		return ErrSealed
	}
	if err := b.project.register(kind, id); err != nil {
		return err
	}
	b.logger.Debug("Registered identifier.", "project", b.project.id, "kind", kind.String(), "id", id)
	return nil
}

// RegisterAll registers ids in order and stops at the first failure.
func (b *Builder) RegisterAll(kind Kind, ids ...string) error {
	for _, id := range ids {
		if err := b.Register(kind, id); err != nil {
			return fmt.Errorf("registering %s list: %w", kind, err)
		}
	}
	return nil
}

// Build seals the builder and returns the finished Project.
func (b *Builder) Build() (*Project, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	if b.project.id == "" {
		return nil, fmt.Errorf("project id: %w", ErrEmptyIdentifier)
	}
	b.sealed = true
	b.logger.Debug("Project registry sealed.",
		"project", b.project.id,
		"vcs_roots", b.project.Len(KindVCSRoot),
		"build_types", b.project.Len(KindBuildType),
		"templates", b.project.Len(KindTemplate),
		"sub_projects", b.project.Len(KindSubProject),
	)
	return b.project, nil
}
