// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/ctxlog"
	"github.com/specialistvlad/ciproject/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// translateProject registers the lists of a project block, in the order they
// appear, through a registry.Builder.
func translateProject(ctx context.Context, b *projectBlock, file string) (*registry.Project, error) {
	logger := ctxlog.FromContext(ctx)

	builder := registry.NewBuilder(b.ID, b.Description).
		WithLogger(logger).
		WithSource(file)

	lists := []struct {
		kind registry.Kind
		ids  []string
	}{
		{registry.KindVCSRoot, b.VCSRoots},
		{registry.KindBuildType, b.BuildTypes},
		{registry.KindTemplate, b.Templates},
		{registry.KindSubProject, b.SubProjects},
	}
	total := 0
	for _, list := range lists {
		if err := builder.RegisterAll(list.kind, list.ids...); err != nil {
			return nil, fmt.Errorf("project '%s': %w", b.ID, err)
		}
		total += len(list.ids)
	}

	if total == 0 {
		logger.Warn("Project registers nothing.", "project", b.ID)
	}
	return builder.Build()
}

func translateVCSRoot(b *vcsRootBlock, file string) *config.VCSRoot {
	return &config.VCSRoot{
		ID:          b.ID,
		Name:        displayName(b.Name, b.ID),
		URL:         b.URL,
		Branch:      b.Branch,
		BranchSpecs: b.BranchSpecs,
		Source:      file,
	}
}

func translateTemplate(b *templateBlock, file string) (*config.Template, error) {
	params, err := translateParams(b.Params)
	if err != nil {
		return nil, fmt.Errorf("template '%s': %w", b.ID, err)
	}
	return &config.Template{
		ID:     b.ID,
		Name:   displayName(b.Name, b.ID),
		Params: params,
		Steps:  translateSteps(b.Steps),
		Source: file,
	}, nil
}

func translateBuildType(b *buildTypeBlock, file string) (*config.BuildType, error) {
	params, err := translateParams(b.Params)
	if err != nil {
		return nil, fmt.Errorf("build type '%s': %w", b.ID, err)
	}
	return &config.BuildType{
		ID:        b.ID,
		Name:      displayName(b.Name, b.ID),
		Templates: b.Templates,
		VCSRoots:  b.VCSRoots,
		Params:    params,
		Steps:     translateSteps(b.Steps),
		Source:    file,
	}, nil
}

// translateParams flattens a params object into its primitive values.
func translateParams(v cty.Value) (map[string]cty.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("params must be an object, got %s", ty.FriendlyName())
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("params must be known at load time")
	}

	params := make(map[string]cty.Value, v.LengthInt())
	for key, val := range v.AsValueMap() {
		if val.IsNull() || !val.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("param '%s' must be a string, number or bool", key)
		}
		params[key] = val
	}
	return params, nil
}

func translateSteps(blocks []*stepBlock) []config.Step {
	if len(blocks) == 0 {
		return nil
	}
	steps := make([]config.Step, 0, len(blocks))
	for _, s := range blocks {
		steps = append(steps, config.Step{Name: s.Name, Script: s.Script})
	}
	return steps
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
