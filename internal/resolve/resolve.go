// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/ctxlog"
	"github.com/specialistvlad/ciproject/internal/dag"
	"github.com/specialistvlad/ciproject/internal/registry"
	"go.uber.org/multierr"
)

// Resolve validates model and returns the project tree rooted at rootID. An
// empty rootID selects the only project that is not nested under another.
//
// The returned error, if any, combines every problem found; use
// multierr.Errors to inspect them one by one.
func Resolve(ctx context.Context, model *config.Model, rootID string) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving configuration.", "projects", len(model.Projects), "root", rootID)

	if len(model.Projects) == 0 {
		return nil, ErrNoProjects
	}

	var errs error
	errs = multierr.Append(errs, checkProjectReferences(model))
	errs = multierr.Append(errs, checkBuildTypeReferences(model))

	graph, nestErr := nestingGraph(model)
	errs = multierr.Append(errs, nestErr)
	if errs != nil {
		logger.Debug("Configuration rejected.", "problems", len(multierr.Errors(errs)))
		return nil, errs
	}

	root, err := selectRoot(model, graph, rootID)
	if err != nil {
		return nil, err
	}

	tree := &Tree{Root: materialize(model, root.ID(), 0), Model: model}

	if unreached := len(model.Projects) - tree.Len(); unreached > 0 {
		logger.Warn("Some projects are not part of the selected tree.", "root", root.ID(), "count", unreached)
	}
	logger.Info("Project tree resolved.", "root", root.ID(), "projects", tree.Len())
	return tree, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkProjectReferences reports every project identifier without a
// definition.
func checkProjectReferences(model *config.Model) error {
	var errs error
	for _, id := range sortedKeys(model.Projects) {
		p := model.Projects[id]
		for _, kind := range registry.Kinds {
			for _, ref := range p.Identifiers(kind) {
				if !model.Defines(kind, ref) {
					errs = multierr.Append(errs, &registry.UnresolvedReferenceError{
						Owner: fmt.Sprintf("project '%s'", id),
						Kind:  kind,
						ID:    ref,
					})
				}
			}
		}
	}
	return errs
}

// checkBuildTypeReferences reports templates and VCS roots a build type
// attaches but the snapshot does not define.
func checkBuildTypeReferences(model *config.Model) error {
	var errs error
	for _, id := range sortedKeys(model.BuildTypes) {
		bt := model.BuildTypes[id]
		owner := fmt.Sprintf("build_type '%s'", id)
		for _, ref := range bt.Templates {
			if !model.Defines(registry.KindTemplate, ref) {
				errs = multierr.Append(errs, &registry.UnresolvedReferenceError{Owner: owner, Kind: registry.KindTemplate, ID: ref})
			}
		}
		for _, ref := range bt.VCSRoots {
			if !model.Defines(registry.KindVCSRoot, ref) {
				errs = multierr.Append(errs, &registry.UnresolvedReferenceError{Owner: owner, Kind: registry.KindVCSRoot, ID: ref})
			}
		}
	}
	return errs
}

// nestingGraph builds the parent -> sub-project graph and checks that it is a
// tree. Unresolved sub-projects are skipped; they are reported elsewhere.
func nestingGraph(model *config.Model) (*dag.Graph, error) {
	g := dag.New()
	ids := sortedKeys(model.Projects)
	for _, id := range ids {
		g.AddNode(id)
	}

	var errs error
	for _, id := range ids {
		for _, child := range model.Projects[id].Children() {
			if !g.Has(child) {
				continue
			}
			if err := g.AddEdge(id, child); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%w: %v", ErrInvalidNesting, err))
			}
		}
	}

	for _, id := range ids {
		parents, err := g.Parents(id)
		if err != nil {
			return nil, err
		}
		if len(parents) > 1 {
			errs = multierr.Append(errs, fmt.Errorf("%w: project '%s' is a sub-project of %v", ErrInvalidNesting, id, parents))
		}
	}

	if err := g.DetectCycles(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %v", ErrInvalidNesting, err))
	}
	return g, errs
}

func selectRoot(model *config.Model, g *dag.Graph, rootID string) (*registry.Project, error) {
	if rootID != "" {
		p, ok := model.Projects[rootID]
		if !ok {
			return nil, &registry.UnresolvedReferenceError{Owner: "root selection", Kind: registry.KindSubProject, ID: rootID}
		}
		return p, nil
	}

	roots := g.Roots()
	switch len(roots) {
	case 0:
		return nil, ErrNoProjects
	case 1:
		return model.Projects[roots[0]], nil
	default:
		return nil, fmt.Errorf("%w: candidates are %v", ErrAmbiguousRoot, roots)
	}
}

func materialize(model *config.Model, id string, depth int) *Node {
	p := model.Projects[id]
	n := &Node{Project: p, Depth: depth}
	for _, child := range p.Children() {
		n.Children = append(n.Children, materialize(model, child, depth+1))
	}
	return n
}
