// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/ctxlog"
	"github.com/specialistvlad/ciproject/internal/hcl"
	"github.com/specialistvlad/ciproject/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func testContext() (context.Context, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// projectSpec is a compact description of a project for test models.
type projectSpec struct {
	id       string
	children []string
	refs     map[registry.Kind][]string
}

func newModel(t *testing.T, projects ...projectSpec) *config.Model {
	t.Helper()
	m := config.NewModel()
	for _, spec := range projects {
		b := registry.NewBuilder(spec.id, spec.id+" project")
		require.NoError(t, b.RegisterAll(registry.KindSubProject, spec.children...))
		for kind, ids := range spec.refs {
			require.NoError(t, b.RegisterAll(kind, ids...))
		}
		p, err := b.Build()
		require.NoError(t, err)
		require.NoError(t, m.AddProject(p))
	}
	return m
}

func TestResolve_ExampleProject(t *testing.T) {
	// --- Arrange ---
	ctx, logs := testContext()
	model, err := hcl.NewLoader(hcl.WithEnv(map[string]string{})).Load(ctx, "../../examples/imod_coupler")
	require.NoError(t, err)

	// --- Act ---
	tree, err := Resolve(ctx, model, "")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Self", tree.Root.Project.ID())
	assert.Equal(t, "Python scripts coupling components", tree.Root.Project.Describe())
	require.Len(t, tree.Root.Children, 2)
	assert.Equal(t, "Primod", tree.Root.Children[0].Project.ID())
	assert.Equal(t, "IMODCollector", tree.Root.Children[1].Project.ID())
	assert.Equal(t, 1, tree.Root.Children[1].Depth)
	assert.Equal(t, 3, tree.Len())
	assert.Contains(t, logs.String(), "Project tree resolved.")
}

func TestResolve_UnresolvedReferencesAreAllReported(t *testing.T) {
	model := newModel(t, projectSpec{
		id: "Self",
		refs: map[registry.Kind][]string{
			registry.KindVCSRoot:   {"MissingRoot"},
			registry.KindTemplate:  {"Linux"},
			registry.KindBuildType: {"Build"},
		},
		children: []string{"Ghost"},
	})
	require.NoError(t, model.AddTemplate(&config.Template{ID: "Linux"}))
	require.NoError(t, model.AddBuildType(&config.BuildType{ID: "Build", Templates: []string{"Mac"}}))
	ctx, _ := testContext()

	tree, err := Resolve(ctx, model, "")

	require.Error(t, err)
	assert.Nil(t, tree, "a rejected snapshot must not produce a partial tree")

	var got []string
	for _, e := range multierr.Errors(err) {
		var unresolved *registry.UnresolvedReferenceError
		require.True(t, errors.As(e, &unresolved), "unexpected error: %v", e)
		got = append(got, unresolved.Owner+"/"+unresolved.Kind.String()+"/"+unresolved.ID)
	}
	assert.ElementsMatch(t, []string{
		"project 'Self'/vcs-root/MissingRoot",
		"project 'Self'/sub-project/Ghost",
		"build_type 'Build'/template/Mac",
	}, got)
}

func TestResolve_NestingCycleIsRejected(t *testing.T) {
	model := newModel(t,
		projectSpec{id: "A", children: []string{"B"}},
		projectSpec{id: "B", children: []string{"A"}},
	)
	ctx, _ := testContext()

	_, err := Resolve(ctx, model, "")

	require.ErrorIs(t, err, ErrInvalidNesting)
	assert.Contains(t, err.Error(), "cycle detected")
}

func TestResolve_SelfNestingIsRejected(t *testing.T) {
	model := newModel(t, projectSpec{id: "A", children: []string{"A"}})
	ctx, _ := testContext()

	_, err := Resolve(ctx, model, "")

	require.ErrorIs(t, err, ErrInvalidNesting)
	assert.Contains(t, err.Error(), "self-referential")
}

func TestResolve_ProjectWithTwoParentsIsRejected(t *testing.T) {
	model := newModel(t,
		projectSpec{id: "Root", children: []string{"Left", "Right"}},
		projectSpec{id: "Left", children: []string{"Shared"}},
		projectSpec{id: "Right", children: []string{"Shared"}},
		projectSpec{id: "Shared"},
	)
	ctx, _ := testContext()

	_, err := Resolve(ctx, model, "")

	require.ErrorIs(t, err, ErrInvalidNesting)
	assert.Contains(t, err.Error(), "project 'Shared' is a sub-project of [Left Right]")
}

func TestResolve_RootSelection(t *testing.T) {
	model := newModel(t,
		projectSpec{id: "One", children: []string{"Child"}},
		projectSpec{id: "Child"},
		projectSpec{id: "Two"},
	)

	t.Run("ambiguous without explicit root", func(t *testing.T) {
		ctx, _ := testContext()
		_, err := Resolve(ctx, model, "")
		require.ErrorIs(t, err, ErrAmbiguousRoot)
		assert.Contains(t, err.Error(), "[One Two]")
	})

	t.Run("explicit root", func(t *testing.T) {
		ctx, logs := testContext()
		tree, err := Resolve(ctx, model, "One")
		require.NoError(t, err)
		assert.Equal(t, 2, tree.Len())
		assert.Contains(t, logs.String(), "Some projects are not part of the selected tree.")
	})

	t.Run("nested project as root", func(t *testing.T) {
		ctx, _ := testContext()
		tree, err := Resolve(ctx, model, "Child")
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Root.Depth)
		assert.Empty(t, tree.Root.Children)
	})

	t.Run("unknown root", func(t *testing.T) {
		ctx, _ := testContext()
		_, err := Resolve(ctx, model, "Nope")
		var unresolved *registry.UnresolvedReferenceError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "Nope", unresolved.ID)
	})
}

func TestResolve_NoProjects(t *testing.T) {
	ctx, _ := testContext()
	_, err := Resolve(ctx, config.NewModel(), "")
	assert.ErrorIs(t, err, ErrNoProjects)
}

func TestTree_WalkAndFind(t *testing.T) {
	model := newModel(t,
		projectSpec{id: "Root", children: []string{"B", "A"}},
		projectSpec{id: "A", children: []string{"A1"}},
		projectSpec{id: "A1"},
		projectSpec{id: "B"},
	)
	ctx, _ := testContext()
	tree, err := Resolve(ctx, model, "")
	require.NoError(t, err)

	var order []string
	require.NoError(t, tree.Walk(func(n *Node) error {
		order = append(order, n.Project.ID())
		return nil
	}))
	assert.Equal(t, []string{"Root", "B", "A", "A1"}, order)

	n, ok := tree.Find("A1")
	require.True(t, ok)
	assert.Equal(t, 2, n.Depth)

	_, ok = tree.Find("missing")
	assert.False(t, ok)

	boom := errors.New("boom")
	assert.ErrorIs(t, tree.Walk(func(*Node) error { return boom }), boom)
}
