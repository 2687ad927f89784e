package render

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/resolve"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// SnapshotView is the machine-readable form of a resolved tree: the project
// hierarchy plus every definition the hierarchy references.
type SnapshotView struct {
	Project    *ProjectView    `json:"project" yaml:"project"`
	VCSRoots   []VCSRootView   `json:"vcs_roots,omitempty" yaml:"vcs_roots,omitempty"`
	Templates  []TemplateView  `json:"templates,omitempty" yaml:"templates,omitempty"`
	BuildTypes []BuildTypeView `json:"build_types,omitempty" yaml:"build_types,omitempty"`
}

type VCSRootView struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	URL         string   `json:"url" yaml:"url"`
	Branch      string   `json:"branch,omitempty" yaml:"branch,omitempty"`
	BranchSpecs []string `json:"branch_specs,omitempty" yaml:"branch_specs,omitempty"`
}

type StepView struct {
	Name   string `json:"name" yaml:"name"`
	Script string `json:"script" yaml:"script"`
}

type TemplateView struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Steps  []StepView     `json:"steps,omitempty" yaml:"steps,omitempty"`
}

type BuildTypeView struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Templates []string       `json:"templates,omitempty" yaml:"templates,omitempty"`
	VCSRoots  []string       `json:"vcs_roots,omitempty" yaml:"vcs_roots,omitempty"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Steps     []StepView     `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Snapshot builds the SnapshotView of tree. Definitions are sorted by id.
// A tree without a model carries the hierarchy only.
func Snapshot(tree *resolve.Tree) (*SnapshotView, error) {
	snap := &SnapshotView{Project: View(tree.Root)}
	if tree.Model == nil {
		return snap, nil
	}

	vcsRoots := map[string]struct{}{}
	templates := map[string]struct{}{}
	buildTypes := map[string]struct{}{}
	_ = tree.Walk(func(n *resolve.Node) error {
		for _, id := range n.Project.VCSRoots() {
			vcsRoots[id] = struct{}{}
		}
		for _, id := range n.Project.Templates() {
			templates[id] = struct{}{}
		}
		for _, id := range n.Project.BuildTypes() {
			buildTypes[id] = struct{}{}
		}
		return nil
	})
	// Build types pull in their own templates and VCS roots.
	for id := range buildTypes {
		if bt, ok := tree.Model.BuildTypes[id]; ok {
			for _, tpl := range bt.Templates {
				templates[tpl] = struct{}{}
			}
			for _, r := range bt.VCSRoots {
				vcsRoots[r] = struct{}{}
			}
		}
	}

	for _, id := range sortedKeys(vcsRoots) {
		r, ok := tree.Model.VCSRoots[id]
		if !ok {
			continue
		}
		snap.VCSRoots = append(snap.VCSRoots, VCSRootView{
			ID:          r.ID,
			Name:        r.Name,
			URL:         r.URL,
			Branch:      r.Branch,
			BranchSpecs: r.BranchSpecs,
		})
	}
	for _, id := range sortedKeys(templates) {
		tpl, ok := tree.Model.Templates[id]
		if !ok {
			continue
		}
		params, err := paramsView(tpl.Params)
		if err != nil {
			return nil, fmt.Errorf("template '%s': %w", id, err)
		}
		snap.Templates = append(snap.Templates, TemplateView{
			ID:     tpl.ID,
			Name:   tpl.Name,
			Params: params,
			Steps:  stepsView(tpl.Steps),
		})
	}
	for _, id := range sortedKeys(buildTypes) {
		bt, ok := tree.Model.BuildTypes[id]
		if !ok {
			continue
		}
		params, err := paramsView(bt.Params)
		if err != nil {
			return nil, fmt.Errorf("build type '%s': %w", id, err)
		}
		snap.BuildTypes = append(snap.BuildTypes, BuildTypeView{
			ID:        bt.ID,
			Name:      bt.Name,
			Templates: bt.Templates,
			VCSRoots:  bt.VCSRoots,
			Params:    params,
			Steps:     stepsView(bt.Steps),
		})
	}
	return snap, nil
}

func stepsView(steps []config.Step) []StepView {
	if len(steps) == 0 {
		return nil
	}
	out := make([]StepView, 0, len(steps))
	for _, s := range steps {
		out = append(out, StepView{Name: s.Name, Script: s.Script})
	}
	return out
}

// paramsView converts primitive cty params to plain Go values. Whole numbers
// become int64, other numbers float64.
func paramsView(params map[string]cty.Value) (map[string]any, error) {
	if len(params) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(params))
	for key, v := range params {
		switch ty := v.Type(); {
		case ty.Equals(cty.String):
			out[key] = v.AsString()
		case ty.Equals(cty.Bool):
			out[key] = v.True()
		case ty.Equals(cty.Number):
			var i int64
			if err := gocty.FromCtyValue(v, &i); err == nil {
				out[key] = i
				continue
			}
			var f float64
			if err := gocty.FromCtyValue(v, &f); err != nil {
				return nil, fmt.Errorf("param '%s': %w", key, err)
			}
			out[key] = f
		default:
			return nil, fmt.Errorf("param '%s' has unsupported type %s", key, ty.FriendlyName())
		}
	}
	return out, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
