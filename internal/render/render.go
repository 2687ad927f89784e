// Package render writes a resolved project tree in a human or machine
// readable form.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/ciproject/internal/resolve"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// ProjectView is the serializable form of a tree node.
type ProjectView struct {
	ID          string         `json:"id" yaml:"id"`
	Description string         `json:"description" yaml:"description"`
	VCSRoots    []string       `json:"vcs_roots" yaml:"vcs_roots"`
	BuildTypes  []string       `json:"build_types" yaml:"build_types"`
	Templates   []string       `json:"templates" yaml:"templates"`
	SubProjects []*ProjectView `json:"sub_projects,omitempty" yaml:"sub_projects,omitempty"`
}

// View converts a resolved node and its descendants into ProjectViews.
func View(n *resolve.Node) *ProjectView {
	p := n.Project
	v := &ProjectView{
		ID:          p.ID(),
		Description: p.Describe(),
		VCSRoots:    p.VCSRoots(),
		BuildTypes:  p.BuildTypes(),
		Templates:   p.Templates(),
	}
	for _, c := range n.Children {
		v.SubProjects = append(v.SubProjects, View(c))
	}
	return v
}

// Write renders tree to w in the given format.
func Write(w io.Writer, tree *resolve.Tree, format Format) error {
	if tree == nil || tree.Root == nil {
		return fmt.Errorf("nothing to render: empty project tree")
	}
	switch format {
	case FormatText:
		return writeText(w, tree)
	case FormatJSON:
		snap, err := Snapshot(tree)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		snap, err := Snapshot(tree)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, tree *resolve.Tree) error {
	return tree.Walk(func(n *resolve.Node) error {
		p := n.Project
		indent := strings.Repeat("  ", n.Depth)
		if _, err := fmt.Fprintf(w, "%s%s", indent, p.ID()); err != nil {
			return err
		}
		if d := p.Describe(); d != "" {
			if _, err := fmt.Fprintf(w, " - %s", d); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		rows := []struct {
			label string
			ids   []string
		}{
			{"vcs roots", p.VCSRoots()},
			{"build types", p.BuildTypes()},
			{"templates", p.Templates()},
		}
		for _, row := range rows {
			if len(row.ids) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s  %s: %s\n", indent, row.label, strings.Join(row.ids, ", ")); err != nil {
				return err
			}
		}
		return nil
	})
}
