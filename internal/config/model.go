package config

import (
	"fmt"

	"github.com/specialistvlad/ciproject/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Model is one complete configuration snapshot.
type Model struct {
	Projects   map[string]*registry.Project
	VCSRoots   map[string]*VCSRoot
	BuildTypes map[string]*BuildType
	Templates  map[string]*Template
}

// NewModel returns an empty, initialized Model.
func NewModel() *Model {
	return &Model{
		Projects:   make(map[string]*registry.Project),
		VCSRoots:   make(map[string]*VCSRoot),
		BuildTypes: make(map[string]*BuildType),
		Templates:  make(map[string]*Template),
	}
}

// VCSRoot is a named reference to a version-control repository location.
type VCSRoot struct {
	ID          string
	Name        string
	URL         string
	Branch      string
	BranchSpecs []string
	Source      string
}

// Step is a single scripted step of a build type or template.
type Step struct {
	Name   string
	Script string
}

// BuildType is a named pipeline definition.
type BuildType struct {
	ID        string
	Name      string
	Templates []string
	VCSRoots  []string
	Params    map[string]cty.Value
	Steps     []Step
	Source    string
}

// Template is a reusable partial pipeline shared by build types.
type Template struct {
	ID     string
	Name   string
	Params map[string]cty.Value
	Steps  []Step
	Source string
}

// AddProject stores p, rejecting a project id that is already defined.
func (m *Model) AddProject(p *registry.Project) error {
	if existing, ok := m.Projects[p.ID()]; ok {
		return &DuplicateDefinitionError{What: "project", ID: p.ID(), First: existing.Source(), Second: p.Source()}
	}
	m.Projects[p.ID()] = p
	return nil
}

// AddVCSRoot stores r, rejecting an id that is already defined.
func (m *Model) AddVCSRoot(r *VCSRoot) error {
	if existing, ok := m.VCSRoots[r.ID]; ok {
		return duplicate(registry.KindVCSRoot, r.ID, existing.Source, r.Source)
	}
	m.VCSRoots[r.ID] = r
	return nil
}

// AddBuildType stores bt, rejecting an id that is already defined.
func (m *Model) AddBuildType(bt *BuildType) error {
	if existing, ok := m.BuildTypes[bt.ID]; ok {
		return duplicate(registry.KindBuildType, bt.ID, existing.Source, bt.Source)
	}
	m.BuildTypes[bt.ID] = bt
	return nil
}

// AddTemplate stores tpl, rejecting an id that is already defined.
func (m *Model) AddTemplate(tpl *Template) error {
	if existing, ok := m.Templates[tpl.ID]; ok {
		return duplicate(registry.KindTemplate, tpl.ID, existing.Source, tpl.Source)
	}
	m.Templates[tpl.ID] = tpl
	return nil
}

// Defines reports whether the model holds a definition of kind with id.
func (m *Model) Defines(kind registry.Kind, id string) bool {
	var ok bool
	switch kind {
	case registry.KindVCSRoot:
		_, ok = m.VCSRoots[id]
	case registry.KindBuildType:
		_, ok = m.BuildTypes[id]
	case registry.KindTemplate:
		_, ok = m.Templates[id]
	case registry.KindSubProject:
		_, ok = m.Projects[id]
	}
	return ok
}

// DuplicateDefinitionError reports an identifier defined in two places of
// one configuration. For VCS roots, build types and templates it unwraps to a
// registry.DuplicateRegistrationError.
type DuplicateDefinitionError struct {
	What   string // "project", or the registry kind name
	ID     string
	First  string
	Second string

	registration *registry.DuplicateRegistrationError
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s '%s' is defined in both %s and %s", e.What, e.ID, e.First, e.Second)
}

// Unwrap returns the registry error for definition kinds, nil for projects.
func (e *DuplicateDefinitionError) Unwrap() error {
	if e.registration == nil {
		return nil
	}
	return e.registration
}

func duplicate(kind registry.Kind, id, first, second string) error {
	return &DuplicateDefinitionError{
		What:         kind.String(),
		ID:           id,
		First:        first,
		Second:       second,
		registration: &registry.DuplicateRegistrationError{Project: "configuration", Kind: kind, ID: id},
	}
}
