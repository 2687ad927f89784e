// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"github.com/elliotchance/orderedmap/v2"
)

// collection is an insertion-ordered set of identifiers.
type collection = orderedmap.OrderedMap[string, struct{}]

// Project is the immutable registration record of one project node.
type Project struct {
	id          string
	description string
	source      string
	collections map[Kind]*collection
}

func newProject(id, description string) *Project {
	p := &Project{
		id:          id,
		description: description,
		collections: make(map[Kind]*collection, len(Kinds)),
	}
	for _, k := range Kinds {
		p.collections[k] = orderedmap.NewOrderedMap[string, struct{}]()
	}
	return p
}

// ID returns the identifier other projects use to nest this one.
func (p *Project) ID() string { return p.id }

// Describe returns the description given at construction, unmodified.
func (p *Project) Describe() string { return p.description }

// Source returns the file the project was declared in, if known.
func (p *Project) Source() string { return p.source }

// Children returns the sub-project references in registration order.
func (p *Project) Children() []string { return p.Identifiers(KindSubProject) }

// VCSRoots returns the registered VCS-root identifiers.
func (p *Project) VCSRoots() []string { return p.Identifiers(KindVCSRoot) }

// BuildTypes returns the build-type identifiers in registration order.
func (p *Project) BuildTypes() []string { return p.Identifiers(KindBuildType) }

// Templates returns the registered template identifiers.
func (p *Project) Templates() []string { return p.Identifiers(KindTemplate) }

// Identifiers returns a copy of the identifiers registered under kind, in
// registration order. An unknown kind yields nil.
func (p *Project) Identifiers(kind Kind) []string {
	c, ok := p.collections[kind]
	if !ok {
		return nil
	}
	ids := make([]string, 0, c.Len())
	for el := c.Front(); el != nil; el = el.Next() {
		ids = append(ids, el.Key)
	}
	return ids
}

// Has reports whether id is registered under kind.
func (p *Project) Has(kind Kind, id string) bool {
	c, ok := p.collections[kind]
	if !ok {
		return false
	}
	_, found := c.Get(id)
	return found
}

// Len returns the number of identifiers registered under kind.
func (p *Project) Len(kind Kind) int {
	c, ok := p.collections[kind]
	if !ok {
		return 0
	}
	return c.Len()
}

func (p *Project) register(kind Kind, id string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if id == "" {
		return ErrEmptyIdentifier
	}
	c := p.collections[kind]
	if _, exists := c.Get(id); exists {
		return &DuplicateRegistrationError{Project: p.id, Kind: kind, ID: id}
	}
	c.Set(id, struct{}{})
	return nil
}
