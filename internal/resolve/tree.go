// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolve

import (
	"errors"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/registry"
)

// ErrStopWalk stops Tree.Walk early without reporting an error.
var ErrStopWalk = errors.New("stop walk")

// Node is one project in the materialized tree.
type Node struct {
	Project  *registry.Project
	Depth    int
	Children []*Node
}

// Tree is a resolved project tree together with the snapshot it came from.
type Tree struct {
	Root  *Node
	Model *config.Model
}

// Walk visits every node depth-first, parents before children, children in
// registration order. Returning ErrStopWalk ends the walk with a nil error.
func (t *Tree) Walk(fn func(n *Node) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	var visit func(n *Node) error
	visit = func(n *Node) error {
		if err := fn(n); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(t.Root); err != nil && !errors.Is(err, ErrStopWalk) {
		return err
	}
	return nil
}

// Find returns the node of the project with the given id.
func (t *Tree) Find(id string) (*Node, bool) {
	var found *Node
	_ = t.Walk(func(n *Node) error {
		if n.Project.ID() == id {
			found = n
			return ErrStopWalk
		}
		return nil
	})
	return found, found != nil
}

// Len returns the number of projects in the tree.
func (t *Tree) Len() int {
	count := 0
	_ = t.Walk(func(*Node) error {
		count++
		return nil
	})
	return count
}
