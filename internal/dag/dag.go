package dag

import (
	"fmt"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// AddEdge nests childID under parentID. An error is returned if either node
// does not exist or if the edge would nest a node under itself. Adding the
// same edge twice does nothing.
func (g *Graph) AddEdge(parentID, childID string) error {
	if parentID == childID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", parentID, childID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	parent, ok := g.nodes[parentID]
	if !ok {
		return fmt.Errorf("parent node not found: %s", parentID)
	}
	child, ok := g.nodes[childID]
	if !ok {
		return fmt.Errorf("child node not found: %s", childID)
	}
	if parent.hasChild(childID) {
		return nil
	}

	parent.children = append(parent.children, child)
	child.parents = append(child.parents, parent)
	return nil
}

// Children returns the IDs nested directly under id, in edge order.
func (g *Graph) Children(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.children), nil
}

// Parents returns the IDs that nest id directly, in edge order.
func (g *Graph) Parents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.parents), nil
}

// Roots returns the IDs of nodes without parents, in insertion order.
func (g *Graph) Roots() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var roots []string
	for _, id := range g.order {
		if len(g.nodes[id].parents) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// DetectCycles checks the graph for cycles. The returned error names the
// nodes on the first cycle found, walking nodes in insertion order.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully visited and known to be acyclic.
	// stack: nodes on the current DFS path.
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if onStack[n.id] {
			start := 0
			for i, id := range stack {
				if id == n.id {
					start = i
					break
				}
			}
			path := append(append([]string{}, stack[start:]...), n.id)
			return fmt.Errorf("cycle detected: %s", strings.Join(path, " -> "))
		}

		onStack[n.id] = true
		stack = append(stack, n.id)

		for _, child := range n.children {
			if err := visit(child); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}
