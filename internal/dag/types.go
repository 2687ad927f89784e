package dag

import "sync"

// Graph is a collection of nodes and the parent/child edges between them.
// All operations on the graph are concurrency-safe. Iteration follows the
// order in which nodes and edges were added.
type Graph struct {
	// mutex protects nodes and order during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records node IDs in insertion order.
	order []string
}

// node is un-exported so that callers work with string IDs only.
type node struct {
	id string
	// parents holds the nodes that nest this node, in edge order.
	parents []*node
	// children holds the nodes nested under this node, in edge order.
	children []*node
}

func (n *node) hasChild(id string) bool {
	for _, c := range n.children {
		if c.id == id {
			return true
		}
	}
	return false
}

func ids(nodes []*node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.id)
	}
	return out
}
