package graph

import (
	"maps"
	"math"
	"slices"
)

// Metadata stores the opaque attribute columns of a node record.
// The core never interprets it.
type Metadata map[string]any

// Node is a graph vertex. ID is unique within a graph.
type Node struct {
	ID   string
	Meta Metadata
}

// Label returns Meta[key] formatted as a string when key is set and present,
// otherwise the node ID.
func (n Node) Label(key string) string {
	if key == "" || n.Meta == nil {
		return n.ID
	}
	switch v := n.Meta[key].(type) {
	case nil:
		return n.ID
	case string:
		if v == "" {
			return n.ID
		}
		return v
	default:
		return formatValue(v)
	}
}

// Edge connects Source and Target with a numeric Weight.
// Direction is kept for export only; adjacency treats every edge as undirected.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Graph is an undirected weighted multigraph with a defined iteration order.
//
// The zero value is an empty graph. Use [Build] to create a populated one.
type Graph struct {
	nodes []Node
	index map[string]int
	edges []Edge
	adj   map[string][]string
}

// Build constructs a Graph from node and edge records.
//
// Node records must have unique, non-empty IDs. Every edge endpoint must name
// a node in nodes, and every weight must be finite; otherwise Build returns a
// [*MalformedEdgeError] and no graph. Node metadata maps are copied, so later
// changes to the input do not affect the graph.
func Build(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]Node, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
		edges: make([]Edge, 0, len(edges)),
		adj:   make(map[string][]string, len(nodes)),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, exists := g.index[n.ID]; exists {
			return nil, &duplicateError{id: n.ID}
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, Node{ID: n.ID, Meta: maps.Clone(n.Meta)})
	}

	for i, e := range edges {
		if _, ok := g.index[e.Source]; !ok {
			return nil, &MalformedEdgeError{Index: i, Edge: e, Missing: e.Source, Err: ErrUnknownNode}
		}
		if _, ok := g.index[e.Target]; !ok {
			return nil, &MalformedEdgeError{Index: i, Edge: e, Missing: e.Target, Err: ErrUnknownNode}
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, &MalformedEdgeError{Index: i, Edge: e, Err: ErrInvalidWeight}
		}
		g.edges = append(g.edges, e)
		g.adj[e.Source] = append(g.adj[e.Source], e.Target)
		if !e.IsSelfLoop() {
			g.adj[e.Target] = append(g.adj[e.Target], e.Source)
		}
	}

	return g, nil
}

// Nodes returns a copy of the node records in insertion order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// NodeIDs returns node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Index returns the insertion position of id, or -1 if it is unknown.
func (g *Graph) Index(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Edges returns a copy of the edge records in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Neighbors returns the neighbor IDs of id in edge order. Parallel edges
// produce repeated entries. The returned slice must not be modified.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of edge endpoints incident to id.
// A self-loop counts twice.
func (g *Graph) Degree(id string) int {
	d := len(g.adj[id])
	for _, n := range g.adj[id] {
		if n == id {
			d++
		}
	}
	return d
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Warnings returns non-fatal conditions about the graph, currently only
// [EmptyGraphWarning]. It returns nil for a graph with nodes and edges.
func (g *Graph) Warnings() []error {
	if len(g.nodes) == 0 || len(g.edges) == 0 {
		return []error{EmptyGraphWarning{Nodes: len(g.nodes), Edges: len(g.edges)}}
	}
	return nil
}

type duplicateError struct{ id string }

func (e *duplicateError) Error() string { return "duplicate node ID " + quote(e.id) }
func (e *duplicateError) Unwrap() error { return ErrDuplicateNodeID }
