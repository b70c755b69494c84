// Package graph provides the in-memory undirected weighted graph used by the
// clustering and layout pipeline.
//
// # Overview
//
// A [Graph] is built once from node and edge records with [Build] and is
// read-only afterwards. It owns three structures:
//
//   - An ordered node set (insertion order of the node records)
//   - An ordered edge list (insertion order of the edge records)
//   - An explicit adjacency list mapping each node ID to its neighbor IDs
//
// # Iteration Order
//
// Component numbering and layout determinism depend on traversal order, so
// every order in this package is defined:
//
//   - [Graph.Nodes] and [Graph.NodeIDs] return nodes in the order they were
//     passed to [Build].
//   - [Graph.Edges] returns edges in the order they were passed to [Build].
//   - [Graph.Neighbors] returns neighbors in edge order. For an edge (s, t),
//     t is appended to s's list and s is appended to t's list. A self-loop
//     appends its node once.
//
// Parallel edges are kept (multigraph semantics), so a neighbor may appear
// more than once in a neighbor list.
//
// # Validation
//
// [Build] rejects edges whose endpoints are not in the node set with a
// [*MalformedEdgeError]. Nothing partially built is returned. Empty graphs
// and graphs without edges are valid; [Graph.Warnings] reports them as
// [EmptyGraphWarning] values so callers can log them.
//
//	g, err := graph.Build(
//	    []graph.Node{{ID: "A"}, {ID: "B"}},
//	    []graph.Edge{{Source: "A", Target: "B", Weight: 1}},
//	)
//	if err != nil {
//	    var me *graph.MalformedEdgeError
//	    if errors.As(err, &me) {
//	        // me.Missing names the unknown node
//	    }
//	}
//
// # Concurrency
//
// A built Graph is never mutated and is safe for concurrent reads.
package graph
