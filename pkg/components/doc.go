// Package components partitions a graph into connected components.
//
// Edges are treated as undirected and weights are ignored: two nodes share a
// component if and only if a path of edges connects them. [Find] runs a
// breadth-first search in O(V+E) and numbers components in discovery order:
// nodes are scanned in graph insertion order, and every node not yet visited
// starts a new component.
//
// Component IDs carry no meaning beyond being a stable lookup key (for
// example into a [palette.Palette]). They are not stable across graphs built
// with a different node order.
//
//	res := components.Find(g)
//	for cid := range res.Count() {
//	    fmt.Println(cid, res.Members(cid))
//	}
//
// [palette.Palette]: github.com/matzehuels/clusterviz/pkg/palette.Palette
package components
