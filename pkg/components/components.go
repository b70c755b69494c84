package components

import (
	"slices"

	"github.com/matzehuels/clusterviz/pkg/graph"
)

// Result maps every node to its component.
//
// Invariant: the member lists partition the node set exactly. Every node of
// the analyzed graph appears in exactly one member list, and ByNode agrees
// with the member lists.
type Result struct {
	// ByNode maps node ID to component ID.
	ByNode map[string]int
	// members[cid] lists node IDs in BFS visit order.
	members [][]string
}

// Find computes the connected components of g.
//
// Traversal is breadth-first. Nodes are scanned in insertion order and
// neighbors are expanded in adjacency order, so the numbering is fully
// determined by the graph's input order. Isolated nodes form singleton
// components. An empty graph yields zero components.
func Find(g *graph.Graph) *Result {
	res := &Result{ByNode: make(map[string]int, g.NodeCount())}

	for _, id := range g.NodeIDs() {
		if _, seen := res.ByNode[id]; seen {
			continue
		}
		cid := len(res.members)
		res.members = append(res.members, bfs(g, id, cid, res.ByNode))
	}
	return res
}

func bfs(g *graph.Graph, start string, cid int, visited map[string]int) []string {
	visited[start] = cid
	queue := []string{start}
	var members []string

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		members = append(members, id)

		for _, nb := range g.Neighbors(id) {
			if _, seen := visited[nb]; seen {
				continue
			}
			visited[nb] = cid
			queue = append(queue, nb)
		}
	}
	return members
}

// Count returns the number of components.
func (r *Result) Count() int { return len(r.members) }

// Of returns the component ID of a node.
func (r *Result) Of(id string) (int, bool) {
	cid, ok := r.ByNode[id]
	return cid, ok
}

// Members returns the node IDs of component cid in visit order, or nil if
// cid is out of range. The returned slice is a copy.
func (r *Result) Members(cid int) []string {
	if cid < 0 || cid >= len(r.members) {
		return nil
	}
	return slices.Clone(r.members[cid])
}

// Size returns the number of nodes in component cid.
func (r *Result) Size(cid int) int {
	if cid < 0 || cid >= len(r.members) {
		return 0
	}
	return len(r.members[cid])
}

// Sizes returns the size of every component, indexed by component ID.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.members))
	for i, m := range r.members {
		sizes[i] = len(m)
	}
	return sizes
}

// Singletons returns the IDs of components with exactly one node.
func (r *Result) Singletons() []int {
	var out []int
	for i, m := range r.members {
		if len(m) == 1 {
			out = append(out, i)
		}
	}
	return out
}

// Largest returns the ID of the largest component, preferring the lowest ID
// on ties. It returns -1 when there are no components.
func (r *Result) Largest() int {
	best := -1
	for i, m := range r.members {
		if best < 0 || len(m) > len(r.members[best]) {
			best = i
		}
	}
	return best
}
