package scene

import (
	"fmt"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/graph"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/palette"
)

// NodeRecord is a fully resolved node ready for rendering.
type NodeRecord struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Component int             `json:"component"`
	Color     string          `json:"color"`
	Position  layout.Position `json:"position"`
}

// EdgeRecord is an edge with both endpoint positions resolved.
type EdgeRecord struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Weight float64         `json:"weight"`
	From   layout.Position `json:"from"`
	To     layout.Position `json:"to"`
}

// ComponentColor is one row of the component-to-color mapping.
type ComponentColor struct {
	Component int    `json:"component"`
	Color     string `json:"color"`
	Size      int    `json:"size"`
}

// Scene is the render input for one view.
type Scene struct {
	Dimensions  int              `json:"dimensions"`
	Seed        uint64           `json:"seed"`
	Fingerprint string           `json:"fingerprint"`
	Components  int              `json:"components"`
	Palette     palette.Palette  `json:"palette"`
	Mapping     []ComponentColor `json:"mapping"`
	Nodes       []NodeRecord     `json:"nodes"`
	Edges       []EdgeRecord     `json:"edges"`
}

// Options configures [Build].
type Options struct {
	// LabelKey selects a node metadata column for labels. Empty uses node IDs.
	LabelKey string
}

// Build assembles a scene. Nodes keep graph order and edges keep input order.
//
// comps and lay must have been computed from g; a node without a component
// or a position is reported as an error.
func Build(g *graph.Graph, comps *components.Result, pal palette.Palette, lay layout.Layout, opts Options) (Scene, error) {
	s := Scene{
		Dimensions:  lay.Dimensions,
		Seed:        lay.Seed,
		Fingerprint: graph.Fingerprint(g),
		Components:  comps.Count(),
		Palette:     pal,
		Nodes:       make([]NodeRecord, 0, g.NodeCount()),
		Edges:       make([]EdgeRecord, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		cid, ok := comps.Of(n.ID)
		if !ok {
			return Scene{}, fmt.Errorf("node %q has no component", n.ID)
		}
		pos, ok := lay.Position(n.ID)
		if !ok {
			return Scene{}, fmt.Errorf("node %q has no position", n.ID)
		}
		s.Nodes = append(s.Nodes, NodeRecord{
			ID:        n.ID,
			Label:     n.Label(opts.LabelKey),
			Component: cid,
			Color:     pal.Color(cid),
			Position:  pos,
		})
	}

	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, EdgeRecord{
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
			From:   lay.Positions[e.Source],
			To:     lay.Positions[e.Target],
		})
	}

	for cid := range comps.Count() {
		s.Mapping = append(s.Mapping, ComponentColor{Component: cid, Color: pal.Color(cid), Size: comps.Size(cid)})
	}
	return s, nil
}

// Project2D returns a copy of s restricted to the first two coordinates.
func (s Scene) Project2D() Scene {
	out := s
	out.Dimensions = 2
	out.Nodes = make([]NodeRecord, len(s.Nodes))
	for i, n := range s.Nodes {
		n.Position = flatten(n.Position)
		out.Nodes[i] = n
	}
	out.Edges = make([]EdgeRecord, len(s.Edges))
	for i, e := range s.Edges {
		e.From, e.To = flatten(e.From), flatten(e.To)
		out.Edges[i] = e
	}
	return out
}

func flatten(p layout.Position) layout.Position { return layout.Position{p.X(), p.Y()} }

// Bounds returns the per-axis extent of all node positions.
func (s Scene) Bounds() (lo, hi []float64) {
	lo = make([]float64, s.Dimensions)
	hi = make([]float64, s.Dimensions)
	for i, n := range s.Nodes {
		for d := range s.Dimensions {
			v := 0.0
			if d < len(n.Position) {
				v = n.Position[d]
			}
			if i == 0 || v < lo[d] {
				lo[d] = v
			}
			if i == 0 || v > hi[d] {
				hi[d] = v
			}
		}
	}
	return lo, hi
}

// ByComponent groups node records by component ID, preserving graph order
// within each group.
func (s Scene) ByComponent() [][]NodeRecord {
	groups := make([][]NodeRecord, s.Components)
	for _, n := range s.Nodes {
		if n.Component >= 0 && n.Component < len(groups) {
			groups[n.Component] = append(groups[n.Component], n)
		}
	}
	return groups
}
