package scene

import (
	"testing"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/graph"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/palette"
)

func fixture(t *testing.T) (*graph.Graph, *components.Result, palette.Palette, layout.Layout) {
	t.Helper()
	g, err := graph.Build(
		[]graph.Node{
			{ID: "A", Meta: graph.Metadata{"name": "alpha"}},
			{ID: "B"},
			{ID: "C"},
			{ID: "D", Meta: graph.Metadata{"name": "delta"}},
		},
		[]graph.Edge{
			{Source: "A", Target: "B", Weight: 1},
			{Source: "B", Target: "C", Weight: 2},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	comps := components.Find(g)
	lay, err := layout.Compute(g, layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return g, comps, palette.New(comps.Count()), lay
}

func TestBuild(t *testing.T) {
	g, comps, pal, lay := fixture(t)
	s, err := Build(g, comps, pal, lay, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if s.Dimensions != 3 || s.Seed != layout.DefaultSeed {
		t.Errorf("header = %d/%d", s.Dimensions, s.Seed)
	}
	if s.Fingerprint != graph.Fingerprint(g) {
		t.Error("fingerprint mismatch")
	}
	if s.Components != 2 {
		t.Errorf("Components = %d, want 2", s.Components)
	}

	want := []struct {
		id, color string
		cid       int
	}{
		{"A", "#1f77b4", 0},
		{"B", "#1f77b4", 0},
		{"C", "#1f77b4", 0},
		{"D", "#ff7f0e", 1},
	}
	if len(s.Nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(s.Nodes), len(want))
	}
	for i, w := range want {
		n := s.Nodes[i]
		if n.ID != w.id || n.Color != w.color || n.Component != w.cid {
			t.Errorf("node %d = %+v, want %s/%s/%d", i, n, w.id, w.color, w.cid)
		}
		if n.Label != w.id {
			t.Errorf("node %s label = %q, want ID", n.ID, n.Label)
		}
		if len(n.Position) != 3 {
			t.Errorf("node %s has %d coordinates", n.ID, len(n.Position))
		}
	}

	if len(s.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(s.Edges))
	}
	e := s.Edges[1]
	if e.Source != "B" || e.Target != "C" || e.Weight != 2 {
		t.Errorf("edge = %+v", e)
	}
	if e.From[0] != lay.Positions["B"][0] || e.To[2] != lay.Positions["C"][2] {
		t.Error("edge endpoints do not match node positions")
	}

	if len(s.Mapping) != 2 || s.Mapping[0].Size != 3 || s.Mapping[1].Color != "#ff7f0e" {
		t.Errorf("Mapping = %+v", s.Mapping)
	}
}

func TestBuildLabelKey(t *testing.T) {
	g, comps, pal, lay := fixture(t)
	s, err := Build(g, comps, pal, lay, Options{LabelKey: "name"})
	if err != nil {
		t.Fatal(err)
	}
	got := []string{s.Nodes[0].Label, s.Nodes[1].Label, s.Nodes[3].Label}
	want := []string{"alpha", "B", "delta"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildMismatchedInputs(t *testing.T) {
	g, comps, pal, _ := fixture(t)

	other, _ := graph.Build([]graph.Node{{ID: "A"}}, nil)
	lay, _ := layout.Compute(other, layout.Options{})
	if _, err := Build(g, comps, pal, lay, Options{}); err == nil {
		t.Error("expected error for layout missing nodes")
	}

	lay, _ = layout.Compute(g, layout.Options{})
	if _, err := Build(g, components.Find(other), pal, lay, Options{}); err == nil {
		t.Error("expected error for components missing nodes")
	}
}

func TestBuildEmpty(t *testing.T) {
	g, _ := graph.Build(nil, nil)
	comps := components.Find(g)
	lay, _ := layout.Compute(g, layout.Options{})
	s, err := Build(g, comps, palette.New(0), lay, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Nodes) != 0 || len(s.Edges) != 0 || len(s.Mapping) != 0 {
		t.Errorf("empty scene = %+v", s)
	}
	lo, hi := s.Bounds()
	if len(lo) != 3 || lo[0] != 0 || hi[0] != 0 {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}

func TestProject2D(t *testing.T) {
	g, comps, pal, lay := fixture(t)
	s3, _ := Build(g, comps, pal, lay, Options{})
	s2 := s3.Project2D()

	if s2.Dimensions != 2 {
		t.Errorf("Dimensions = %d", s2.Dimensions)
	}
	for i, n := range s2.Nodes {
		p3 := s3.Nodes[i].Position
		if len(n.Position) != 2 || n.Position[0] != p3[0] || n.Position[1] != p3[1] {
			t.Errorf("node %s projected to %v from %v", n.ID, n.Position, p3)
		}
		if n.Color != s3.Nodes[i].Color {
			t.Errorf("node %s changed color", n.ID)
		}
	}
	for i, e := range s2.Edges {
		if len(e.From) != 2 || len(e.To) != 2 {
			t.Errorf("edge %d not projected: %+v", i, e)
		}
	}
	if len(s3.Nodes[0].Position) != 3 {
		t.Error("Project2D modified the source scene")
	}
}

func TestByComponent(t *testing.T) {
	g, comps, pal, lay := fixture(t)
	s, _ := Build(g, comps, pal, lay, Options{})
	groups := s.ByComponent()
	if len(groups) != 2 || len(groups[0]) != 3 || len(groups[1]) != 1 || groups[1][0].ID != "D" {
		t.Errorf("ByComponent() = %+v", groups)
	}
}
