package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/palette"
	"github.com/matzehuels/clusterviz/pkg/render"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

func testScene() scene.Scene {
	pos := map[string]layout.Position{
		"A": {-1, 0.5, 0.2},
		"B": {0, 1, -0.4},
		"C": {1, -1, 1},
		"D": {0.5, 0, -1},
	}
	return scene.Scene{
		Dimensions:  3,
		Seed:        42,
		Fingerprint: "abc",
		Components:  2,
		Palette:     palette.Palette{Colors: []string{"#1f77b4", "#ff7f0e"}, Strategy: palette.StrategyBase},
		Mapping: []scene.ComponentColor{
			{Component: 0, Color: "#1f77b4", Size: 3},
			{Component: 1, Color: "#ff7f0e", Size: 1},
		},
		Nodes: []scene.NodeRecord{
			{ID: "A", Label: "A", Component: 0, Color: "#1f77b4", Position: pos["A"]},
			{ID: "B", Label: "B", Component: 0, Color: "#1f77b4", Position: pos["B"]},
			{ID: "C", Label: "<C&>", Component: 0, Color: "#1f77b4", Position: pos["C"]},
			{ID: "D", Label: "D", Component: 1, Color: "#ff7f0e", Position: pos["D"]},
		},
		Edges: []scene.EdgeRecord{
			{Source: "A", Target: "B", Weight: 1, From: pos["A"], To: pos["B"]},
			{Source: "B", Target: "C", Weight: 2, From: pos["B"], To: pos["C"]},
		},
	}
}

// extractTraces pulls the first JSON argument of Plotly.newPlot out of a page.
func extractTraces(t *testing.T, page []byte) []plotlyTrace {
	t.Helper()
	s := string(page)
	start := strings.Index(s, `Plotly.newPlot("plot", `)
	if start < 0 {
		t.Fatal("newPlot call not found")
	}
	dec := json.NewDecoder(strings.NewReader(s[start+len(`Plotly.newPlot("plot", `):]))
	var traces []plotlyTrace
	if err := dec.Decode(&traces); err != nil {
		t.Fatalf("decode traces: %v", err)
	}
	return traces
}

func TestRenderHTML3D(t *testing.T) {
	page, err := RenderHTML(testScene(), WithTitle("demo"))
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}

	for _, want := range []string{"<title>demo</title>", PlotlyCDN, `"zaxis"`} {
		if !bytes.Contains(page, []byte(want)) {
			t.Errorf("page missing %q", want)
		}
	}

	traces := extractTraces(t, page)
	if len(traces) != 2 {
		t.Fatalf("got %d traces, want 2", len(traces))
	}
	edges, nodes := traces[0], traces[1]

	if edges.Type != "scatter3d" || edges.Mode != "lines" || edges.Line.Color != "#888" || edges.Opacity != 0.7 {
		t.Errorf("edge trace = %+v", edges)
	}
	if len(edges.X) != 6 || edges.X[2] != nil || len(edges.Z) != 6 {
		t.Errorf("edge coordinates = %v / %v", edges.X, edges.Z)
	}
	if edges.X[3] != 0.0 || edges.X[4] != 1.0 {
		t.Errorf("second segment = %v, want B->C", edges.X[3:5])
	}

	if nodes.Type != "scatter3d" || nodes.Mode != "markers+text" || nodes.Opacity != 0.9 {
		t.Errorf("node trace = %+v", nodes)
	}
	if nodes.Marker.Size != 5 || nodes.Marker.Color[3] != "#ff7f0e" {
		t.Errorf("marker = %+v", nodes.Marker)
	}
	if nodes.Text[2] != "<C&>" {
		t.Errorf("label = %q", nodes.Text[2])
	}
}

func TestRenderHTML2DDrawsRealSegments(t *testing.T) {
	s := testScene().Project2D()
	page, err := RenderHTML(s)
	if err != nil {
		t.Fatal(err)
	}
	traces := extractTraces(t, page)
	edges, nodes := traces[0], traces[1]

	if edges.Type != "scatter" || len(edges.Z) != 0 || edges.Opacity != 0.5 || nodes.Opacity != 0.7 {
		t.Errorf("2D traces = %+v / %+v", edges, nodes)
	}
	// A(-1,0.5) -> B(0,1): both endpoints, not the source twice.
	if edges.X[0] != -1.0 || edges.X[1] != 0.0 || edges.Y[0] != 0.5 || edges.Y[1] != 1.0 {
		t.Errorf("first segment = %v,%v", edges.X[:2], edges.Y[:2])
	}
	if bytes.Contains(page, []byte(`"zaxis"`)) {
		t.Error("2D page has a z axis")
	}
}

func TestRenderHTMLEscapesLabels(t *testing.T) {
	s := testScene()
	s.Nodes[0].Label = "</script><script>alert(1)</script>"
	page, err := RenderHTML(s, WithTitle("<b>x</b>"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(page, []byte("<script>alert(1)")) || bytes.Contains(page, []byte("<b>x</b>")) {
		t.Error("unescaped markup in page")
	}
}

func TestRenderSVG(t *testing.T) {
	svg := RenderSVG(testScene(), WithLegend())

	if err := xml.Unmarshal(svg, new(struct{})); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	out := string(svg)
	if n := strings.Count(out, "<circle"); n != 4 {
		t.Errorf("got %d circles, want 4", n)
	}
	if n := strings.Count(out, "<line"); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
	for _, want := range []string{`fill="#ff7f0e"`, "&lt;C&amp;&gt;", "component 1 (1)", `data-component="1"`, "<script"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithoutLabels(), WithoutInteraction(), WithSize(300, 200)))
	if strings.Contains(svg, "<text") || strings.Contains(svg, "<script") {
		t.Error("labels or script rendered despite options")
	}
	if !strings.Contains(svg, `viewBox="0 0 300.0 200.0"`) {
		t.Error("size option ignored")
	}
}

func TestProjectionFitsViewport(t *testing.T) {
	p := newProjection(testScene(), 800, 600, 40)
	for _, pt := range [][2]float64{{-1, -1}, {1, 1}, {0, 0}} {
		x, y := p.point(pt[0], pt[1])
		if x < 40-1e-9 || x > 760+1e-9 || y < 40-1e-9 || y > 560+1e-9 {
			t.Errorf("point %v mapped outside padding: (%v, %v)", pt, x, y)
		}
	}
	// Higher y is drawn higher up.
	_, lo := p.point(0, -1)
	_, hi := p.point(0, 1)
	if hi >= lo {
		t.Errorf("y axis not flipped: %v >= %v", hi, lo)
	}
}

func TestProjectionSingleNode(t *testing.T) {
	s := scene.Scene{Dimensions: 2, Nodes: []scene.NodeRecord{{ID: "x", Position: layout.Position{0, 0}}}}
	x, y := newProjection(s, 100, 100, 10).point(0, 0)
	if x != 50 || y != 50 {
		t.Errorf("single node at (%v, %v), want center", x, y)
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	s := testScene()
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fingerprint != "abc" || len(got.Nodes) != 4 || len(got.Edges) != 2 || got.Nodes[3].Color != "#ff7f0e" {
		t.Errorf("round trip = %+v", got)
	}

	compact, _ := RenderJSON(s, WithJSONCompact(), WithJSONNodesOnly())
	if bytes.Contains(compact, []byte("\n  ")) {
		t.Error("compact output is indented")
	}
	if got, _ := ParseJSON(compact); len(got.Edges) != 0 {
		t.Error("nodes-only output kept edges")
	}
}

func TestParseJSONRejectsBadDimensions(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"dimensions": 4}`)); err == nil {
		t.Error("expected error")
	}
	if _, err := ParseJSON([]byte(`{`)); err == nil {
		t.Error("expected error")
	}
}

func TestRenderPNG(t *testing.T) {
	out, err := RenderPNG(testScene(), WithScale(1))
	if !render.ConverterAvailable() {
		if !errors.Is(err, render.ErrConverterMissing) {
			t.Errorf("error = %v, want ErrConverterMissing", err)
		}
		return
	}
	if err != nil || !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Errorf("RenderPNG() = %d bytes, %v", len(out), err)
	}
}
