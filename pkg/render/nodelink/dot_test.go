package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

func testScene() scene.Scene {
	return scene.Scene{
		Dimensions: 2,
		Components: 2,
		Nodes: []scene.NodeRecord{
			{ID: "A", Label: "alpha", Component: 0, Color: "#1f77b4", Position: layout.Position{-1, 0.5}},
			{ID: "B", Label: "B", Component: 0, Color: "#1f77b4", Position: layout.Position{1, -1}},
			{ID: "D", Label: "D \"quoted\"", Component: 1, Color: "#ff7f0e", Position: layout.Position{0, 0}},
		},
		Edges: []scene.EdgeRecord{
			{Source: "A", Target: "B", Weight: 2.5},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testScene(), Options{})

	for _, want := range []string{
		"graph G {",
		`"A" [label="", xlabel="alpha", fillcolor="#1f77b4", pos="-288.00,144.00!"];`,
		`fillcolor="#ff7f0e"`,
		`xlabel="D \"quoted\""`,
		`"A" -- "B";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT contains directed edges")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(testScene(), Options{Spread: 200, Detailed: true, Weights: true})

	for _, want := range []string{
		`pos="100.00,-100.00!"`,
		`label="1"`,
		`"A" -- "B" [label="2.5"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 100.00 50.00" width="100" height="50"`)) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(testScene(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
	if !bytes.Contains(svg, []byte("#1f77b4")) {
		t.Error("component color missing from SVG")
	}
}
