package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/clusterviz/pkg/render"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

// DefaultSpread is the distance in points between a layout coordinate of -1 and 1.
const DefaultSpread = 576.0

// Options configures node-link diagram rendering.
type Options struct {
	// Spread scales layout coordinates to points. Zero uses DefaultSpread.
	Spread float64
	// Detailed adds the component ID to each node label.
	Detailed bool
	// Weights prints edge weights as edge labels.
	Weights bool
}

// ToDOT converts a scene to Graphviz DOT format. Only the first two
// coordinates of each position are used.
func ToDOT(s scene.Scene, opts Options) string {
	spread := opts.Spread
	if spread <= 0 {
		spread = DefaultSpread
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.15, fontsize=10, labelloc=b, penwidth=0];\n")
	buf.WriteString("  edge [color=\"#888888\", penwidth=0.8];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		x := n.Position.X() * spread / 2
		y := n.Position.Y() * spread / 2
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("xlabel=%q", n.Label),
			fmt.Sprintf("fillcolor=%q", n.Color),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(x), fmtCoord(y)),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		if opts.Weights {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", e.Source, e.Target, strconv.FormatFloat(e.Weight, 'g', -1, 64))
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtLabel keeps the circle itself empty unless detailed output is requested;
// the visible name is carried by xlabel.
func fmtLabel(n scene.NodeRecord, detailed bool) string {
	if !detailed {
		return ""
	}
	return strconv.Itoa(n.Component)
}

func fmtCoord(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
