package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/clusterviz/pkg/scene"
)

const componentInteractionCSS = `
    .node { transition: r 0.2s ease; }
    .node.highlight { stroke: #222; stroke-width: 2; }
    .node.dim, .node-text.dim { opacity: 0.2; }`

const componentInteractionJS = `
    function highlight(cid) {
      document.querySelectorAll('.node, .node-text').forEach(el => {
        const same = el.dataset.component === cid;
        el.classList.toggle('highlight', same && el.classList.contains('node'));
        el.classList.toggle('dim', !same);
      });
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .node-text').forEach(el => el.classList.remove('highlight', 'dim'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.component));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	padding       float64
	radius        float64
	labels        bool
	legend        bool
	interactive   bool
}

func WithSize(w, h float64) SVGOption { return func(r *svgRenderer) { r.width, r.height = w, h } }
func WithoutLabels() SVGOption        { return func(r *svgRenderer) { r.labels = false } }
func WithLegend() SVGOption           { return func(r *svgRenderer) { r.legend = true } }
func WithoutInteraction() SVGOption   { return func(r *svgRenderer) { r.interactive = false } }

// RenderSVG draws the scene in 2D. Only the first two coordinates of each
// position are used; the y axis points up as in the HTML figures.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	proj := newProjection(s, r.width, r.height, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	buf.WriteString(`  <g class="edges" stroke="` + edgeColor + `" stroke-width="1" stroke-opacity="0.5">` + "\n")
	for _, e := range s.Edges {
		x1, y1 := proj.point(e.From.X(), e.From.Y())
		x2, y2 := proj.point(e.To.X(), e.To.Y())
		fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" data-source="%s" data-target="%s"/>`+"\n",
			x1, y1, x2, y2, escapeXML(e.Source), escapeXML(e.Target))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range s.Nodes {
		x, y := proj.point(n.Position.X(), n.Position.Y())
		fmt.Fprintf(&buf, `    <circle class="node" id="node-%s" cx="%.2f" cy="%.2f" r="%.1f" fill="%s" fill-opacity="0.9" data-component="%d"><title>%s</title></circle>`+"\n",
			escapeXML(n.ID), x, y, r.radius, escapeXML(n.Color), n.Component, escapeXML(n.Label))
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		buf.WriteString(`  <g class="labels" font-family="sans-serif" font-size="10" text-anchor="middle" fill="#333">` + "\n")
		for _, n := range s.Nodes {
			x, y := proj.point(n.Position.X(), n.Position.Y())
			fmt.Fprintf(&buf, `    <text class="node-text" x="%.2f" y="%.2f" data-component="%d">%s</text>`+"\n",
				x, y+r.radius+10, n.Component, escapeXML(n.Label))
		}
		buf.WriteString("  </g>\n")
	}

	if r.legend {
		renderLegend(&buf, s.Mapping)
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", componentInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", componentInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: 800, height: 800, padding: 40, radius: 5, labels: true, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderLegend(buf *bytes.Buffer, mapping []scene.ComponentColor) {
	buf.WriteString(`  <g class="legend" font-family="sans-serif" font-size="11" fill="#333">` + "\n")
	for i, m := range mapping {
		y := 16 + float64(i)*16
		fmt.Fprintf(buf, `    <rect x="8" y="%.0f" width="10" height="10" fill="%s"/>`+"\n", y-9, escapeXML(m.Color))
		fmt.Fprintf(buf, `    <text x="24" y="%.0f">component %d (%d)</text>`+"\n", y, m.Component, m.Size)
	}
	buf.WriteString("  </g>\n")
}

// projection maps scene coordinates into the padded SVG viewport.
type projection struct {
	minX, minY, scale float64
	offX, offY        float64
	height            float64
}

func newProjection(s scene.Scene, w, h, pad float64) projection {
	p := projection{height: h}
	if len(s.Nodes) == 0 {
		return p
	}
	lo, hi := s.Bounds()
	minX, maxX := lo[0], hi[0]
	minY, maxY := lo[1], hi[1]

	innerW, innerH := max(w-2*pad, 1), max(h-2*pad, 1)
	spanX, spanY := maxX-minX, maxY-minY
	switch {
	case spanX == 0 && spanY == 0:
		p.scale = 0
	case spanX == 0:
		p.scale = innerH / spanY
	case spanY == 0:
		p.scale = innerW / spanX
	default:
		p.scale = min(innerW/spanX, innerH/spanY)
	}

	p.minX, p.minY = minX, minY
	p.offX = pad + (innerW-spanX*p.scale)/2
	p.offY = pad + (innerH-spanY*p.scale)/2
	return p
}

func (p projection) point(x, y float64) (float64, float64) {
	px := p.offX + (x-p.minX)*p.scale
	py := p.height - (p.offY + (y-p.minY)*p.scale)
	return px, py
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
