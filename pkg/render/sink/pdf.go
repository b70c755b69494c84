package sink

import (
	"github.com/matzehuels/clusterviz/pkg/render"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the scene as PDF via SVG conversion. Interaction scripts
// are dropped since PDF viewers ignore them.
func RenderPDF(s scene.Scene, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svgOpts := append([]SVGOption{WithoutInteraction()}, r.svgOpts...)
	return render.ToPDF(RenderSVG(s, svgOpts...))
}
