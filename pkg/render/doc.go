// Package render turns clustered, laid-out graphs into files.
//
// # Overview
//
// Renderers consume a [scene.Scene] built by the pipeline. This package
// holds the format conversion shared by all renderers; the concrete outputs
// live in subpackages:
//
//   - [sink]: interactive HTML (3D and 2D), static SVG, PNG, PDF and scene JSON
//   - [nodelink]: Graphviz DOT with pinned positions, rendered through Graphviz
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(s2)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [scene.Scene]: github.com/matzehuels/clusterviz/pkg/scene.Scene
// [sink]: github.com/matzehuels/clusterviz/pkg/render/sink
// [nodelink]: github.com/matzehuels/clusterviz/pkg/render/nodelink
package render
