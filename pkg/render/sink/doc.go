// Package sink provides output format renderers for clustered graph scenes.
//
// # Overview
//
// A "sink" transforms a [scene.Scene] into a final output format:
//
//   - HTML: interactive Plotly figure, 3D or 2D depending on the scene
//   - SVG: static 2D drawing with component hover highlighting
//   - JSON: the scene itself, for external tools and the HTTP viewer
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # HTML Output
//
// [RenderHTML] writes a standalone page that loads plotly.js from its CDN.
// A 3D scene produces a scatter3d figure, a 2D scene a flat scatter figure.
// Edges are drawn as one line trace with gaps between segments and nodes as
// one marker trace colored per component:
//
//	page, err := sink.RenderHTML(s3, sink.WithTitle("clusters"))
//
// # SVG Output
//
// [RenderSVG] draws the first two coordinates of every position, so a 3D
// scene renders as its projection. Hovering a node highlights its component.
//
//	svg := sink.RenderSVG(s2, sink.WithSize(1024, 768), sink.WithLegend())
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] generate SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [scene.Scene]: github.com/matzehuels/clusterviz/pkg/scene.Scene
// [render.ToPDF]: github.com/matzehuels/clusterviz/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/clusterviz/pkg/render.ToPNG
package sink
