// Package nodelink renders clustered graphs as Graphviz node-link diagrams.
//
// # Overview
//
// Nodes are drawn as filled circles colored by component and pinned to the
// positions computed by the force-directed layout, so Graphviz only routes
// edges and places labels. It's an alternative to the Plotly and SVG sinks
// for cases where a Graphviz toolchain is already part of the workflow.
//
// # Usage
//
// Convert a scene to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(s2, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated graph is undirected and carries `pos="x,y!"` on every node.
// [RenderSVG] runs the neato engine, which honors pinned positions.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
