// Package scene joins a graph, its components, a palette and a layout into
// render-ready records.
//
// A [Scene] holds one [NodeRecord] per node (position, color, label and
// component) and one [EdgeRecord] per edge with both endpoint positions
// resolved. Sinks in [render/sink] and [render/nodelink] consume scenes and
// never look at the graph directly.
//
//	g, _ := graph.Build(nodes, edges)
//	comps := components.Find(g)
//	pal := palette.New(comps.Count())
//	lay, _ := layout.Compute(g, layout.Options{})
//	s3, _ := scene.Build(g, comps, pal, lay, scene.Options{})
//	s2 := s3.Project2D()
//
// [render/sink]: github.com/matzehuels/clusterviz/pkg/render/sink
// [render/nodelink]: github.com/matzehuels/clusterviz/pkg/render/nodelink
package scene
