package pipeline

import (
	"fmt"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/render/nodelink"
	"github.com/matzehuels/clusterviz/pkg/render/sink"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

// Render generates output artifacts in the requested formats.
//
// HTML and JSON are produced for every view. SVG, PNG, PDF and the Graphviz
// outputs are drawings of the 2D view only.
func Render(views []View, opts Options) ([]Artifact, error) {
	flat, ok := findView(views, View2D)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "no 2D view to render")
	}

	var artifacts []Artifact
	for _, format := range opts.Formats {
		var err error
		switch format {
		case FormatHTML:
			for _, v := range views {
				var data []byte
				data, err = sink.RenderHTML(v.Scene,
					sink.WithTitle(fmt.Sprintf("%s (%s)", opts.Title, v.Name)),
					sink.WithPlotlySrc(opts.PlotlySrc))
				if err != nil {
					break
				}
				artifacts = append(artifacts, Artifact{Format: format, View: v.Name, Ext: "html", Data: data})
			}
		case FormatJSON:
			for _, v := range views {
				var data []byte
				data, err = sink.RenderJSON(v.Scene)
				if err != nil {
					break
				}
				artifacts = append(artifacts, Artifact{Format: format, View: v.Name, Ext: "json", Data: data})
			}
		default:
			var data []byte
			data, err = renderFlat(flat, format)
			if err == nil {
				artifacts = append(artifacts, Artifact{Format: format, View: flatView(format), Ext: flatExt(format), Data: data})
			}
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
	}
	return artifacts, nil
}

func renderFlat(s scene.Scene, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, sink.WithLegend()), nil
	case FormatPNG:
		return sink.RenderPNG(s, sink.WithPNGSVGOptions(sink.WithLegend()))
	case FormatPDF:
		return sink.RenderPDF(s, sink.WithPDFSVGOptions(sink.WithLegend()))
	case FormatDOT:
		return []byte(nodelink.ToDOT(s, nodelink.Options{})), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(nodelink.ToDOT(s, nodelink.Options{}))
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func flatView(format string) string {
	if format == FormatGraphviz {
		return "graphviz"
	}
	return View2D
}

func flatExt(format string) string {
	if format == FormatGraphviz {
		return "svg"
	}
	return format
}

func findView(views []View, name string) (scene.Scene, bool) {
	for _, v := range views {
		if v.Name == name {
			return v.Scene, true
		}
	}
	return scene.Scene{}, false
}
