package sink

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matzehuels/clusterviz/pkg/scene"
)

// PlotlyCDN is the default plotly.js bundle referenced by HTML output.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

const (
	edgeColor  = "#888"
	markerSize = 5
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title       string
	plotlySrc   string
	markerSize  float64
	edgeOpacity float64
	nodeOpacity float64
}

// WithTitle sets the page title.
func WithTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

// WithPlotlySrc replaces the plotly.js script URL, e.g. for a vendored copy.
// An empty src keeps [PlotlyCDN].
func WithPlotlySrc(src string) HTMLOption {
	return func(r *htmlRenderer) {
		if src != "" {
			r.plotlySrc = src
		}
	}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.PlotlySrc}}" charset="utf-8"></script>
<style>html, body { margin: 0; height: 100%; } #plot { width: 100%; height: 100%; }</style>
</head>
<body>
<div id="plot"></div>
<script>
Plotly.newPlot("plot", {{.Traces}}, {{.Layout}}, {"responsive": true});
</script>
</body>
</html>
`))

type plotlyTrace struct {
	Type         string        `json:"type"`
	Mode         string        `json:"mode"`
	Name         string        `json:"name,omitempty"`
	X            []any         `json:"x"`
	Y            []any         `json:"y"`
	Z            []any         `json:"z,omitempty"`
	Text         []string      `json:"text,omitempty"`
	HoverText    []string      `json:"hovertext,omitempty"`
	TextPosition string        `json:"textposition,omitempty"`
	HoverInfo    string        `json:"hoverinfo,omitempty"`
	Opacity      float64       `json:"opacity"`
	Line         *plotlyLine   `json:"line,omitempty"`
	Marker       *plotlyMarker `json:"marker,omitempty"`
	ShowLegend   bool          `json:"showlegend"`
}

type plotlyLine struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

type plotlyMarker struct {
	Size  float64  `json:"size"`
	Color []string `json:"color"`
}

type plotlyAxis struct {
	Title map[string]string `json:"title"`
}

func axis(title string) plotlyAxis { return plotlyAxis{Title: map[string]string{"text": title}} }

type plotlyLayout struct {
	Scene    map[string]plotlyAxis `json:"scene,omitempty"`
	XAxis    *plotlyAxis           `json:"xaxis,omitempty"`
	YAxis    *plotlyAxis           `json:"yaxis,omitempty"`
	Margin   map[string]int        `json:"margin"`
	AutoSize bool                  `json:"autosize"`
}

type pageData struct {
	Title     string
	PlotlySrc string
	Traces    []plotlyTrace
	Layout    plotlyLayout
}

// RenderHTML renders s as an interactive Plotly page. Scenes with three
// dimensions become a 3D figure; anything else is drawn in 2D.
func RenderHTML(s scene.Scene, opts ...HTMLOption) ([]byte, error) {
	r := newHTMLRenderer(s.Dimensions, opts...)

	data := pageData{
		Title:     r.title,
		PlotlySrc: r.plotlySrc,
		Traces:    []plotlyTrace{r.edgeTrace(s), r.nodeTrace(s)},
		Layout:    plotLayout(s.Dimensions == 3),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func newHTMLRenderer(dims int, opts ...HTMLOption) htmlRenderer {
	r := htmlRenderer{
		title:       "clusterviz",
		plotlySrc:   PlotlyCDN,
		markerSize:  markerSize,
		edgeOpacity: 0.5,
		nodeOpacity: 0.7,
	}
	if dims == 3 {
		r.edgeOpacity, r.nodeOpacity = 0.7, 0.9
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r htmlRenderer) edgeTrace(s scene.Scene) plotlyTrace {
	is3D := s.Dimensions == 3
	t := plotlyTrace{
		Type:      traceType(is3D),
		Mode:      "lines",
		Name:      "edges",
		X:         make([]any, 0, 3*len(s.Edges)),
		Y:         make([]any, 0, 3*len(s.Edges)),
		HoverInfo: "none",
		Opacity:   r.edgeOpacity,
		Line:      &plotlyLine{Width: 1, Color: edgeColor},
	}
	if is3D {
		t.Z = make([]any, 0, 3*len(s.Edges))
	}
	for _, e := range s.Edges {
		t.X = append(t.X, e.From.X(), e.To.X(), nil)
		t.Y = append(t.Y, e.From.Y(), e.To.Y(), nil)
		if is3D {
			t.Z = append(t.Z, e.From.Z(), e.To.Z(), nil)
		}
	}
	return t
}

func (r htmlRenderer) nodeTrace(s scene.Scene) plotlyTrace {
	is3D := s.Dimensions == 3
	t := plotlyTrace{
		Type:         traceType(is3D),
		Mode:         "markers+text",
		Name:         "nodes",
		X:            make([]any, len(s.Nodes)),
		Y:            make([]any, len(s.Nodes)),
		Text:         make([]string, len(s.Nodes)),
		HoverText:    make([]string, len(s.Nodes)),
		TextPosition: "bottom center",
		HoverInfo:    "text",
		Opacity:      r.nodeOpacity,
		Marker:       &plotlyMarker{Size: r.markerSize, Color: make([]string, len(s.Nodes))},
	}
	if is3D {
		t.Z = make([]any, len(s.Nodes))
	}
	for i, n := range s.Nodes {
		t.X[i], t.Y[i] = n.Position.X(), n.Position.Y()
		if is3D {
			t.Z[i] = n.Position.Z()
		}
		t.Text[i] = n.Label
		t.HoverText[i] = fmt.Sprintf("%s (component %d)", n.ID, n.Component)
		t.Marker.Color[i] = n.Color
	}
	return t
}

func traceType(is3D bool) string {
	if is3D {
		return "scatter3d"
	}
	return "scatter"
}

func plotLayout(is3D bool) plotlyLayout {
	l := plotlyLayout{
		Margin:   map[string]int{"r": 10, "l": 10, "b": 10, "t": 10},
		AutoSize: true,
	}
	if is3D {
		l.Scene = map[string]plotlyAxis{"xaxis": axis("X"), "yaxis": axis("Y"), "zaxis": axis("Z")}
		return l
	}
	x, y := axis("X"), axis("Y")
	l.XAxis, l.YAxis = &x, &y
	return l
}
