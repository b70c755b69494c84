package palette

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// Scale is a continuous color scale over t in [0, 1].
type Scale interface {
	Name() string
	At(t float64) colorful.Color
}

// Listed is a discrete colormap. At(t) returns entry floor(t*N), clamped to
// the valid range, matching how listed colormaps are usually sampled.
type Listed struct {
	name   string
	colors []colorful.Color
}

// NewListed creates a listed scale from hex colors.
func NewListed(name string, hexes []string) (*Listed, error) {
	colors, err := parseHexes(hexes)
	if err != nil {
		return nil, fmt.Errorf("scale %s: %w", name, err)
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("scale %s: no colors", name)
	}
	return &Listed{name: name, colors: colors}, nil
}

func (l *Listed) Name() string { return l.name }

func (l *Listed) At(t float64) colorful.Color {
	n := len(l.colors)
	i := int(t * float64(n))
	return l.colors[max(0, min(i, n-1))]
}

// Gradient interpolates linearly in L*a*b* between evenly spaced stops.
type Gradient struct {
	name  string
	stops []colorful.Color
}

// NewGradient creates a gradient scale from at least two hex stops.
func NewGradient(name string, hexes []string) (*Gradient, error) {
	stops, err := parseHexes(hexes)
	if err != nil {
		return nil, fmt.Errorf("scale %s: %w", name, err)
	}
	if len(stops) < 2 {
		return nil, fmt.Errorf("scale %s: need at least two stops", name)
	}
	return &Gradient{name: name, stops: stops}, nil
}

func (g *Gradient) Name() string { return g.name }

func (g *Gradient) At(t float64) colorful.Color {
	t = max(0, min(t, 1))
	seg := t * float64(len(g.stops)-1)
	i := int(math.Floor(seg))
	if i >= len(g.stops)-1 {
		return g.stops[len(g.stops)-1]
	}
	return g.stops[i].BlendLab(g.stops[i+1], seg-float64(i)).Clamped()
}

// hueWheel spaces hues evenly in HCL at fixed chroma and luminance.
type hueWheel struct{}

func (hueWheel) Name() string { return "hcl" }

func (hueWheel) At(t float64) colorful.Color {
	return colorful.Hcl(360*t, 0.6, 0.65).Clamped()
}

// Scale names.
const (
	ScaleTab20   = "tab20"
	ScaleTab10   = "tab10"
	ScaleViridis = "viridis"
	ScaleHCL     = "hcl"
)

// DefaultScale is used for generated palettes unless another is chosen.
const DefaultScale = ScaleTab20

var tab20 = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

var viridis = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

var scales = map[string]func() (Scale, error){
	ScaleTab20:   func() (Scale, error) { return NewListed(ScaleTab20, tab20) },
	ScaleTab10:   func() (Scale, error) { return NewListed(ScaleTab10, tableauHex) },
	ScaleViridis: func() (Scale, error) { return NewGradient(ScaleViridis, viridis) },
	ScaleHCL:     func() (Scale, error) { return hueWheel{}, nil },
}

// ScaleByName returns a built-in scale. An empty name selects [DefaultScale].
func ScaleByName(name string) (Scale, error) {
	if name == "" {
		name = DefaultScale
	}
	mk, ok := scales[name]
	if !ok {
		return nil, fmt.Errorf("unknown color scale %q (must be one of: %v)", name, ScaleNames())
	}
	return mk()
}

// ScaleNames lists the built-in scale names in sorted order.
func ScaleNames() []string {
	return slices.Sorted(maps.Keys(scales))
}

func parseHexes(hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", h, err)
		}
		out[i] = c
	}
	return out, nil
}

func mustParseHexes(hexes []string) []colorful.Color {
	out, err := parseHexes(hexes)
	if err != nil {
		panic(err)
	}
	return out
}
