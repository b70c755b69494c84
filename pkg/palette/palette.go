package palette

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Tableau colors (tab:blue through tab:cyan), in order. These form the base palette.
var (
	tableauHex = []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}
	tableau = mustParseHexes(tableauHex)
)

// BaseSize is the number of colors in the base palette.
const BaseSize = 10

// Strategy names recorded in [Palette.Strategy].
const (
	StrategyBase      = "base"
	StrategyGenerated = "generated"
)

// Strategy produces the colors for n components.
type Strategy interface {
	Name() string
	Colors(n int) []colorful.Color
}

// Base returns the first n base colors (at least one).
type Base struct {
	colors []colorful.Color
}

func (Base) Name() string { return StrategyBase }

func (b Base) Colors(n int) []colorful.Color {
	n = max(1, min(n, len(b.colors)))
	return append([]colorful.Color(nil), b.colors[:n]...)
}

// Generated samples Scale at i/n for i in [0, n).
type Generated struct {
	Scale Scale
}

func (Generated) Name() string { return StrategyGenerated }

func (g Generated) Colors(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range n {
		out[i] = g.Scale.At(float64(i) / float64(n))
	}
	return out
}

// Select chooses the strategy for n components: the base palette when it
// has room for n, otherwise a generated palette over scale.
func Select(n int, base []colorful.Color, scale Scale) Strategy {
	if n <= len(base) {
		return Base{colors: base}
	}
	return Generated{Scale: scale}
}

// Palette is an ordered list of hex colors for component IDs.
type Palette struct {
	Colors   []string `json:"colors"`
	Strategy string   `json:"strategy"`
	Scale    string   `json:"scale,omitempty"`
}

type config struct {
	scale Scale
	base  []colorful.Color
}

// Option configures [New].
type Option func(*config)

// WithScale sets the scale used when the palette must be generated.
func WithScale(s Scale) Option { return func(c *config) { c.scale = s } }

// WithBase replaces the base colors. Invalid hex values are skipped.
func WithBase(hexes []string) Option {
	return func(c *config) {
		var base []colorful.Color
		for _, h := range hexes {
			if col, err := colorful.Hex(h); err == nil {
				base = append(base, col)
			}
		}
		if len(base) > 0 {
			c.base = base
		}
	}
}

// New returns the palette for count components. The result always has at
// least max(count, 1) usable entries through [Palette.Color].
func New(count int, opts ...Option) Palette {
	cfg := config{base: tableau}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scale == nil {
		cfg.scale, _ = ScaleByName(DefaultScale)
	}

	s := Select(count, cfg.base, cfg.scale)
	colors := s.Colors(count)

	p := Palette{Colors: make([]string, len(colors)), Strategy: s.Name()}
	if s.Name() == StrategyGenerated {
		p.Scale = cfg.scale.Name()
	}
	for i, c := range colors {
		p.Colors[i] = c.Hex()
	}
	return p
}

// Len returns the number of stored colors.
func (p Palette) Len() int { return len(p.Colors) }

// Color returns the color for component cid. Lookup wraps with a modulus and
// never fails; an empty palette yields the first base color.
func (p Palette) Color(cid int) string {
	if len(p.Colors) == 0 {
		return tableauHex[0]
	}
	n := len(p.Colors)
	return p.Colors[((cid%n)+n)%n]
}

// Assign maps each component ID in [0, count) to its color.
func (p Palette) Assign(count int) map[int]string {
	m := make(map[int]string, count)
	for i := range count {
		m[i] = p.Color(i)
	}
	return m
}

// MinDistance returns the smallest CIEDE2000 distance between any two
// distinct positions in the palette, or 0 for fewer than two colors.
func (p Palette) MinDistance() float64 {
	cols := mustParseHexes(p.Colors)
	best := -1.0
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			if d := cols[i].DistanceCIEDE2000(cols[j]); best < 0 || d < best {
				best = d
			}
		}
	}
	return max(best, 0)
}
