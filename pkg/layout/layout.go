package layout

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/clusterviz/pkg/graph"
)

// ErrInvalidDimensions is returned when Options.Dimensions is not 2 or 3.
var ErrInvalidDimensions = errors.New("layout dimensions must be 2 or 3")

// Defaults match the classic spring layout parameters.
const (
	DefaultDimensions  = 3
	DefaultSeed        = uint64(42)
	DefaultIterations  = 50
	DefaultTemperature = 0.1
	DefaultScale       = 1.0

	minDistance = 0.01
)

// Options configures [Compute]. Zero values select the defaults.
type Options struct {
	Dimensions  int     // 2 or 3
	Seed        uint64  // seed for the initial placement
	Iterations  int     // fixed number of simulation steps
	K           float64 // optimal distance; 0 means 1/sqrt(n)
	Temperature float64 // initial maximum displacement per step
	Scale       float64 // largest absolute coordinate after rescaling
	Weighted    bool    // use edge weights as spring strength instead of 1
}

func (o Options) withDefaults() Options {
	if o.Dimensions == 0 {
		o.Dimensions = DefaultDimensions
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return o
}

// Position is a point with 2 or 3 coordinates.
type Position []float64

// X returns the first coordinate.
func (p Position) X() float64 { return p.at(0) }

// Y returns the second coordinate.
func (p Position) Y() float64 { return p.at(1) }

// Z returns the third coordinate, or 0 for 2D positions.
func (p Position) Z() float64 { return p.at(2) }

func (p Position) at(i int) float64 {
	if i < len(p) {
		return p[i]
	}
	return 0
}

// Layout maps every node of a graph to exactly one position.
type Layout struct {
	Dimensions int
	Seed       uint64
	Iterations int
	// Order lists node IDs in graph order.
	Order     []string
	Positions map[string]Position
}

// Position returns the position of id.
func (l Layout) Position(id string) (Position, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// Len returns the number of positioned nodes.
func (l Layout) Len() int { return len(l.Order) }

// Compute runs the force-directed simulation on g.
//
// A graph with zero nodes yields an empty layout. A single node is placed at
// the origin. Compute never mutates g.
func Compute(g *graph.Graph, opts Options) (Layout, error) {
	opts = opts.withDefaults()
	if opts.Dimensions != 2 && opts.Dimensions != 3 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrInvalidDimensions, opts.Dimensions)
	}
	if opts.Iterations < 0 {
		return Layout{}, fmt.Errorf("iterations must not be negative: %d", opts.Iterations)
	}

	ids := g.NodeIDs()
	out := Layout{
		Dimensions: opts.Dimensions,
		Seed:       opts.Seed,
		Iterations: opts.Iterations,
		Order:      ids,
		Positions:  make(map[string]Position, len(ids)),
	}

	switch len(ids) {
	case 0:
		return out, nil
	case 1:
		out.Positions[ids[0]] = make(Position, opts.Dimensions)
		return out, nil
	}

	pos := initialPositions(len(ids), opts.Dimensions, opts.Seed)
	springs := buildSprings(g, ids, opts.Weighted)
	simulate(pos, springs, opts)
	rescale(pos, opts.Dimensions, opts.Scale)

	for i, id := range ids {
		out.Positions[id] = Position(pos[i])
	}
	return out, nil
}

func initialPositions(n, dims int, seed uint64) [][]float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	pos := make([][]float64, n)
	for i := range pos {
		pos[i] = make([]float64, dims)
		for d := range dims {
			pos[i][d] = rng.Float64()
		}
	}
	return pos
}

// spring is an attractive link from one node to a neighbor index.
type spring struct {
	to       int
	strength float64
}

// buildSprings collapses the adjacency list into per-node spring lists.
// Parallel edges add their strengths; self-loops are dropped since they
// exert no force.
func buildSprings(g *graph.Graph, ids []string, weighted bool) [][]spring {
	springs := make([][]spring, len(ids))
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		s, t := g.Index(e.Source), g.Index(e.Target)
		w := 1.0
		if weighted {
			w = e.Weight
		}
		springs[s] = addSpring(springs[s], t, w)
		springs[t] = addSpring(springs[t], s, w)
	}
	return springs
}

func addSpring(list []spring, to int, w float64) []spring {
	if i := slices.IndexFunc(list, func(s spring) bool { return s.to == to }); i >= 0 {
		list[i].strength += w
		return list
	}
	return append(list, spring{to: to, strength: w})
}

func simulate(pos [][]float64, springs [][]spring, opts Options) {
	n, dims := len(pos), opts.Dimensions

	k := opts.K
	if k <= 0 {
		k = math.Sqrt(1.0 / float64(n))
	}
	t := opts.Temperature
	dt := t / float64(opts.Iterations+1)

	disp := make([][]float64, n)
	for i := range disp {
		disp[i] = make([]float64, dims)
	}
	delta := make([]float64, dims)

	for range opts.Iterations {
		for i := range n {
			clear(disp[i])
			for j := range n {
				if i == j {
					continue
				}
				dist := difference(delta, pos[i], pos[j])
				f := k * k / (dist * dist)
				for d := range dims {
					disp[i][d] += delta[d] * f
				}
			}
			for _, s := range springs[i] {
				dist := difference(delta, pos[i], pos[s.to])
				f := s.strength * dist / k
				for d := range dims {
					disp[i][d] -= delta[d] * f
				}
			}
		}

		for i := range n {
			length := max(norm(disp[i]), minDistance)
			for d := range dims {
				pos[i][d] += disp[i][d] * t / length
			}
		}
		t -= dt
	}
}

// difference writes a-b into delta and returns |a-b| clipped to minDistance.
func difference(delta, a, b []float64) float64 {
	for d := range delta {
		delta[d] = a[d] - b[d]
	}
	return max(norm(delta), minDistance)
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// rescale centers positions on their mean and scales them so the largest
// absolute coordinate equals scale.
func rescale(pos [][]float64, dims int, scale float64) {
	n := float64(len(pos))
	var lim float64
	for d := range dims {
		var mean float64
		for i := range pos {
			mean += pos[i][d]
		}
		mean /= n
		for i := range pos {
			pos[i][d] -= mean
			lim = max(lim, math.Abs(pos[i][d]))
		}
	}
	if lim == 0 {
		return
	}
	for i := range pos {
		for d := range dims {
			pos[i][d] *= scale / lim
		}
	}
}

// Project2D returns a 2D layout made of the first two coordinates of l.
// A 2D layout is returned as a copy.
func Project2D(l Layout) Layout {
	out := Layout{
		Dimensions: 2,
		Seed:       l.Seed,
		Iterations: l.Iterations,
		Order:      slices.Clone(l.Order),
		Positions:  make(map[string]Position, len(l.Positions)),
	}
	for id, p := range l.Positions {
		out.Positions[id] = Position{p.X(), p.Y()}
	}
	return out
}

// Bounds returns the per-axis minimum and maximum over all positions.
// Both slices have l.Dimensions entries and are zero for an empty layout.
func (l Layout) Bounds() (lo, hi []float64) {
	lo = make([]float64, l.Dimensions)
	hi = make([]float64, l.Dimensions)
	for i, id := range l.Order {
		p := l.Positions[id]
		for d := range l.Dimensions {
			v := p.at(d)
			if i == 0 || v < lo[d] {
				lo[d] = v
			}
			if i == 0 || v > hi[d] {
				hi[d] = v
			}
		}
	}
	return lo, hi
}
