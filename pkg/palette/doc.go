// Package palette assigns visually distinct colors to component IDs.
//
// # Strategies
//
// A palette for n components is produced by one of two strategies, chosen
// once by [Select]:
//
//   - Base: the ten Tableau colors, used when n fits (first n entries, in
//     order).
//   - Generated: n colors sampled from a continuous [Scale] at i/n for
//     i in [0, n).
//
// The default scale is "tab20", sampled with listed-colormap semantics
// (index floor(t*20)). Gradient scales such as "viridis" interpolate between
// stops in CIE L*a*b* space using go-colorful.
//
// A listed scale holds a fixed number of colors. Beyond 20 components tab20
// repeats entries (25 components get 20 distinct colors, and components 0
// and 1 share #1f77b4), matching matplotlib's sampling of a listed colormap.
// Use "viridis" or "hcl" when every component needs its own color.
//
// # Lookup
//
// [Palette.Color] indexes with cid % len(Colors), so lookup never fails even
// when a generated palette repeats or under-produces colors. Palettes always
// hold at least one color.
//
// # Determinism
//
// Palettes depend only on n and the chosen scale. The same inputs always
// produce the same hex strings.
package palette
