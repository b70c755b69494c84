// Package layout computes force-directed (spring) embeddings of graphs.
//
// # Algorithm
//
// [Compute] implements the Fruchterman-Reingold model. Every node is a point
// in R^d (d is 2 or 3). Each step:
//
//  1. For every node i, the displacement is the sum over all other nodes j of
//     delta * (k^2/dist^2 - A_ij*dist/k), where delta = pos_i - pos_j, dist is
//     |delta| clipped to at least 0.01, k is the optimal distance and A_ij is
//     the spring strength between i and j (the number of parallel edges, or
//     the sum of their weights when Weighted is set).
//  2. Every node moves along its displacement by at most the current
//     temperature t. Moves are applied after all displacements are known.
//  3. t decreases linearly so that it would reach zero one step after the
//     final iteration.
//
// The first term repels every pair; the second attracts along edges only.
// Disconnected components therefore drift apart without special handling.
//
// After the fixed iteration budget the layout is centered on its mean and
// scaled so that the largest absolute coordinate equals Options.Scale.
//
// # Determinism
//
// Initial positions are drawn uniformly from [0, 1) using a PCG generator
// seeded with Options.Seed, in graph node order. Given the same graph, seed,
// dimensions and options, Compute returns bit-identical positions.
//
// # 2D Views
//
// [Project2D] keeps the first two coordinates of a 3D layout. The pipeline
// uses it to derive the flat view from the 3D simulation instead of running a
// second one.
package layout
