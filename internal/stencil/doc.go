// Package stencil advances a field through time with explicit
// finite-difference updates.
//
// The update rule is supplied by an [Equation]; [Diffusion] is the
// second-order central-difference heat operator
//
//	next[p] = c*(Σ_i prev[p+e_i] + prev[p-e_i] - 2d*prev[p]) + prev[p]
//
// evaluated over the interior cells of a [Lattice] for any spatial
// dimension. [Solver] runs the sweeps: slice n+1 only reads finalized
// slices, so the cells of one sweep are split into batches that run in
// parallel, while the sweeps themselves are strictly sequential.
//
// # Thread Safety
//
// A Solver may be reused across runs but not shared by concurrent runs.
package stencil
