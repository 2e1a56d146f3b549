// Package pde holds the primitives shared by every stage of a diffusion run.
//
// The package defines the error taxonomy used across the solver:
//
//   - [ErrConfiguration]: invalid dimensionality, region, thickness or
//     step constant, raised eagerly at construction or setup
//   - [ErrState]: an operation ran before the grid or field it needs existed
//   - [ErrIO]: persisting or reading a result failed
//
// Concrete failures are reported as [*Error], which matches its kind and its
// underlying cause with [errors.Is]:
//
//	if errors.Is(err, pde.ErrConfiguration) {
//	    // fix the input, nothing was mutated
//	}
//
// [ParallelFor] splits an index range into batches that run concurrently.
// The stencil solver uses it for the cells of a single sweep.
package pde
