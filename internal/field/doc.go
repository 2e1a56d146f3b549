// Package field owns the dense time-by-space array of a diffusion run and
// the operations that set its initial and boundary values.
//
// A [Field] has shape [T, N1, (N2), (N3)]: the time axis first, then one
// axis per spatial dimension, stored row-major in a [sparse.DenseArray].
// [Field.Slice] exposes one time slice as a flat view into that storage.
//
// Condition application follows a single-writer rule: [ApplyInitial]
// mutates slice 0 in place, [ApplyBoundary] returns a new field and never
// touches its input.
package field
