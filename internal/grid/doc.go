// Package grid discretizes space and time for a finite-difference run.
//
// A [Space] is 1 to 3 evenly sampled axes in x, y, z order; a [Time] is the
// ordered sequence of time samples together with the step size derived from
// them. Both are immutable once built: accessors hand out copies.
//
//	space, _ := grid.NewSpace(grid.D2,
//	    grid.AxisSpec{Start: 0, Stop: 1, Count: 60},
//	    grid.AxisSpec{Start: 0, Stop: 1, Count: 60})
//	clock, _ := grid.NewTime(0, 60, 0.1)
package grid
