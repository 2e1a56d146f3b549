// Package export persists solved fields and reads them back.
//
// One-dimensional runs are written as a CSV table with a header row of x
// coordinates and one row per time sample, the time value in the first
// column. Two- and three-dimensional runs are written as NetCDF classic
// files holding the field, its coordinate variables and the step size.
//
// Every write goes to a temporary file next to the destination that is
// renamed into place once complete, so a failed export never leaves a
// partial artifact behind.
package export
