package pde

import (
	"runtime"

	"github.com/exascience/pargo/parallel"
)

// ParallelFor executes fn over [0, n) in batches of at least minChunk
// indices. Batches may run concurrently and must touch disjoint data.
// workers caps the number of batches; zero means GOMAXPROCS.
func ParallelFor(n, minChunk, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers == 1 {
		fn(0, n)
		return
	}

	batches := workers
	if n/minChunk < batches {
		batches = n / minChunk
	}
	if batches < 2 {
		fn(0, n)
		return
	}

	parallel.Range(0, n, batches, fn)
}
