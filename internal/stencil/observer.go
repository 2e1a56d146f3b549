package stencil

// Observer is notified of every finalized time slice, slice 0 included.
// slice is a view into the field and must not be retained or modified.
type Observer interface {
	OnSlice(n int, t float64, slice []float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(n int, t float64, slice []float64)

func (f ObserverFunc) OnSlice(n int, t float64, slice []float64) { f(n, t, slice) }
