package field

// Strides returns the row-major strides of shape.
func Strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

// Volume returns the number of cells in shape.
func Volume(shape []int) int {
	n := 1
	for _, v := range shape {
		n *= v
	}
	return n
}

// Walk calls fn for every index of shape in row-major order. idx is reused
// between calls and must not be retained.
func Walk(shape []int, fn func(flat int, idx []int)) {
	n := Volume(shape)
	if n == 0 {
		return
	}
	idx := make([]int, len(shape))
	for flat := 0; flat < n; flat++ {
		fn(flat, idx)
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
}

// Inside reports whether every component of idx lies in [lo, shape-lo).
func Inside(idx, shape []int, lo int) bool {
	for d, v := range idx {
		if v < lo || v >= shape[d]-lo {
			return false
		}
	}
	return true
}
