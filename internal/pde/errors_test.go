package pde

import (
	"errors"
	"io/fs"
	"strings"
	"sync/atomic"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"config", Configf("grid.NewSpace", "dimension %d", 4), ErrConfiguration},
		{"state", Statef("stencil.Solve", "field not set"), ErrState},
		{"io", IOError("export.Write", "/tmp/x.csv", fs.ErrPermission), ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("expected %v to match %v", tt.err, tt.kind)
			}
			for _, other := range []error{ErrConfiguration, ErrState, ErrIO} {
				if other != tt.kind && errors.Is(tt.err, other) {
					t.Errorf("%v should not match %v", tt.err, other)
				}
			}
		})
	}
}

func TestIOErrorKeepsCause(t *testing.T) {
	err := IOError("export.Write", "/tmp/out.nc", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected cause to be preserved")
	}
	if !strings.Contains(err.Error(), "/tmp/out.nc") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 10000} {
		seen := make([]int32, n)
		ParallelFor(n, 16, 4, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}
