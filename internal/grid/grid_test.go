package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/diffsim/internal/pde"
)

func TestAxisSample(t *testing.T) {
	xs, err := AxisSpec{Start: 0, Stop: 1, Count: 5}.Sample()
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	expected := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(xs) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(xs))
	}
	for i := range xs {
		if math.Abs(xs[i]-expected[i]) > 1e-15 {
			t.Errorf("sample %d: expected %v, got %v", i, expected[i], xs[i])
		}
	}
	if xs[len(xs)-1] != 1 {
		t.Error("last sample should equal stop exactly")
	}
}

func TestAxisSampleInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec AxisSpec
	}{
		{"single sample", AxisSpec{Start: 0, Stop: 1, Count: 1}},
		{"zero samples", AxisSpec{Start: 0, Stop: 1, Count: 0}},
		{"nan bound", AxisSpec{Start: math.NaN(), Stop: 1, Count: 5}},
		{"inf bound", AxisSpec{Start: 0, Stop: math.Inf(1), Count: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Sample()
			if !errors.Is(err, pde.ErrConfiguration) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestNewSpace(t *testing.T) {
	specs := []AxisSpec{
		{Start: 0, Stop: 1, Count: 4},
		{Start: -1, Stop: 1, Count: 5},
		{Start: 0, Stop: 2, Count: 6},
	}

	for d := D1; d <= D3; d++ {
		s, err := NewSpace(d, specs[:d]...)
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if s.Dim() != int(d) {
			t.Errorf("%s: expected %d axes, got %d", d, int(d), s.Dim())
		}
		for i, n := range s.Lengths() {
			if n != specs[i].Count {
				t.Errorf("%s axis %d: expected %d samples, got %d", d, i, specs[i].Count, n)
			}
		}
	}
}

func TestNewSpaceInvalid(t *testing.T) {
	ax := AxisSpec{Start: 0, Stop: 1, Count: 5}
	tests := []struct {
		name  string
		dim   Dimension
		specs []AxisSpec
	}{
		{"zero dimension", 0, nil},
		{"four dimensions", 4, []AxisSpec{ax, ax, ax, ax}},
		{"too few axes", D2, []AxisSpec{ax}},
		{"too many axes", D1, []AxisSpec{ax, ax}},
		{"bad axis", D2, []AxisSpec{ax, {Start: 0, Stop: 1, Count: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpace(tt.dim, tt.specs...)
			if !errors.Is(err, pde.ErrConfiguration) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestSpaceIsImmutable(t *testing.T) {
	s, err := NewSpace(D1, AxisSpec{Start: 0, Stop: 1, Count: 3})
	if err != nil {
		t.Fatal(err)
	}
	a := s.Axis(0)
	a[0] = 42
	if s.Axis(0)[0] != 0 {
		t.Error("Axis should return a copy")
	}
}

func TestNewTime(t *testing.T) {
	tm, err := NewTime(0, 100, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if tm.Len() != 101 {
		t.Errorf("expected 101 samples, got %d", tm.Len())
	}
	if tm.Start() != 0 {
		t.Errorf("expected start 0, got %v", tm.Start())
	}
	if math.Abs(tm.End()-10) > 1e-12 {
		t.Errorf("expected end 10, got %v", tm.End())
	}
	if math.Abs(tm.Dt()-0.1) > 1e-12 {
		t.Errorf("expected dt 0.1, got %v", tm.Dt())
	}

	tm, err = NewTime(1, 200, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if tm.Len() != 201 {
		t.Errorf("expected 201 samples, got %d", tm.Len())
	}
	if math.Abs(tm.End()-11) > 1e-12 {
		t.Errorf("expected end 11, got %v", tm.End())
	}
	if tm.Dt() != tm.At(1)-tm.At(0) {
		t.Error("dt must be derived from the samples")
	}
}

func TestNewTimeLargeStart(t *testing.T) {
	tests := []struct {
		start float64
		steps int
		dt    float64
	}{
		{100, 10, 1e-5},
		{3600, 50, 1e-3},
		{86400, 100, 1e-3},
		{1e6, 10, 0.01},
		{-86400, 100, 1e-3},
	}
	for _, tt := range tests {
		tm, err := NewTime(tt.start, tt.steps, tt.dt)
		if err != nil {
			t.Errorf("NewTime(%g, %d, %g): %v", tt.start, tt.steps, tt.dt, err)
			continue
		}
		if tm.Len() != tt.steps+1 {
			t.Errorf("NewTime(%g, %d, %g): %d samples", tt.start, tt.steps, tt.dt, tm.Len())
		}
		if tm.Start() != tt.start {
			t.Errorf("NewTime(%g, %d, %g): start %v", tt.start, tt.steps, tt.dt, tm.Start())
		}
		if math.Abs(tm.Dt()-tt.dt) > 1e-6*tt.dt {
			t.Errorf("NewTime(%g, %d, %g): dt %v", tt.start, tt.steps, tt.dt, tm.Dt())
		}
	}
}

func TestNewTimeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		steps int
		dt    float64
	}{
		{"zero steps", 0, 0, 0.1},
		{"zero dt", 0, 10, 0},
		{"negative dt", 0, 10, -0.1},
		{"nan start", math.NaN(), 10, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTime(tt.start, tt.steps, tt.dt)
			if !errors.Is(err, pde.ErrConfiguration) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestTimeOf(t *testing.T) {
	tm, err := TimeOf([]float64{0, 0.5, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if tm.Dt() != 0.5 || tm.Steps() != 2 {
		t.Errorf("unexpected time grid: dt=%v steps=%d", tm.Dt(), tm.Steps())
	}

	if _, err := TimeOf([]float64{0}); !errors.Is(err, pde.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want Dimension
		ok   bool
	}{
		{"1", D1, true},
		{"2D", D2, true},
		{"3d", D3, true},
		{"4", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("%q: expected %v, got %v (%v)", tt.in, tt.want, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%q: expected error", tt.in)
		}
	}
}
