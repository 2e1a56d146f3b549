package export

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

const dataVar = "data"

// WriteDataset writes a two- or three-dimensional field as NetCDF.
func WriteDataset(f *field.Field, clock *grid.Time, space *grid.Space, path string) error {
	if f.Dim() < 2 || f.Dim() > grid.MaxDim {
		return pde.Configf("export.WriteDataset", "dataset export needs 2 or 3 spatial axes, field has %d", f.Dim())
	}
	return WriteAtomic(path, func(out *os.File) error {
		return encodeDataset(out, f, clock, space)
	})
}

func encodeDataset(out *os.File, f *field.Field, clock *grid.Time, space *grid.Space) error {
	dims := append([]string{"time"}, grid.AxisNames[:f.Dim()]...)
	h := cdf.NewHeader(dims, f.Shape())
	h.AddAttribute("", "comment", "diffsim explicit diffusion result")
	h.AddAttribute("", "dt", []float64{clock.Dt()})
	h.AddAttribute("", "dimension", []int32{int32(f.Dim())})

	h.AddVariable(dataVar, dims, []float64{0})
	h.AddAttribute(dataVar, "description", "field value")
	for _, name := range dims {
		h.AddVariable(name, []string{name}, []float64{0})
	}
	h.Define()

	nc, err := cdf.Create(out, h)
	if err != nil {
		return err
	}

	vars := map[string][]float64{
		dataVar: f.Array().Elements,
		"time":  clock.Samples(),
	}
	for i := 0; i < f.Dim(); i++ {
		vars[grid.AxisNames[i]] = space.Axis(i)
	}
	for _, name := range append([]string{dataVar}, dims...) {
		if err := writeVar(nc, name, vars[name]); err != nil {
			return fmt.Errorf("writing variable %s: %w", name, err)
		}
	}
	return cdf.UpdateNumRecs(out)
}

func writeVar(nc *cdf.File, name string, data []float64) error {
	end := nc.Header.Lengths(name)
	n := 1
	for _, v := range end {
		n *= v
	}
	if len(data) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(data))
	}
	start := make([]int, len(end))
	_, err := nc.Writer(name, start, end).Write(data)
	return err
}

// ReadDataset reads a NetCDF artifact written by WriteDataset.
func ReadDataset(path string) (*Dataset, error) {
	const op = "export.ReadDataset"
	in, err := os.Open(path)
	if err != nil {
		return nil, pde.IOError(op, path, err)
	}
	defer in.Close()

	d, err := decodeDataset(in)
	if err != nil {
		return nil, pde.IOError(op, path, err)
	}
	return d, nil
}

func decodeDataset(in *os.File) (*Dataset, error) {
	nc, err := cdf.Open(in)
	if err != nil {
		return nil, err
	}

	shape := nc.Header.Lengths(dataVar)
	dim := len(shape) - 1
	if dim < 2 || dim > grid.MaxDim {
		return nil, fmt.Errorf("variable %s has %d spatial axes", dataVar, dim)
	}

	a := sparse.ZerosDense(shape...)
	if err := readVar(nc, dataVar, a.Elements); err != nil {
		return nil, err
	}
	f, err := field.FromArray(a)
	if err != nil {
		return nil, err
	}

	times := make([]float64, shape[0])
	if err := readVar(nc, "time", times); err != nil {
		return nil, err
	}
	clock, err := grid.TimeOf(times)
	if err != nil {
		return nil, err
	}

	axes := make([][]float64, dim)
	for i := range axes {
		axes[i] = make([]float64, shape[i+1])
		if err := readVar(nc, grid.AxisNames[i], axes[i]); err != nil {
			return nil, err
		}
	}
	return &Dataset{Field: f, Space: grid.SpaceOf(axes...), Time: clock}, nil
}

func readVar(nc *cdf.File, name string, buf []float64) error {
	if got := nc.Header.Lengths(name); len(got) == 0 {
		return fmt.Errorf("variable %s missing", name)
	}
	if _, err := nc.Reader(name, nil, nil).Read(buf); err != nil {
		return fmt.Errorf("reading variable %s: %w", name, err)
	}
	return nil
}

// Attributes returns the global dt and dimension attributes of a NetCDF
// artifact.
func Attributes(path string) (dt float64, dim int, err error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, 0, pde.IOError("export.Attributes", path, err)
	}
	defer in.Close()

	nc, err := cdf.Open(in)
	if err != nil {
		return 0, 0, pde.IOError("export.Attributes", path, err)
	}
	dts, ok := nc.Header.GetAttribute("", "dt").([]float64)
	dims, ok2 := nc.Header.GetAttribute("", "dimension").([]int32)
	if !ok || !ok2 || len(dts) == 0 || len(dims) == 0 {
		return 0, 0, pde.IOError("export.Attributes", path, fmt.Errorf("missing dt or dimension attribute"))
	}
	return dts[0], int(dims[0]), nil
}
