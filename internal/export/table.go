package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteTable writes a one-dimensional field as CSV.
func WriteTable(f *field.Field, clock *grid.Time, space *grid.Space, path string) error {
	if f.Dim() != 1 {
		return pde.Configf("export.WriteTable", "table export needs 1 spatial axis, field has %d", f.Dim())
	}
	return WriteAtomic(path, func(out *os.File) error {
		return encodeTable(out, f, clock, space)
	})
}

func encodeTable(out io.Writer, f *field.Field, clock *grid.Time, space *grid.Space) error {
	rows := mat.NewDense(f.Steps(), f.SliceLen(), f.Array().Elements)
	w := csv.NewWriter(out)

	x := space.Axis(0)
	record := make([]string, len(x)+1)
	record[0] = "time"
	for i, v := range x {
		record[i+1] = formatFloat(v)
	}
	if err := w.Write(record); err != nil {
		return err
	}

	for n := 0; n < f.Steps(); n++ {
		record[0] = formatFloat(clock.At(n))
		for i, v := range rows.RawRowView(n) {
			record[i+1] = formatFloat(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadTable reads a CSV artifact written by WriteTable.
func ReadTable(path string) (*Dataset, error) {
	const op = "export.ReadTable"
	in, err := os.Open(path)
	if err != nil {
		return nil, pde.IOError(op, path, err)
	}
	defer in.Close()

	d, err := decodeTable(in)
	if err != nil {
		return nil, pde.IOError(op, path, err)
	}
	return d, nil
}

func decodeTable(in io.Reader) (*Dataset, error) {
	r := csv.NewReader(in)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 3 || header[0] != "time" {
		return nil, errors.New("header must be time followed by at least two x coordinates")
	}
	x, err := parseFloats(header[1:])
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	var times, values []float64
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseFloats(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		times = append(times, row[0])
		values = append(values, row[1:]...)
	}

	clock, err := grid.TimeOf(times)
	if err != nil {
		return nil, err
	}
	a := sparse.ZerosDense(len(times), len(x))
	copy(a.Elements, values)
	f, err := field.FromArray(a)
	if err != nil {
		return nil, err
	}
	return &Dataset{Field: f, Space: grid.SpaceOf(x), Time: clock}, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
