package export

import (
	"path/filepath"
	"strings"

	"github.com/san-kum/diffsim/internal/field"
	"github.com/san-kum/diffsim/internal/grid"
	"github.com/san-kum/diffsim/internal/pde"
)

const (
	ExtTable   = ".csv"
	ExtDataset = ".nc"
)

// Dataset is a solved field together with its grids.
type Dataset struct {
	Field *field.Field
	Space *grid.Space
	Time  *grid.Time
}

// Ext returns the artifact extension used for a run of the given
// dimension.
func Ext(dim int) string {
	if dim == 1 {
		return ExtTable
	}
	return ExtDataset
}

// Write persists f at path, as a table for one spatial axis and as a
// NetCDF dataset otherwise.
func Write(f *field.Field, clock *grid.Time, space *grid.Space, path string) error {
	const op = "export.Write"
	if f == nil || clock == nil || space == nil {
		return pde.Statef(op, "field, space and time grids must be set")
	}
	if !f.Matches(space, clock) {
		return pde.Statef(op, "field shape %v does not match grids", f.Shape())
	}
	if f.Dim() == 1 {
		return WriteTable(f, clock, space, path)
	}
	return WriteDataset(f, clock, space, path)
}

// Read loads an artifact written by Write, choosing the format from the
// file extension.
func Read(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtTable:
		return ReadTable(path)
	case ExtDataset:
		return ReadDataset(path)
	default:
		return nil, pde.Configf("export.Read", "unknown artifact type %q", path)
	}
}
