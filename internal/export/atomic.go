package export

import (
	"os"
	"path/filepath"

	"github.com/san-kum/diffsim/internal/pde"
)

// WriteAtomic creates path by running fn against a temporary file in the
// same directory and renaming it into place. On failure the temporary
// file is removed and path is left untouched.
func WriteAtomic(path string, fn func(f *os.File) error) (err error) {
	const op = "export.WriteAtomic"
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return pde.IOError(op, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return pde.IOError(op, path, err)
	}
	if err = tmp.Sync(); err != nil {
		return pde.IOError(op, path, err)
	}
	if err = tmp.Close(); err != nil {
		return pde.IOError(op, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return pde.IOError(op, path, err)
	}
	return nil
}
