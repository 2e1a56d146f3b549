package storage

import (
	"database/sql"
	"encoding/json"
	"sort"

	_ "github.com/glebarez/go-sqlite"

	"github.com/san-kum/diffsim/internal/pde"
)

// Catalog indexes run metadata in a SQLite database so listings do not
// have to walk every run directory.
type Catalog struct {
	db *sql.DB
}

func OpenCatalog(filename string) (*Catalog, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, pde.IOError("storage.OpenCatalog", filename, err)
	}
	c := &Catalog{db: db}
	if err := c.createTable(); err != nil {
		db.Close()
		return nil, pde.IOError("storage.OpenCatalog", filename, err)
	}
	return c, nil
}

func (c *Catalog) createTable() error {
	_, err := c.db.Exec(`
		create table if not exists runs
		(
			id         varchar(20)  not null primary key,
			name       varchar(100) not null default '',
			equation   varchar(50)  not null,
			dimension  integer      not null,
			created_at integer      not null,
			metadata   text         not null
		);
	`)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(`
		create index if not exists runs_created_at_index
			on runs (created_at);
	`)
	return err
}

func (c *Catalog) Insert(meta RunMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return pde.IOError("storage.Catalog.Insert", meta.ID, err)
	}
	_, err = c.db.Exec(
		`insert or replace into runs (id, name, equation, dimension, created_at, metadata)
		 values (?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Name, meta.Equation, meta.Dimension, meta.Timestamp.UnixNano(), string(data))
	if err != nil {
		return pde.IOError("storage.Catalog.Insert", meta.ID, err)
	}
	return nil
}

func (c *Catalog) List() ([]RunMetadata, error) {
	rows, err := c.db.Query(`select metadata from runs order by created_at desc, id desc`)
	if err != nil {
		return nil, pde.IOError("storage.Catalog.List", "runs", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, pde.IOError("storage.Catalog.List", "runs", err)
		}
		var meta RunMetadata
		if err := json.Unmarshal([]byte(data), &meta); err != nil {
			return nil, pde.IOError("storage.Catalog.List", "runs", err)
		}
		runs = append(runs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, pde.IOError("storage.Catalog.List", "runs", err)
	}
	return runs, nil
}

func (c *Catalog) Delete(id string) error {
	if _, err := c.db.Exec(`delete from runs where id = ?`, id); err != nil {
		return pde.IOError("storage.Catalog.Delete", id, err)
	}
	return nil
}

func (c *Catalog) Close() error { return c.db.Close() }

func sortNewestFirst(runs []RunMetadata) {
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.After(runs[j].Timestamp)
		}
		return runs[i].ID > runs[j].ID
	})
}

