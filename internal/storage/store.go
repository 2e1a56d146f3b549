package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/export"
	"github.com/san-kum/diffsim/internal/pde"
)

const metadataFile = "metadata.json"

// ErrNotFound is returned when no run matches an id.
var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	catalog *Catalog
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the data directory and opens the run catalog.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return pde.IOError("storage.Init", s.baseDir, err)
	}
	c, err := OpenCatalog(filepath.Join(s.baseDir, "catalog.db"))
	if err != nil {
		return err
	}
	s.catalog = c
	return nil
}

func (s *Store) Close() error {
	if s.catalog == nil {
		return nil
	}
	err := s.catalog.Close()
	s.catalog = nil
	return err
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Equation     string             `json:"equation"`
	Dimension    int                `json:"dimension"`
	Shape        []int              `json:"shape"`
	Timestamp    time.Time          `json:"timestamp"`
	Dt           float64            `json:"dt"`
	Steps        int                `json:"steps"`
	StepConstant float64            `json:"step_constant"`
	Thickness    int                `json:"thickness"`
	Artifact     string             `json:"artifact"`
	Elapsed      float64            `json:"elapsed_seconds"`
	Metrics      map[string]float64 `json:"metrics"`
	Config       *config.Config     `json:"config"`
}

// Save writes the artifact and metadata of a finished run into a fresh
// run directory and indexes it. name labels the run, usually the preset.
func (s *Store) Save(name string, cfg *config.Config, result *experiment.Result) (string, error) {
	if result == nil || result.Field == nil {
		return "", pde.Statef("storage.Save", "no result to save")
	}
	runID := xid.New().String()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", pde.IOError("storage.Save", runDir, err)
	}

	artifact := "field" + export.Ext(result.Field.Dim())
	if err := export.Write(result.Field, result.Time, result.Space, filepath.Join(runDir, artifact)); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Equation:     cfg.Equation,
		Dimension:    result.Field.Dim(),
		Shape:        result.Field.Shape(),
		Timestamp:    time.Now().UTC(),
		Dt:           result.Time.Dt(),
		Steps:        result.Time.Steps(),
		StepConstant: cfg.Solver.StepConstant,
		Thickness:    cfg.Boundary.Thickness,
		Artifact:     artifact,
		Elapsed:      result.Elapsed.Seconds(),
		Metrics:      result.Metrics,
		Config:       cfg,
	}

	metaPath := filepath.Join(runDir, metadataFile)
	err := export.WriteAtomic(metaPath, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	if s.catalog != nil {
		if err := s.catalog.Insert(meta); err != nil {
			os.RemoveAll(runDir)
			return "", err
		}
	}
	return runID, nil
}

// List returns all runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	if s.catalog != nil {
		return s.catalog.List()
	}
	return s.scan()
}

func (s *Store) scan() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, pde.IOError("storage.List", s.baseDir, err)
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.readMetadata(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sortNewestFirst(runs)
	return runs, nil
}

// Resolve maps "latest", a full id or a unique id prefix to a run id.
func (s *Store) Resolve(ref string) (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if ref == "latest" {
		if len(runs) == 0 {
			return "", ErrNotFound
		}
		return runs[0].ID, nil
	}
	match := ""
	for _, r := range runs {
		if r.ID == ref {
			return ref, nil
		}
		if ref != "" && strings.HasPrefix(r.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous run id %q", ref)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	id, err := s.Resolve(runID)
	if err != nil {
		return nil, err
	}
	return s.readMetadata(id)
}

func (s *Store) readMetadata(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, pde.IOError("storage.Load", metaPath, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, pde.IOError("storage.Load", metaPath, err)
	}

	return &meta, nil
}

// ArtifactPath returns the location of the run's result file.
func (s *Store) ArtifactPath(meta *RunMetadata) string {
	return filepath.Join(s.baseDir, meta.ID, meta.Artifact)
}

// LoadResult reads the field of a stored run back.
func (s *Store) LoadResult(runID string) (*RunMetadata, *export.Dataset, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	d, err := export.Read(s.ArtifactPath(meta))
	if err != nil {
		return nil, nil, err
	}
	return meta, d, nil
}

// Delete removes a run directory and its catalog entry.
func (s *Store) Delete(runID string) error {
	id, err := s.Resolve(runID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.baseDir, id)); err != nil {
		return pde.IOError("storage.Delete", id, err)
	}
	if s.catalog != nil {
		return s.catalog.Delete(id)
	}
	return nil
}
