package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/parametriclab/nodeflow/pkg/errors"
)

// FileStore keeps one JSON file per graph in a directory, named
// "<graph>.json". Files are human-readable and safe to version or copy
// around, which suits CLI workflows.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in dir, creating it if needed.
// An empty dir falls back to "nodeflow/graphs" under the user config
// directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "nodeflow", "graphs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string { return s.dir }

// Get retrieves a record by name.
func (s *FileStore) Get(ctx context.Context, name string) (Record, error) {
	path, err := s.path(name)
	if err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return rec, nil
}

// Put stores or replaces a record.
func (s *FileStore) Put(ctx context.Context, rec Record) error {
	path, err := s.path(rec.Name)
	if err != nil {
		return err
	}

	if prev, err := s.Get(ctx, rec.Name); err == nil {
		stamp(&rec, &prev)
	} else {
		stamp(&rec, nil)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// List returns the stored names in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// path converts a graph name to its file path. Names are validated so a
// crafted name can never escape the storage directory.
func (s *FileStore) path(name string) (string, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
