// Package results provides storage for evaluated worksheet snapshots.
// Snapshots are stored as JSON files at <dir>/<name>.json.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pengelbrecht/mathx/internal/worksheet"
)

// Store manages snapshot files in a directory.
type Store struct {
	dir string
}

// ErrNotFound is returned when a snapshot doesn't exist.
var ErrNotFound = errors.New("snapshot not found")

// NewStore creates a store rooted at the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Write saves a snapshot under the given worksheet name.
// Overwrites any existing snapshot for that name.
func (s *Store) Write(name string, snap *worksheet.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// Read loads the snapshot for the given worksheet name.
// Returns ErrNotFound if no snapshot exists.
func (s *Store) Read(name string) (*worksheet.Snapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap worksheet.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// Exists checks if a snapshot exists for the given worksheet name.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Delete removes the snapshot for the given worksheet name.
// Does not return an error if the snapshot doesn't exist.
func (s *Store) Delete(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// List returns all worksheet names that have snapshots.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".json" {
			names = append(names, name[:len(name)-5])
		}
	}

	return names, nil
}

// path returns the file path for a worksheet's snapshot.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
