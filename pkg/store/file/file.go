// Package file provides a file-based snapshot store for CLI usage.
//
// Each snapshot is stored as one JSON file named <name>.json in the store
// directory (default: <user data dir>/phigrid/snapshots). Names are
// validated before use, so they are safe as file names.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/store"
)

const snapshotExt = ".json"

// Store persists snapshots as JSON files in a directory.
type Store struct {
	dir string
}

// NewStore creates a file-based store in dir, creating it if needed.
// An empty dir uses [DefaultDir].
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// DefaultDir returns <user config dir>/phigrid/snapshots.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "phigrid", "snapshots"), nil
}

// Dir returns the directory snapshots are stored in.
func (s *Store) Dir() string { return s.dir }

// Save writes the record to <name>.json, overwriting any previous file.
func (s *Store) Save(ctx context.Context, name string, rec store.Record) error {
	if err := errors.ValidateSnapshotName(name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	return nil
}

// Get reads the record stored under name.
func (s *Store) Get(ctx context.Context, name string) (store.Record, error) {
	if err := errors.ValidateSnapshotName(name); err != nil {
		return store.Record{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return store.Record{}, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return rec, nil
}

// List reads the Info of every snapshot file, newest first.
// Unreadable or malformed files are skipped rather than failing the whole
// listing.
func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir %s: %w", s.dir, err)
	}

	var infos []store.Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), snapshotExt)
		rec, err := s.Get(ctx, name)
		if err != nil {
			continue
		}
		infos = append(infos, rec.Info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})
	return infos, nil
}

// Delete removes the snapshot file for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSnapshotName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return store.ErrNotFound
	}
	return err
}

// Close is a no-op for the file store.
func (s *Store) Close(ctx context.Context) error { return nil }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+snapshotExt)
}
