// Package memory provides an in-memory snapshot store for development
// and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mwessel/phigrid/pkg/store"
)

// Store is a thread-safe in-memory snapshot store.
type Store struct {
	mu    sync.RWMutex
	snaps map[string]store.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{snaps: make(map[string]store.Record)}
}

// Save stores a snapshot, overwriting any previous one with the same name.
func (s *Store) Save(ctx context.Context, name string, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[name] = rec
	return nil
}

// Get retrieves a snapshot by name.
func (s *Store) Get(ctx context.Context, name string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.snaps[name]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

// List returns all snapshot infos, newest first.
func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]store.Info, 0, len(s.snaps))
	for _, rec := range s.snaps {
		infos = append(infos, rec.Info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})
	return infos, nil
}

// Delete removes a snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[name]; !ok {
		return store.ErrNotFound
	}
	delete(s.snaps, name)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close(ctx context.Context) error { return nil }
