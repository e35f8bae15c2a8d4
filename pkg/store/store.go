// Package store persists named snapshots of generated complexes.
//
// This package defines the storage interface, with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage (default)
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage for shared deployments
//
// Snapshots let users keep a generated topology around for later
// comparison: the random architecture is not reproducible, so "the random
// graph from yesterday" only exists if it was saved.
//
// All backends serialize through [graphio.Snapshot], so a snapshot written
// by one backend can be exported and imported into another.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Info describes a stored snapshot without loading its graph.
type Info struct {
	Name         string    `json:"name" bson:"name"`
	Architecture string    `json:"architecture" bson:"architecture"`
	Phi          float64   `json:"phi" bson:"phi"`
	Elements     int       `json:"elements" bson:"elements"`
	GeneratedAt  time.Time `json:"generated_at" bson:"generated_at"`
	SavedAt      time.Time `json:"saved_at" bson:"saved_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save stores a snapshot under name, overwriting any previous one.
	Save(ctx context.Context, name string, snap Record) error

	// Get retrieves a snapshot by name.
	// Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, name string) (Record, error)

	// List returns Info for all stored snapshots, newest first.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a snapshot.
	// Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources. Safe on all backends.
	Close(ctx context.Context) error
}

// Record is what a backend persists: the listing info plus the full
// serialized complex.
type Record struct {
	Info Info   `json:"info" bson:"info"`
	Data []byte `json:"data" bson:"data"` // graphio JSON snapshot
}
