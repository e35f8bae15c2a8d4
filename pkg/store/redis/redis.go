// Package redis provides a Redis-backed snapshot store for shared
// deployments where several simulator instances see the same snapshots.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/mwessel/phigrid/pkg/store"
)

const (
	// keyPrefix namespaces snapshot keys.
	keyPrefix = "phigrid:snapshot:"
	// indexKey is the set of stored snapshot names.
	indexKey = "phigrid:snapshots"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string // host:port (default "localhost:6379")
	Password string
	DB       int
}

// Store persists snapshots in Redis.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Store{client: client}, nil
}

// Save stores the record under its name and adds the name to the index.
func (s *Store) Save(ctx context.Context, name string, rec store.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+name, data, 0)
	pipe.SAdd(ctx, indexKey, name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Get retrieves a snapshot by name.
func (s *Store) Get(ctx context.Context, name string) (store.Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("get snapshot %s: %w", name, err)
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return store.Record{}, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return rec, nil
}

// List loads the Info of every indexed snapshot, newest first.
// Index entries whose record has disappeared are skipped.
func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	names, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	infos := make([]store.Info, 0, len(names))
	for _, name := range names {
		rec, err := s.Get(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, rec.Info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})
	return infos, nil
}

// Delete removes a snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	deleted, err := s.client.Del(ctx, keyPrefix+name).Result()
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if err := s.client.SRem(ctx, indexKey, name).Err(); err != nil {
		return fmt.Errorf("unindex snapshot %s: %w", name, err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}
