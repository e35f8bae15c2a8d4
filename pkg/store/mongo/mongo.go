// Package mongo provides a MongoDB-backed snapshot store.
//
// Each snapshot is one document in the snapshots collection, keyed by
// name. Listing projects only the info field, so large graphs are not
// transferred for overviews.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mwessel/phigrid/pkg/store"
)

const collectionName = "snapshots"

// Config holds MongoDB connection settings.
type Config struct {
	URI      string // mongodb:// connection string (default "mongodb://localhost:27017")
	Database string // database name (default "phigrid")
}

// Store persists snapshots in a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// document is the stored form of a snapshot record.
type document struct {
	ID     string       `bson:"_id"`
	Record store.Record `bson:"record"`
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "phigrid"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(collectionName),
	}, nil
}

// Save upserts the record under its name.
func (s *Store) Save(ctx context.Context, name string, rec store.Record) error {
	doc := document{ID: name, Record: rec}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Get retrieves a snapshot by name.
func (s *Store) Get(ctx context.Context, name string) (store.Record, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("get snapshot %s: %w", name, err)
	}
	return doc.Record, nil
}

// List returns the Info of every stored snapshot, newest first.
func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"record.info": 1}).
		SetSort(bson.M{"record.info.saved_at": -1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cur.Close(ctx)

	var infos []store.Info
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode snapshot listing: %w", err)
		}
		infos = append(infos, doc.Record.Info)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return infos, nil
}

// Delete removes a snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close disconnects the MongoDB client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
