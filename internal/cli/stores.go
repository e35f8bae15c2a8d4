package cli

import (
	"context"

	"github.com/spf13/cobra"

	apperrors "github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/store"
	filestore "github.com/mwessel/phigrid/pkg/store/file"
	memorystore "github.com/mwessel/phigrid/pkg/store/memory"
	mongostore "github.com/mwessel/phigrid/pkg/store/mongo"
	redisstore "github.com/mwessel/phigrid/pkg/store/redis"
)

// Store backend names.
const (
	backendFile   = "file"
	backendMemory = "memory"
	backendRedis  = "redis"
	backendMongo  = "mongo"
)

// storeFlags selects and configures a snapshot store backend.
//
// The file backend is the CLI default; redis and mongo exist for shared
// deployments where several instances (typically 'phigrid serve') see the
// same snapshots.
type storeFlags struct {
	backend   string
	dir       string
	redisAddr string
	redisDB   int
	mongoURI  string
	mongoDB   string
}

// register adds the store selection flags to cmd.
func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "store", backendFile, "snapshot store backend: file, memory, redis, or mongo")
	cmd.Flags().StringVar(&f.dir, "store-dir", "", "directory for the file backend (default: user config dir)")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "address for the redis backend")
	cmd.Flags().IntVar(&f.redisDB, "redis-db", 0, "database number for the redis backend")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "mongodb://localhost:27017", "connection URI for the mongo backend")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", "phigrid", "database name for the mongo backend")
}

// open constructs the selected backend.
func (f *storeFlags) open(ctx context.Context) (store.Store, error) {
	switch f.backend {
	case backendFile:
		return filestore.NewStore(f.dir)
	case backendMemory:
		return memorystore.NewStore(), nil
	case backendRedis:
		st, err := redisstore.NewStore(ctx, redisstore.Config{Addr: f.redisAddr, DB: f.redisDB})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "redis store")
		}
		return st, nil
	case backendMongo:
		st, err := mongostore.NewStore(ctx, mongostore.Config{URI: f.mongoURI, Database: f.mongoDB})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "mongo store")
		}
		return st, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown store backend %q", f.backend)
	}
}
