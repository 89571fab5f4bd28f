package store

import (
	"context"
	"fmt"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/migrations"
)

// Storages aggregates every persistence backend used by the server.
type Storages struct {
	// Jobs is the authoritative job store.
	Jobs JobRepository

	// Cache is the optional Redis status cache; nil when not configured.
	Cache StatusCache
}

// NewStorages builds the persistence layer from configuration.
//
// Backend selection for the job store:
//   - cfg.DB.DSN set        -> PostgreSQL (migrations applied on startup)
//   - cfg.DB.SQLitePath set -> SQLite (migrations applied on startup)
//   - neither               -> in-memory store
//
// The Redis cache is attached only when cfg.Redis.Addr is set.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{}

	switch {
	case cfg.DB.DSN != "":
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting postgres job store: %w", err)
		}
		if err = migrations.Migrate(db.DB, migrations.DialectPostgres); err != nil {
			return nil, fmt.Errorf("error migrating postgres job store: %w", err)
		}
		storages.Jobs = NewPostgresJobRepository(db)

	case cfg.DB.SQLitePath != "":
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting sqlite job store: %w", err)
		}
		if err = migrations.Migrate(db.DB, migrations.DialectSQLite); err != nil {
			return nil, fmt.Errorf("error migrating sqlite job store: %w", err)
		}
		storages.Jobs = NewSQLiteJobRepository(db)

	default:
		log.Info().Msg("no database configured, using in-memory job store")
		storages.Jobs = NewMemoryJobRepository()
	}

	if cfg.Redis.Addr != "" {
		cache, err := NewRedisStatusCache(ctx, cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting redis status cache: %w", err)
		}
		storages.Cache = cache
	}

	return storages, nil
}

// Close releases every backend owned by the aggregate.
func (s *Storages) Close() error {
	var firstErr error

	if s.Jobs != nil {
		if err := s.Jobs.Close(); err != nil {
			firstErr = err
		}
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
