// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hw-quote/internal/config"
	"hw-quote/internal/domain"
	"hw-quote/internal/storage/file"
	"hw-quote/internal/storage/memory"
	"hw-quote/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// CatalogStorage persists the catalog as a whole: Load returns the full
// current state, Save replaces it entirely.
type CatalogStorage interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Save(ctx context.Context, catalog domain.Catalog) error
}

// Open builds the storage selected by cfg.StorageDriver. The returned close
// func releases the underlying resources and is never nil.
func Open(ctx context.Context, cfg config.Config) (CatalogStorage, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		slog.Info("Using file storage", "path", cfg.DataFile)
		return file.NewStorage(cfg.DataFile), func() {}, nil

	case config.DriverMemory:
		slog.Warn("Using in-memory storage, catalog is lost on restart")
		return memory.NewStorage(domain.EmptyCatalog()), func() {}, nil

	case config.DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.DBConn)
		if err != nil {
			return nil, nil, fmt.Errorf("parse database url: %w", err)
		}
		poolCfg.MaxConns = 10
		poolCfg.MinConns = 1
		poolCfg.MaxConnLifetime = time.Hour

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		slog.Info("Connected to PostgreSQL")
		return postgres.NewStorage(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
}
