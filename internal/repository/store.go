package repository

import (
	"context"
	"fmt"

	"github.com/dafibh/sprout/sprout-backend/internal/config"
	"github.com/dafibh/sprout/sprout-backend/internal/domain"
	"github.com/dafibh/sprout/sprout-backend/internal/repository/memory"
	"github.com/dafibh/sprout/sprout-backend/internal/repository/postgres"
	"github.com/dafibh/sprout/sprout-backend/internal/repository/sqlite"
	"github.com/dafibh/sprout/sprout-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

// CloseFunc releases whatever the opened store holds
type CloseFunc func() error

func noopClose() error { return nil }

// Open builds the key/value store selected by cfg.StoreBackend, scoped to
// cfg.StoreNamespace.
func Open(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, CloseFunc, error) {
	var (
		store  domain.KeyValueStore
		closer CloseFunc = noopClose
	)

	switch cfg.StoreBackend {
	case config.StoreMemory:
		store = memory.NewStore()
	case config.StoreSQLite:
		s, err := sqlite.NewKVStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		store, closer = s, s.Close
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		store = postgres.NewKVStore(pool)
		closer = func() error {
			pool.Close()
			return nil
		}
	case config.StoreS3:
		s, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open s3 store: %w", err)
		}
		store = s
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	log.Info().
		Str("backend", cfg.StoreBackend).
		Str("namespace", cfg.StoreNamespace).
		Msg("Ledger store opened")

	return NewNamespacedStore(store, cfg.StoreNamespace), closer, nil
}

// NamespacedStore prefixes every key with a namespace so several ledgers can
// share one backend.
type NamespacedStore struct {
	inner     domain.KeyValueStore
	namespace string
}

// NewNamespacedStore wraps inner. An empty namespace leaves keys untouched.
func NewNamespacedStore(inner domain.KeyValueStore, namespace string) *NamespacedStore {
	return &NamespacedStore{inner: inner, namespace: namespace}
}

func (s *NamespacedStore) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + "/" + key
}

func (s *NamespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *NamespacedStore) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.key(key), data)
}
