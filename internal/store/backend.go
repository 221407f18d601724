package store

import (
	"context"
	"fmt"

	"github.com/abhisek/lessonplay/internal/config"
)

// Backend bundles the KV and event log of one opened persistence backend.
type Backend struct {
	Name   string
	KV     KV
	Events EventRepo
	close  func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the backend selected by cfg.Backend.
func OpenBackend(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			dataDir, err := config.DefaultDataDir()
			if err != nil {
				return nil, err
			}
			if path, err = DefaultDBPath(dataDir); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: config.BackendSQLite, KV: s, Events: s.EventRepo(), close: s.Close}, nil

	case config.BackendPostgres:
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: config.BackendPostgres, KV: s, Events: s.EventRepo(), close: s.Close}, nil

	case config.BackendRedis:
		r, err := OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: config.BackendRedis, KV: r, Events: r.EventRepo(), close: r.Close}, nil

	case config.BackendMemory:
		m := NewMemoryStore()
		return &Backend{Name: config.BackendMemory, KV: m, Events: m.EventRepo()}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}
