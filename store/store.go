// Package store defines the key-value port the dashboard persists through,
// along with its in-memory, file and redis implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/philtim/offsetclock/config"
)

// ErrNotFound is returned by Get when a key holds no value
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value map
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Open returns the store selected by the storage configuration
func Open(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Dir)
	case config.BackendRedis:
		return NewRedis(ctx, RedisOptions{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			Prefix:      cfg.Redis.Prefix,
			DialTimeout: 5 * time.Second,
			Attempts:    cfg.Redis.ConnectAttempts,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend '%s'", cfg.Backend)
	}
}
