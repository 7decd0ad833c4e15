// Package storage provides the durable key-value slot the watched list is
// persisted in. Several drivers share one small interface so popcorn can keep
// its list in a local file, an SQLite database, Postgres or Redis.
package storage

import (
	"context"
	"fmt"
	"regexp"

	"github.com/five82/popcorn/internal/config"
)

// KV is a durable key-value slot. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateKey rejects keys that cannot be used by every driver (the file
// driver turns keys into file names).
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open constructs the driver selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Storage) (KV, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return OpenFile(cfg.DataDir)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DataDir)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	case config.DriverRedis:
		return OpenRedis(ctx, cfg.DSN)
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	dup := make([]byte, len(b))
	copy(dup, b)
	return dup
}
