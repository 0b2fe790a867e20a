package cache

import (
	"context"
	"log/slog"

	"cineseek/pkg/db"
)

// Cacher defines the caching interface used by the request layer.
type Cacher interface {
	GetCache(ctx context.Context, key string) ([]byte, bool)
	SetCache(ctx context.Context, key string, val []byte) error
}

// SQLiteCache implements Cacher on top of pkg/db.
type SQLiteCache struct {
	db *db.DB
}

// NewSQLiteCache creates a new cache.
func NewSQLiteCache(d *db.DB) *SQLiteCache {
	return &SQLiteCache{db: d}
}

func (c *SQLiteCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	var val []byte
	err := c.db.QueryRowContext(ctx, "SELECT value FROM cache WHERE key = ?", key).Scan(&val)
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *SQLiteCache) SetCache(ctx context.Context, key string, val []byte) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO cache (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, created_at = CURRENT_TIMESTAMP",
		key, val)
	if err != nil {
		slog.Debug("cache write failed", "key", key, "error", err)
	}
	return err
}

// Noop is a Cacher that never stores anything. Used when the transport
// cache is disabled: every upstream call goes to the network.
type Noop struct{}

func (Noop) GetCache(ctx context.Context, key string) ([]byte, bool)    { return nil, false }
func (Noop) SetCache(ctx context.Context, key string, val []byte) error { return nil }
