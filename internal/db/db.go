package db

import (
	"context"
	"time"
)

// Store is the key/value facade backing the shared cache tier.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVItem is one key/value pair for a multi-key write.
type KVItem struct {
	Key   string
	Value []byte
}

// KVStore provides plain key/value operations, single and batched.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// MGet returns only the keys that exist.
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	MSet(ctx context.Context, items []KVItem) error
	// MSetWithTTL writes items and sets the same expiry on each of them.
	MSetWithTTL(ctx context.Context, items []KVItem, ttl time.Duration) error
	// Del removes keys and reports how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)
}
