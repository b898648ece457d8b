package tier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/mediadex/internal/db"
	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/repository/codec"
)

// kvStore is the subset of db.KVStore the shared tier uses.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	MSet(ctx context.Context, items []db.KVItem) error
	MSetWithTTL(ctx context.Context, items []db.KVItem, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

// Shared is the durable tier: values live in the external key/value store,
// encoded per entity kind, and are visible to every worker.
type Shared struct {
	store  kvStore
	prefix string
	ttl    time.Duration
}

// NewShared creates a shared tier. Keys are "<prefix><kind>_<key>".
// A zero ttl stores entries without expiry.
func NewShared(store kvStore, prefix string, ttl time.Duration) *Shared {
	return &Shared{store: store, prefix: prefix, ttl: ttl}
}

// Name implements fast.Tier.
func (s *Shared) Name() string { return "shared" }

func (s *Shared) key(q cache.Query) string {
	return s.prefix + q.String()
}

// Get implements fast.Tier. Undecodable bytes are an error, not a miss.
func (s *Shared) Get(ctx context.Context, q cache.Query) (any, bool, error) {
	data, err := s.store.Get(ctx, s.key(q))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", q, err)
	}
	v, err := codec.Decode(q.Kind, data)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetMany implements fast.Tier with a single MGET.
func (s *Shared) GetMany(ctx context.Context, qs []cache.Query) (map[cache.Query]any, error) {
	out := make(map[cache.Query]any, len(qs))
	if len(qs) == 0 {
		return out, nil
	}

	keys := make([]string, len(qs))
	byKey := make(map[string]cache.Query, len(qs))
	for i, q := range qs {
		keys[i] = s.key(q)
		byKey[keys[i]] = q
	}

	raw, err := s.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get many: %w", err)
	}
	for k, data := range raw {
		q := byKey[k]
		v, err := codec.Decode(q.Kind, data)
		if err != nil {
			return nil, err
		}
		out[q] = v
	}
	return out, nil
}

// Set implements fast.Tier.
func (s *Shared) Set(ctx context.Context, q cache.Query, v any) error {
	data, err := codec.Encode(q.Kind, v)
	if err != nil {
		return err
	}
	if s.ttl > 0 {
		err = s.store.SetWithTTL(ctx, s.key(q), data, s.ttl)
	} else {
		err = s.store.Set(ctx, s.key(q), data)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", q, err)
	}
	return nil
}

// SetMany implements fast.Tier with a single multi-key write.
func (s *Shared) SetMany(ctx context.Context, entries map[cache.Query]any) error {
	if len(entries) == 0 {
		return nil
	}

	items := make([]db.KVItem, 0, len(entries))
	for q, v := range entries {
		data, err := codec.Encode(q.Kind, v)
		if err != nil {
			return err
		}
		items = append(items, db.KVItem{Key: s.key(q), Value: data})
	}

	var err error
	if s.ttl > 0 {
		err = s.store.MSetWithTTL(ctx, items, s.ttl)
	} else {
		err = s.store.MSet(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("set many: %w", err)
	}
	return nil
}

// Delete implements fast.Tier.
func (s *Shared) Delete(ctx context.Context, qs ...cache.Query) (int, error) {
	if len(qs) == 0 {
		return 0, nil
	}
	keys := make([]string, len(qs))
	for i, q := range qs {
		keys[i] = s.key(q)
	}
	n, err := s.store.Del(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return int(n), nil
}
