package tier

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/cache"
)

// Null terminates a stack: it misses every read and drops every write.
type Null struct{}

// Name implements fast.Tier.
func (Null) Name() string { return "null" }

// Get implements fast.Tier.
func (Null) Get(context.Context, cache.Query) (any, bool, error) { return nil, false, nil }

// GetMany implements fast.Tier.
func (Null) GetMany(context.Context, []cache.Query) (map[cache.Query]any, error) {
	return map[cache.Query]any{}, nil
}

// Set implements fast.Tier.
func (Null) Set(context.Context, cache.Query, any) error { return nil }

// SetMany implements fast.Tier.
func (Null) SetMany(context.Context, map[cache.Query]any) error { return nil }

// Delete implements fast.Tier.
func (Null) Delete(context.Context, ...cache.Query) (int, error) { return 0, nil }
