// Package tier holds the cache tiers stacked by the orchestrator.
package tier

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/cache"
)

// Local is a plain map living for one request. It is not safe for
// concurrent use and is never shared between requests.
type Local struct {
	data map[cache.Query]any
}

// NewLocal creates an empty request-local tier.
func NewLocal() *Local {
	return &Local{data: make(map[cache.Query]any)}
}

// Name implements fast.Tier.
func (l *Local) Name() string { return "local" }

// Get implements fast.Tier.
func (l *Local) Get(_ context.Context, q cache.Query) (any, bool, error) {
	v, ok := l.data[q]
	return v, ok, nil
}

// GetMany implements fast.Tier.
func (l *Local) GetMany(_ context.Context, qs []cache.Query) (map[cache.Query]any, error) {
	out := make(map[cache.Query]any, len(qs))
	for _, q := range qs {
		if v, ok := l.data[q]; ok {
			out[q] = v
		}
	}
	return out, nil
}

// Set implements fast.Tier.
func (l *Local) Set(_ context.Context, q cache.Query, v any) error {
	l.data[q] = v
	return nil
}

// SetMany implements fast.Tier.
func (l *Local) SetMany(_ context.Context, entries map[cache.Query]any) error {
	for q, v := range entries {
		l.data[q] = v
	}
	return nil
}

// Delete implements fast.Tier.
func (l *Local) Delete(_ context.Context, qs ...cache.Query) (int, error) {
	n := 0
	for _, q := range qs {
		if _, ok := l.data[q]; ok {
			delete(l.data, q)
			n++
		}
	}
	return n, nil
}

// Len returns the number of cached entries.
func (l *Local) Len() int { return len(l.data) }
