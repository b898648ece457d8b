package fast

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// modifyAllTiny rewrites the tiny-document aggregate of one tier.
// A tier without the aggregate is left alone. An empty list still counts as
// present. Concurrent writers race with last-writer-wins.
func modifyAllTiny(ctx context.Context, t Tier, fn func([]medium.Tiny) []medium.Tiny) error {
	q := cache.AllTiny()
	v, ok, err := t.Get(ctx, q)
	if err != nil {
		return fmt.Errorf("read %s: %w", q, err)
	}
	if !ok {
		return nil
	}

	docs, ok := v.([]medium.Tiny)
	if !ok {
		return fmt.Errorf("%s holds %T: %w", q, v, domain.ErrWrongEntityType)
	}

	// tiers may hand out their own backing array
	current := make([]medium.Tiny, len(docs))
	copy(current, docs)

	if err := t.Set(ctx, q, fn(current)); err != nil {
		return fmt.Errorf("write %s: %w", q, err)
	}
	return nil
}

// spliceTiny replaces documents with a matching id in place and appends the rest.
func spliceTiny(current, refreshed []medium.Tiny) []medium.Tiny {
	byID := make(map[int64]int, len(refreshed))
	for i := range refreshed {
		byID[refreshed[i].ID] = i
	}

	out := make([]medium.Tiny, 0, len(current)+len(refreshed))
	for i := range current {
		if j, ok := byID[current[i].ID]; ok {
			out = append(out, refreshed[j])
			delete(byID, current[i].ID)
			continue
		}
		out = append(out, current[i])
	}
	for i := range refreshed {
		if _, ok := byID[refreshed[i].ID]; ok {
			out = append(out, refreshed[i])
		}
	}
	return out
}

// withoutID drops the document with id.
func withoutID(current []medium.Tiny, id int64) []medium.Tiny {
	out := current[:0]
	for i := range current {
		if current[i].ID != id {
			out = append(out, current[i])
		}
	}
	return out
}
