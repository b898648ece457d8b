package fast

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// Command names, used as metric labels.
const (
	NameFullRefill                = "full_refill"
	NameRefreshMedia              = "refresh_media"
	NameDeleteMedium              = "delete_medium"
	NameRefreshSearchableTagNames = "refresh_searchable_tag_names"
)

// FullRefill rebuilds every entity kind from the relational source.
// It is the answer to any change whose reach cannot be bounded cheaply.
type FullRefill struct {
	m Materializer
}

// NewFullRefill creates a FullRefill command.
func NewFullRefill(m Materializer) *FullRefill { return &FullRefill{m: m} }

// Name implements Command.
func (c *FullRefill) Name() string { return NameFullRefill }

// Start materializes every medium and the searchable tag names.
func (c *FullRefill) Start(ctx context.Context) (Step, error) {
	docs, err := c.m.All(ctx)
	if err != nil {
		return nil, err
	}
	names, err := c.m.SearchableNames(ctx)
	if err != nil {
		return nil, err
	}

	entries := make(map[cache.Query]any, 3*len(docs)+2)
	tinies := make([]medium.Tiny, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		tiny := d.ToTiny()
		entries[cache.Document(d.ID)] = *d
		entries[cache.Tiny(d.ID)] = tiny
		entries[cache.Rating(d.Hash)] = d.Rating
		tinies = append(tinies, tiny)
	}
	entries[cache.AllTiny()] = tinies
	entries[cache.Searchable()] = names

	return StepFunc(func(ctx context.Context, t Tier) error {
		return t.SetMany(ctx, entries)
	}), nil
}

// Target is a medium to refresh. OldHash is the content hash the medium had
// before the change; it may be empty when the hash cannot have changed.
type Target struct {
	ID      int64
	OldHash string
}

// RefreshMedia recomputes the documents of a few media.
type RefreshMedia struct {
	m       Materializer
	targets []Target
}

// NewRefreshMedia creates a RefreshMedia command.
func NewRefreshMedia(m Materializer, targets ...Target) *RefreshMedia {
	return &RefreshMedia{m: m, targets: targets}
}

// RefreshIDs is RefreshMedia for media whose hash did not change.
func RefreshIDs(m Materializer, ids ...int64) *RefreshMedia {
	targets := make([]Target, len(ids))
	for i, id := range ids {
		targets[i] = Target{ID: id}
	}
	return NewRefreshMedia(m, targets...)
}

// Name implements Command.
func (c *RefreshMedia) Name() string { return NameRefreshMedia }

// Start materializes the targets. A target the source does not know fails
// the command with domain.ErrNotFound.
func (c *RefreshMedia) Start(ctx context.Context) (Step, error) {
	ids := make([]int64, 0, len(c.targets))
	seen := make(map[int64]struct{}, len(c.targets))
	var stale []cache.Query
	for _, tg := range c.targets {
		if tg.OldHash != "" {
			stale = append(stale, cache.Rating(tg.OldHash))
		}
		if _, ok := seen[tg.ID]; ok {
			continue
		}
		seen[tg.ID] = struct{}{}
		ids = append(ids, tg.ID)
	}

	docs, err := c.m.Many(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		delete(seen, docs[i].ID)
	}
	if len(seen) > 0 {
		return nil, fmt.Errorf("media %s: %w", joinIDs(seen), domain.ErrNotFound)
	}

	entries := make(map[cache.Query]any, 3*len(docs))
	tinies := make([]medium.Tiny, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		tiny := d.ToTiny()
		entries[cache.Document(d.ID)] = *d
		entries[cache.Tiny(d.ID)] = tiny
		entries[cache.Rating(d.Hash)] = d.Rating
		tinies = append(tinies, tiny)
	}

	return StepFunc(func(ctx context.Context, t Tier) error {
		if len(stale) > 0 {
			if _, err := t.Delete(ctx, stale...); err != nil {
				return fmt.Errorf("delete stale ratings: %w", err)
			}
		}
		if err := t.SetMany(ctx, entries); err != nil {
			return fmt.Errorf("set documents: %w", err)
		}
		return modifyAllTiny(ctx, t, func(current []medium.Tiny) []medium.Tiny {
			return spliceTiny(current, tinies)
		})
	}), nil
}

// DeleteMedium removes every trace of one medium.
type DeleteMedium struct {
	id   int64
	hash string
}

// NewDeleteMedium creates a DeleteMedium command.
func NewDeleteMedium(id int64, hash string) *DeleteMedium {
	return &DeleteMedium{id: id, hash: hash}
}

// Name implements Command.
func (c *DeleteMedium) Name() string { return NameDeleteMedium }

// Start has nothing to compute.
func (c *DeleteMedium) Start(context.Context) (Step, error) {
	return StepFunc(func(ctx context.Context, t Tier) error {
		err := modifyAllTiny(ctx, t, func(current []medium.Tiny) []medium.Tiny {
			return withoutID(current, c.id)
		})
		if err != nil {
			return err
		}
		if _, err := t.Delete(ctx, cache.Tiny(c.id), cache.Document(c.id), cache.Rating(c.hash)); err != nil {
			return fmt.Errorf("delete medium %d: %w", c.id, err)
		}
		return nil
	}), nil
}

// RefreshSearchableTagNames reloads the set of tag and alias names.
type RefreshSearchableTagNames struct {
	m Materializer
}

// NewRefreshSearchableTagNames creates a RefreshSearchableTagNames command.
func NewRefreshSearchableTagNames(m Materializer) *RefreshSearchableTagNames {
	return &RefreshSearchableTagNames{m: m}
}

// Name implements Command.
func (c *RefreshSearchableTagNames) Name() string { return NameRefreshSearchableTagNames }

// Start queries the names.
func (c *RefreshSearchableTagNames) Start(ctx context.Context) (Step, error) {
	names, err := c.m.SearchableNames(ctx)
	if err != nil {
		return nil, err
	}
	return StepFunc(func(ctx context.Context, t Tier) error {
		return t.Set(ctx, cache.Searchable(), names)
	}), nil
}

func joinIDs(ids map[int64]struct{}) string {
	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	slices.Sort(sorted)

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
