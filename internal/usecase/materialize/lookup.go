package materialize

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/tag"
)

// lookup answers the two questions the closure asks about a batch of tag ids.
type lookup interface {
	aliasNames(ctx context.Context, ids []int64) ([]string, error)
	implied(ctx context.Context, ids []int64) ([]tag.Tag, error)
}

// bulkLookup serves everything from tables loaded once.
type bulkLookup struct {
	aliases map[int64][]string
	implies map[int64][]tag.Tag
}

func newBulkLookup(tags []tag.Tag, aliases []tag.Alias, implications []tag.Implication) *bulkLookup {
	names := make(map[int64]string, len(tags))
	for _, t := range tags {
		names[t.ID] = t.Name
	}

	l := &bulkLookup{
		aliases: make(map[int64][]string),
		implies: make(map[int64][]tag.Tag),
	}
	for _, a := range aliases {
		l.aliases[a.TagID] = append(l.aliases[a.TagID], a.Name)
	}
	for _, imp := range implications {
		name, ok := names[imp.To]
		if !ok {
			continue
		}
		l.implies[imp.From] = append(l.implies[imp.From], tag.Tag{ID: imp.To, Name: name})
	}
	return l
}

func (l *bulkLookup) aliasNames(_ context.Context, ids []int64) ([]string, error) {
	var out []string
	for _, id := range ids {
		out = append(out, l.aliases[id]...)
	}
	return out, nil
}

func (l *bulkLookup) implied(_ context.Context, ids []int64) ([]tag.Tag, error) {
	var out []tag.Tag
	for _, id := range ids {
		out = append(out, l.implies[id]...)
	}
	return out, nil
}

// scopedLookup queries only the part of the graph a closure actually reaches.
// Answers are memoized, so media sharing tags cost one query per tag.
type scopedLookup struct {
	src     Source
	aliases map[int64][]string
	implies map[int64][]tag.Tag
}

func newScopedLookup(src Source) *scopedLookup {
	return &scopedLookup{
		src:     src,
		aliases: make(map[int64][]string),
		implies: make(map[int64][]tag.Tag),
	}
}

func (l *scopedLookup) missing(ids []int64, known func(int64) bool) []int64 {
	var out []int64
	for _, id := range ids {
		if !known(id) {
			out = append(out, id)
		}
	}
	return out
}

func (l *scopedLookup) aliasNames(ctx context.Context, ids []int64) ([]string, error) {
	if todo := l.missing(ids, func(id int64) bool { _, ok := l.aliases[id]; return ok }); len(todo) > 0 {
		found, err := l.src.AliasesOf(ctx, todo)
		if err != nil {
			return nil, sourceError("aliases", err)
		}
		for _, id := range todo {
			l.aliases[id] = nil
		}
		for _, a := range found {
			l.aliases[a.TagID] = append(l.aliases[a.TagID], a.Name)
		}
	}

	var out []string
	for _, id := range ids {
		out = append(out, l.aliases[id]...)
	}
	return out, nil
}

func (l *scopedLookup) implied(ctx context.Context, ids []int64) ([]tag.Tag, error) {
	if todo := l.missing(ids, func(id int64) bool { _, ok := l.implies[id]; return ok }); len(todo) > 0 {
		found, err := l.src.ImpliedBy(ctx, todo)
		if err != nil {
			return nil, sourceError("implications", err)
		}
		for _, id := range todo {
			l.implies[id] = nil
		}
		for _, e := range found {
			l.implies[e.From] = append(l.implies[e.From], e.To)
		}
	}

	var out []tag.Tag
	for _, id := range ids {
		out = append(out, l.implies[id]...)
	}
	return out, nil
}
