package materialize

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// closure walks the implication graph breadth-first from seed and collects
// every alias and implied tag name it reaches. Each tag id is expanded at
// most once, so cycles terminate.
func closure(ctx context.Context, l lookup, seed []int64) (medium.TagSet, error) {
	names := make(medium.TagSet)
	visited := make(map[int64]struct{}, len(seed))

	batch := make([]int64, 0, len(seed))
	for _, id := range seed {
		if _, ok := visited[id]; !ok {
			visited[id] = struct{}{}
			batch = append(batch, id)
		}
	}

	for len(batch) > 0 {
		aliases, err := l.aliasNames(ctx, batch)
		if err != nil {
			return nil, err
		}
		names.Add(aliases...)

		implied, err := l.implied(ctx, batch)
		if err != nil {
			return nil, err
		}

		next := batch[:0:0]
		for _, t := range implied {
			names.Add(t.Name)
			if _, ok := visited[t.ID]; ok {
				continue
			}
			visited[t.ID] = struct{}{}
			next = append(next, t.ID)
		}
		batch = next
	}
	return names, nil
}

// build flattens one record into a full document.
func build(ctx context.Context, l lookup, rec *medium.Record) (medium.Full, error) {
	innate := make(medium.TagSet, len(rec.Tags))
	for _, t := range rec.Tags {
		innate.Add(t.Name)
	}

	extra, err := closure(ctx, l, rec.TagIDs())
	if err != nil {
		return medium.Full{}, err
	}

	return medium.Full{
		Tiny: medium.Tiny{
			ID:             rec.ID,
			Hash:           rec.Hash,
			Rating:         rec.Rating,
			Width:          rec.Width,
			Height:         rec.Height,
			Filesize:       rec.Filesize,
			InsertDate:     rec.InsertDate,
			InnateTags:     innate,
			SearchableTags: innate.Union(extra),
			AbsentTags:     medium.NewTagSet(rec.AbsentTags...),
		},
		MimeType:      rec.MimeType,
		TinyThumbnail: rec.TinyThumbnail,
	}, nil
}
