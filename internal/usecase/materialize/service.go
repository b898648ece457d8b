package materialize

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// Service flattens media into documents with their tag closure resolved.
type Service struct {
	src    Source
	logger *zap.Logger
}

// New creates a materializer over src.
func New(src Source, logger *zap.Logger) *Service {
	return &Service{src: src, logger: logger}
}

// All materializes every medium, loading the whole tag graph once.
func (s *Service) All(ctx context.Context) ([]medium.Full, error) {
	start := time.Now()

	records, err := s.src.AllMedia(ctx)
	if err != nil {
		return nil, sourceError("all media", err)
	}
	tags, err := s.src.AllTags(ctx)
	if err != nil {
		return nil, sourceError("all tags", err)
	}
	aliases, err := s.src.AllAliases(ctx)
	if err != nil {
		return nil, sourceError("all aliases", err)
	}
	implications, err := s.src.AllImplications(ctx)
	if err != nil {
		return nil, sourceError("all implications", err)
	}

	docs, err := s.buildAll(ctx, newBulkLookup(tags, aliases, implications), records)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("materialized all media",
		zap.Int("media", len(docs)),
		zap.Int("tags", len(tags)),
		zap.Duration("took", time.Since(start)),
	)
	return docs, nil
}

// Many materializes the media among ids that exist, ordered by id.
// Only the part of the tag graph reachable from their tags is queried.
func (s *Service) Many(ctx context.Context, ids []int64) ([]medium.Full, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records, err := s.src.MediaByIDs(ctx, ids)
	if err != nil {
		return nil, sourceError("media by ids", err)
	}
	slices.SortFunc(records, func(a, b medium.Record) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return s.buildAll(ctx, newScopedLookup(s.src), records)
}

// SearchableNames returns every tag name and alias name, sorted.
func (s *Service) SearchableNames(ctx context.Context) ([]string, error) {
	names, err := s.src.SearchableNames(ctx)
	if err != nil {
		return nil, sourceError("searchable names", err)
	}
	return medium.NewTagSet(names...).Sorted(), nil
}

func (s *Service) buildAll(ctx context.Context, l lookup, records []medium.Record) ([]medium.Full, error) {
	docs := make([]medium.Full, 0, len(records))
	for i := range records {
		doc, err := build(ctx, l, &records[i])
		if err != nil {
			return nil, fmt.Errorf("materialize medium %d: %w", records[i].ID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// sourceError classifies a Source failure. A row the source returned but
// could not convert is a data error and keeps its own identity; anything
// else means the source could not be read.
func sourceError(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidRating) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewSourceError(op, err)
}
