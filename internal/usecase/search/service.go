package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/search/page"
	"github.com/kailas-cloud/mediadex/internal/domain/search/term"
	"github.com/kailas-cloud/mediadex/internal/metrics"
)

// Service filters, sorts and pages the tiny document corpus.
type Service struct {
	parser      *term.Parser
	bounds      page.Bounds
	defaultSize int
	logger      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBounds sets the page size bounds and the size used when none is requested.
func WithBounds(b page.Bounds, defaultSize int) Option {
	return func(s *Service) {
		s.bounds = b
		s.defaultSize = defaultSize
	}
}

// New creates a search service.
func New(parser *term.Parser, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		parser:      parser,
		bounds:      page.DefaultBounds(),
		defaultSize: page.DefaultMinSize,
		logger:      logger,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search returns one page of the media matching query. A query without any
// recognized term matches nothing.
func (s *Service) Search(
	ctx context.Context, docs Documents, query string, req page.Request, vis Visibility,
) (page.Page[medium.Full], error) {
	start := time.Now()
	defer observe(true, start)

	matches, err := s.match(ctx, docs, query, vis)
	if err != nil {
		return page.Page[medium.Full]{}, err
	}
	if len(matches) == 0 {
		return page.Empty[medium.Full](), nil
	}

	if req.Size <= 0 {
		req.Size = s.defaultSize
	}
	w := s.bounds.Clamp(req, len(matches))

	items, err := resolve(ctx, docs, matches[w.Start:w.End])
	if err != nil {
		return page.Page[medium.Full]{}, err
	}

	s.logger.Debug("search",
		zap.String("query", query),
		zap.Int("matches", len(matches)),
		zap.Int("page", w.Number),
		zap.Duration("took", time.Since(start)),
	)
	return page.Page[medium.Full]{
		Items:      items,
		PageCount:  w.Count,
		PageNumber: w.Number,
		PageSize:   w.Size,
	}, nil
}

// SearchUnpaginated returns every medium matching query, sorted.
func (s *Service) SearchUnpaginated(
	ctx context.Context, docs Documents, query string, vis Visibility,
) ([]medium.Full, error) {
	defer observe(false, time.Now())

	matches, err := s.match(ctx, docs, query, vis)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []medium.Full{}, nil
	}
	return resolve(ctx, docs, matches)
}

// match returns the visible matches of query in result order.
func (s *Service) match(ctx context.Context, docs Documents, query string, vis Visibility) ([]medium.Tiny, error) {
	terms := s.parser.Parse(query)
	if terms.Empty() {
		return nil, nil
	}

	all, err := docs.GetAllTinyDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	filters := append(vis.censor(), terms.Filters...)
	matches := Evaluate(all, filters)

	order := term.DefaultSort
	if terms.Sort != nil {
		order = *terms.Sort
	}
	order.Apply(matches)

	metrics.SearchResults.Observe(float64(len(matches)))
	return matches, nil
}

// Evaluate returns the documents every filter applies to, as a new slice.
func Evaluate(docs []medium.Tiny, filters []term.Filter) []medium.Tiny {
	out := make([]medium.Tiny, 0, len(docs))
next:
	for i := range docs {
		for _, f := range filters {
			if !f.AppliesTo(&docs[i]) {
				continue next
			}
		}
		out = append(out, docs[i])
	}
	return out
}

func resolve(ctx context.Context, docs Documents, tiny []medium.Tiny) ([]medium.Full, error) {
	ids := make([]int64, len(tiny))
	for i := range tiny {
		ids[i] = tiny[i].ID
	}
	full, err := docs.GetManyDocuments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve documents: %w", err)
	}
	return full, nil
}

func observe(paginated bool, start time.Time) {
	metrics.SearchDuration.WithLabelValues(strconv.FormatBool(paginated)).Observe(time.Since(start).Seconds())
}
