package mediadex

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/usecase/fast"
)

// Session reads and updates the cache through one orchestrator. Values read
// once are served from its request-local tier afterwards.
type Session struct {
	c *Client
	f *fast.Fast
}

// GetDocument returns the full document of medium id.
func (s *Session) GetDocument(ctx context.Context, id int64) (Document, bool, error) {
	return s.f.GetDocument(ctx, id)
}

// GetManyDocuments returns documents in the order of ids, omitting missing ones.
func (s *Session) GetManyDocuments(ctx context.Context, ids []int64) ([]Document, error) {
	return s.f.GetManyDocuments(ctx, ids)
}

// GetTinyDocument returns the tiny document of medium id.
func (s *Session) GetTinyDocument(ctx context.Context, id int64) (TinyDocument, bool, error) {
	return s.f.GetTinyDocument(ctx, id)
}

// GetManyTinyDocuments returns tiny documents in the order of ids, omitting missing ones.
func (s *Session) GetManyTinyDocuments(ctx context.Context, ids []int64) ([]TinyDocument, error) {
	return s.f.GetManyTinyDocuments(ctx, ids)
}

// GetAllTinyDocuments returns the search corpus, or nil before the first warmup.
func (s *Session) GetAllTinyDocuments(ctx context.Context) ([]TinyDocument, error) {
	return s.f.GetAllTinyDocuments(ctx)
}

// GetRatingByHash returns the rating of the medium with content hash.
func (s *Session) GetRatingByHash(ctx context.Context, hash string) (Rating, bool, error) {
	return s.f.GetRatingByHash(ctx, hash)
}

// GetAllSearchableTagNames returns every tag and alias name.
func (s *Session) GetAllSearchableTagNames(ctx context.Context) ([]string, error) {
	return s.f.GetAllSearchableTagNames(ctx)
}

// Search returns one page of the media matching query.
func (s *Session) Search(ctx context.Context, query string, req PageRequest, vis Visibility) (Page, error) {
	return s.c.search.Search(ctx, s.f, query, req, vis)
}

// SearchUnpaginated returns every medium matching query.
func (s *Session) SearchUnpaginated(ctx context.Context, query string, vis Visibility) ([]Document, error) {
	return s.c.search.SearchUnpaginated(ctx, s.f, query, vis)
}

// Publish applies the cache updates that events call for.
func (s *Session) Publish(ctx context.Context, events ...Event) error {
	return s.c.bus.Publish(ctx, s.f, events...)
}

// Warmup rebuilds every cached entity from the relational source.
func (s *Session) Warmup(ctx context.Context) error {
	return s.f.Run(ctx, fast.NewFullRefill(s.c.mat))
}
