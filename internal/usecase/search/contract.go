package search

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// Documents is the read side of the cache the engine searches.
type Documents interface {
	GetAllTinyDocuments(ctx context.Context) ([]medium.Tiny, error)
	// GetManyDocuments returns documents in the order of ids, omitting missing ones.
	GetManyDocuments(ctx context.Context, ids []int64) ([]medium.Full, error)
}
