package materialize

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/tag"
)

// Source is the relational system of record, read-only.
type Source interface {
	// AllMedia returns every medium with its innate and absent tags.
	AllMedia(ctx context.Context) ([]medium.Record, error)
	AllTags(ctx context.Context) ([]tag.Tag, error)
	AllAliases(ctx context.Context) ([]tag.Alias, error)
	AllImplications(ctx context.Context) ([]tag.Implication, error)

	// MediaByIDs returns the media that exist among ids, in no particular order.
	MediaByIDs(ctx context.Context, ids []int64) ([]medium.Record, error)
	// AliasesOf returns the aliases registered to any of tagIDs.
	AliasesOf(ctx context.Context, tagIDs []int64) ([]tag.Alias, error)
	// ImpliedBy returns the implications leaving any of tagIDs.
	ImpliedBy(ctx context.Context, tagIDs []int64) ([]tag.Edge, error)

	// SearchableNames returns the union of all tag names and all alias names.
	SearchableNames(ctx context.Context) ([]string, error)
}
