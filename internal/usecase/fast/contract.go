package fast

import (
	"context"

	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

// Tier is one layer of the cache stack.
//
// Values are typed by entity kind: medium.Full for FullDocument, medium.Tiny
// for TinyDocument, []medium.Tiny for AllTinyDocuments, medium.Rating for
// RatingByHash and []string for SearchableTagNames.
type Tier interface {
	Name() string
	Get(ctx context.Context, q cache.Query) (any, bool, error)
	// GetMany returns hits only.
	GetMany(ctx context.Context, qs []cache.Query) (map[cache.Query]any, error)
	Set(ctx context.Context, q cache.Query, v any) error
	SetMany(ctx context.Context, entries map[cache.Query]any) error
	// Delete reports how many of qs were present.
	Delete(ctx context.Context, qs ...cache.Query) (int, error)
}

// Materializer builds documents from the relational source.
type Materializer interface {
	All(ctx context.Context) ([]medium.Full, error)
	Many(ctx context.Context, ids []int64) ([]medium.Full, error)
	SearchableNames(ctx context.Context) ([]string, error)
}

// Command is a coordinated update of every tier.
//
// Start gathers everything the command needs before any tier is touched;
// a failing Start leaves the cache as it was. The returned Step is then
// applied to each tier, slowest first.
type Command interface {
	Name() string
	Start(ctx context.Context) (Step, error)
}

// Step applies a started command to one tier.
type Step interface {
	Next(ctx context.Context, t Tier) error
}

// StepFunc adapts a function to Step.
type StepFunc func(ctx context.Context, t Tier) error

// Next calls f.
func (f StepFunc) Next(ctx context.Context, t Tier) error { return f(ctx, t) }
