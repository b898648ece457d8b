package fast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/metrics"
)

// Fast is a stack of cache tiers ordered fastest first. Reads fall through
// the stack and fill the faster tiers they skipped; commands update the
// stack from the slowest tier up.
type Fast struct {
	tiers  []Tier
	logger *zap.Logger
}

// New creates an orchestrator over tiers, fastest first. The last tier is
// expected to be a terminator that always misses.
func New(logger *zap.Logger, tiers ...Tier) *Fast {
	return &Fast{tiers: tiers, logger: logger}
}

// Tiers returns the stack, fastest first.
func (f *Fast) Tiers() []Tier { return f.tiers }

// get probes the tiers in order and back-fills the ones that missed.
func (f *Fast) get(ctx context.Context, q cache.Query) (any, bool, error) {
	for i, t := range f.tiers {
		v, ok, err := t.Get(ctx, q)
		if err != nil {
			return nil, false, fmt.Errorf("tier %s: get %s: %w", t.Name(), q, err)
		}
		if !ok {
			metrics.CacheLookupsTotal.WithLabelValues(t.Name(), string(q.Kind), "miss").Inc()
			continue
		}
		metrics.CacheLookupsTotal.WithLabelValues(t.Name(), string(q.Kind), "hit").Inc()
		f.backfill(ctx, f.tiers[:i], map[cache.Query]any{q: v})
		return v, true, nil
	}
	return nil, false, nil
}

// getMany is get for many keys with one batch call per tier. Keys found in a
// faster tier are not asked of slower ones.
func (f *Fast) getMany(ctx context.Context, qs []cache.Query) (map[cache.Query]any, error) {
	found := make(map[cache.Query]any, len(qs))
	remaining := qs

	for i, t := range f.tiers {
		if len(remaining) == 0 {
			break
		}

		hits, err := t.GetMany(ctx, remaining)
		if err != nil {
			return nil, fmt.Errorf("tier %s: get many: %w", t.Name(), err)
		}
		for q, v := range hits {
			found[q] = v
			metrics.CacheLookupsTotal.WithLabelValues(t.Name(), string(q.Kind), "hit").Inc()
		}
		f.backfill(ctx, f.tiers[:i], hits)

		next := remaining[:0:0]
		for _, q := range remaining {
			if _, ok := hits[q]; !ok {
				metrics.CacheLookupsTotal.WithLabelValues(t.Name(), string(q.Kind), "miss").Inc()
				next = append(next, q)
			}
		}
		remaining = next
	}
	return found, nil
}

// backfill writes hits into faster tiers. A failure only costs a future
// fall-through, so it is logged and the read goes on.
func (f *Fast) backfill(ctx context.Context, faster []Tier, hits map[cache.Query]any) {
	for _, t := range faster {
		if err := t.SetMany(ctx, hits); err != nil {
			f.logger.Warn("cache backfill failed", zap.String("tier", t.Name()), zap.Error(err))
			continue
		}
		for q := range hits {
			metrics.CacheBackfillsTotal.WithLabelValues(t.Name(), string(q.Kind)).Inc()
		}
	}
}

// GetDocument returns the full document of a medium.
func (f *Fast) GetDocument(ctx context.Context, id int64) (medium.Full, bool, error) {
	return getOne[medium.Full](ctx, f, cache.Document(id))
}

// GetManyDocuments returns the full documents of ids in input order.
// Ids without a cached document are omitted.
func (f *Fast) GetManyDocuments(ctx context.Context, ids []int64) ([]medium.Full, error) {
	return getMany[medium.Full](ctx, f, ids, cache.Document)
}

// GetTinyDocument returns the tiny document of a medium.
func (f *Fast) GetTinyDocument(ctx context.Context, id int64) (medium.Tiny, bool, error) {
	return getOne[medium.Tiny](ctx, f, cache.Tiny(id))
}

// GetManyTinyDocuments returns the tiny documents of ids in input order.
func (f *Fast) GetManyTinyDocuments(ctx context.Context, ids []int64) ([]medium.Tiny, error) {
	return getMany[medium.Tiny](ctx, f, ids, cache.Tiny)
}

// GetAllTinyDocuments returns the search corpus, or nil on a cold cache.
func (f *Fast) GetAllTinyDocuments(ctx context.Context) ([]medium.Tiny, error) {
	docs, _, err := getOne[[]medium.Tiny](ctx, f, cache.AllTiny())
	return docs, err
}

// GetRatingByHash returns the rating of the medium with a content hash.
func (f *Fast) GetRatingByHash(ctx context.Context, hash string) (medium.Rating, bool, error) {
	return getOne[medium.Rating](ctx, f, cache.Rating(hash))
}

// GetAllSearchableTagNames returns every tag and alias name, or nil on a cold cache.
func (f *Fast) GetAllSearchableTagNames(ctx context.Context) ([]string, error) {
	names, _, err := getOne[[]string](ctx, f, cache.Searchable())
	return names, err
}

func getOne[T any](ctx context.Context, f *Fast, q cache.Query) (T, bool, error) {
	var zero T
	v, ok, err := f.get(ctx, q)
	if err != nil || !ok {
		return zero, false, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("%s holds %T: %w", q, v, domain.ErrWrongEntityType)
	}
	return typed, true, nil
}

func getMany[T any](ctx context.Context, f *Fast, ids []int64, key func(int64) cache.Query) ([]T, error) {
	qs := make([]cache.Query, len(ids))
	for i, id := range ids {
		qs[i] = key(id)
	}

	found, err := f.getMany(ctx, qs)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(found))
	for _, q := range qs {
		v, ok := found[q]
		if !ok {
			continue
		}
		typed, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("%s holds %T: %w", q, v, domain.ErrWrongEntityType)
		}
		out = append(out, typed)
	}
	return out, nil
}

// Run executes commands one after another. Each command sweeps the tiers
// from slowest to fastest and stops at the first tier it fails on, so a
// faster tier is never left newer than a slower one. Failures are joined.
func (f *Fast) Run(ctx context.Context, cmds ...Command) error {
	var errs []error
	for _, cmd := range cmds {
		if err := f.run(ctx, cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fast) run(ctx context.Context, cmd Command) error {
	start := time.Now()
	err := f.sweep(ctx, cmd)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.CacheCommandsTotal.WithLabelValues(cmd.Name(), status).Inc()
	metrics.CacheCommandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())

	f.logger.Debug("cache command finished",
		zap.String("command", cmd.Name()),
		zap.String("status", status),
		zap.Duration("took", time.Since(start)),
	)
	return err
}

func (f *Fast) sweep(ctx context.Context, cmd Command) error {
	step, err := cmd.Start(ctx)
	if err != nil {
		return fmt.Errorf("%s: start: %w", cmd.Name(), err)
	}
	for i := len(f.tiers) - 1; i >= 0; i-- {
		t := f.tiers[i]
		if err := step.Next(ctx, t); err != nil {
			return fmt.Errorf("%s: tier %s: %w", cmd.Name(), t.Name(), err)
		}
	}
	return nil
}
