// Package invalidation turns change signals into cache commands.
package invalidation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/usecase/fast"
)

// Runner executes cache commands.
type Runner interface {
	Run(ctx context.Context, cmds ...fast.Command) error
}

// Bus maps events to the cheapest command that keeps every tier correct.
type Bus struct {
	m      fast.Materializer
	logger *zap.Logger
}

// New creates a bus.
func New(m fast.Materializer, logger *zap.Logger) *Bus {
	return &Bus{m: m, logger: logger}
}

// Commands returns the commands for e, in execution order.
func (b *Bus) Commands(e Event) ([]fast.Command, error) {
	switch e.Kind {
	case TagGraphChanged:
		return []fast.Command{fast.NewFullRefill(b.m)}, nil
	case MediumReplaced:
		if len(e.IDs) != 1 {
			return nil, fmt.Errorf("%s: expected one medium, got %d", e.Kind, len(e.IDs))
		}
		return []fast.Command{fast.NewRefreshMedia(b.m, fast.Target{ID: e.IDs[0], OldHash: e.Hash})}, nil
	case MediaAdded, MediaUpdated:
		if len(e.IDs) == 0 {
			return nil, nil
		}
		return []fast.Command{fast.RefreshIDs(b.m, e.IDs...)}, nil
	case MediumDeleted:
		if len(e.IDs) != 1 {
			return nil, fmt.Errorf("%s: expected one medium, got %d", e.Kind, len(e.IDs))
		}
		return []fast.Command{fast.NewDeleteMedium(e.IDs[0], e.Hash)}, nil
	case MetadataChanged:
		if len(e.IDs) != 1 {
			return nil, fmt.Errorf("%s: expected one medium, got %d", e.Kind, len(e.IDs))
		}
		return []fast.Command{
			fast.NewRefreshMedia(b.m, fast.Target{ID: e.IDs[0], OldHash: e.Hash}),
			fast.NewRefreshSearchableTagNames(b.m),
		}, nil
	default:
		return nil, fmt.Errorf("unknown event %s", e.Kind)
	}
}

// Publish runs the commands of all events on r in one batch. A command
// failure does not stop the commands after it; failures are logged and returned.
func (b *Bus) Publish(ctx context.Context, r Runner, events ...Event) error {
	var cmds []fast.Command
	for _, e := range events {
		c, err := b.Commands(e)
		if err != nil {
			b.logger.Error("invalid cache event", zap.Stringer("event", e.Kind), zap.Error(err))
			return err
		}
		cmds = append(cmds, c...)
	}
	if len(cmds) == 0 {
		return nil
	}

	if err := r.Run(ctx, cmds...); err != nil {
		b.logger.Error("cache update failed",
			zap.Int("events", len(events)),
			zap.Int("commands", len(cmds)),
			zap.Error(err),
		)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
