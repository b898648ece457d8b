package tier

import (
	"context"
	"fmt"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/kailas-cloud/mediadex/internal/domain/cache"
)

// ProcessConfig sizes the process-wide tier.
type ProcessConfig struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

// Process is an in-memory tier shared by every request of one process.
// Entries expire after the configured TTL, which bounds how long a process
// can serve values that another process already replaced. Stored values are
// shared between goroutines and must not be mutated.
type Process struct {
	client *sturdyc.Client[any]
}

// NewProcess creates a process-wide tier.
func NewProcess(cfg ProcessConfig) (*Process, error) {
	if cfg.Capacity <= 0 || cfg.NumShards <= 0 || cfg.TTL <= 0 {
		return nil, fmt.Errorf("process tier: capacity, shards and ttl must be positive")
	}
	if cfg.EvictionPercentage < 1 || cfg.EvictionPercentage > 100 {
		return nil, fmt.Errorf("process tier: eviction percentage must be between 1 and 100")
	}
	client := sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage)
	return &Process{client: client}, nil
}

// Name implements fast.Tier.
func (p *Process) Name() string { return "process" }

// Get implements fast.Tier.
func (p *Process) Get(_ context.Context, q cache.Query) (any, bool, error) {
	v, ok := p.client.Get(q.String())
	return v, ok, nil
}

// GetMany implements fast.Tier.
func (p *Process) GetMany(_ context.Context, qs []cache.Query) (map[cache.Query]any, error) {
	keys := make([]string, len(qs))
	byKey := make(map[string]cache.Query, len(qs))
	for i, q := range qs {
		keys[i] = q.String()
		byKey[keys[i]] = q
	}

	out := make(map[cache.Query]any, len(qs))
	for k, v := range p.client.GetMany(keys) {
		out[byKey[k]] = v
	}
	return out, nil
}

// Set implements fast.Tier.
func (p *Process) Set(_ context.Context, q cache.Query, v any) error {
	p.client.Set(q.String(), v)
	return nil
}

// SetMany implements fast.Tier.
func (p *Process) SetMany(_ context.Context, entries map[cache.Query]any) error {
	records := make(map[string]any, len(entries))
	for q, v := range entries {
		records[q.String()] = v
	}
	p.client.SetMany(records)
	return nil
}

// Delete implements fast.Tier.
func (p *Process) Delete(_ context.Context, qs ...cache.Query) (int, error) {
	n := 0
	for _, q := range qs {
		k := q.String()
		if _, ok := p.client.Get(k); ok {
			n++
		}
		p.client.Delete(k)
	}
	return n, nil
}
