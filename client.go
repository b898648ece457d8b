// Package mediadex is the layered document cache and search engine of a
// media tagging gallery.
package mediadex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/db"
	dbRedis "github.com/kailas-cloud/mediadex/internal/db/redis"
	"github.com/kailas-cloud/mediadex/internal/db/sqldb"
	"github.com/kailas-cloud/mediadex/internal/domain/search/term"
	"github.com/kailas-cloud/mediadex/internal/repository/relational"
	"github.com/kailas-cloud/mediadex/internal/repository/tier"
	chiTransport "github.com/kailas-cloud/mediadex/internal/transport/chi"
	"github.com/kailas-cloud/mediadex/internal/usecase/fast"
	healthuc "github.com/kailas-cloud/mediadex/internal/usecase/health"
	"github.com/kailas-cloud/mediadex/internal/usecase/invalidation"
	"github.com/kailas-cloud/mediadex/internal/usecase/materialize"
	searchuc "github.com/kailas-cloud/mediadex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the mediadex entry point. It is safe for concurrent use; every
// Session it hands out is not.
type Client struct {
	store  db.Store
	sqlDB  *bun.DB
	stack  *tier.Stack
	mat    *materialize.Service
	search *searchuc.Service
	bus    *invalidation.Bus
	health *healthuc.Service
	logger *zap.Logger
}

// New connects to the shared store and the relational source.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.redisAddrs) == 0 {
		return nil, errors.New("mediadex: shared store address required (use WithRedis)")
	}
	if cfg.driver == "" || cfg.dsn == "" {
		return nil, errors.New("mediadex: relational source required (use WithRelational)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.redisAddrs,
		Username: cfg.redisUsername,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("mediadex: create redis store: %w", err)
	}
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("mediadex: shared store not ready: %w", err)
	}

	sqlDB, err := sqldb.Open(sqldb.Config{Driver: cfg.driver, DSN: cfg.dsn, MaxOpenConns: cfg.maxOpenConns})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("mediadex: open relational source: %w", err)
	}
	if err := sqldb.Ping(ctx, sqlDB); err != nil {
		store.Close()
		_ = sqlDB.Close()
		return nil, fmt.Errorf("mediadex: relational source not ready: %w", err)
	}

	c, err := wireClient(store, store, sqlDB, cfg)
	if err != nil {
		store.Close()
		_ = sqlDB.Close()
		return nil, err
	}
	c.store = store
	c.sqlDB = sqlDB
	return c, nil
}

func wireClient(kv db.KVStore, kvPing db.Pinger, relDB bun.IDB, cfg *clientConfig) (*Client, error) {
	var process *tier.Process
	if cfg.processTier != nil {
		p, err := tier.NewProcess(*cfg.processTier)
		if err != nil {
			return nil, fmt.Errorf("mediadex: %w", err)
		}
		process = p
	}
	stack := tier.NewStack(tier.NewShared(kv, cfg.keyPrefix, cfg.entryTTL), process)

	source := relational.New(relDB)
	mat := materialize.New(source, cfg.logger)
	search := searchuc.New(&term.Parser{Rules: cfg.rules}, cfg.logger,
		searchuc.WithBounds(cfg.bounds, cfg.defaultSize))

	return &Client{
		stack:  stack,
		mat:    mat,
		search: search,
		bus:    invalidation.New(mat, cfg.logger),
		health: healthuc.New(kvPing, source),
		logger: cfg.logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
	if c.sqlDB != nil {
		_ = c.sqlDB.Close()
	}
}

// Session starts a unit of work with its own request-local tier. Use one
// per request and drop it afterwards.
func (c *Client) Session() *Session {
	return &Session{c: c, f: fast.New(c.logger, c.stack.Tiers()...)}
}

// Warmup rebuilds every cached entity from the relational source.
func (c *Client) Warmup(ctx context.Context) error {
	return c.Session().Warmup(ctx)
}

// Publish applies the cache updates that events call for.
func (c *Client) Publish(ctx context.Context, events ...Event) error {
	return c.Session().Publish(ctx, events...)
}

// Health reports the status of the shared store and the relational source.
func (c *Client) Health(ctx context.Context) HealthReport {
	return c.health.Check(ctx)
}

// Mount registers the read-only HTTP surface on r. A nil vis restricts every caller.
func (c *Client) Mount(r chi.Router, vis VisibilityFunc) {
	chiTransport.NewServer(c.stack, c.search, c.health, vis, c.logger).Routes(r)
}
