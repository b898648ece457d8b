package mediadex

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/domain/search/page"
	"github.com/kailas-cloud/mediadex/internal/domain/search/term"
	"github.com/kailas-cloud/mediadex/internal/repository/tier"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	redisAddrs       []string
	redisUsername    string
	redisPassword    string
	redisDB          int
	readinessTimeout time.Duration

	driver       string
	dsn          string
	maxOpenConns int

	keyPrefix   string
	entryTTL    time.Duration
	processTier *tier.ProcessConfig

	bounds      page.Bounds
	defaultSize int
	rules       term.Rules

	logger *zap.Logger
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
		keyPrefix:        "mediadex:",
		bounds:           page.DefaultBounds(),
		defaultSize:      page.DefaultMinSize,
		logger:           zap.NewNop(),
	}
}

// WithRedis sets the shared store addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.redisAddrs = addrs
	}
}

// WithRedisAuth sets shared store credentials and database number.
func WithRedisAuth(username, password string, db int) Option {
	return func(c *clientConfig) {
		c.redisUsername = username
		c.redisPassword = password
		c.redisDB = db
	}
}

// WithReadinessTimeout bounds how long New waits for the shared store.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}

// WithRelational sets the system of record. driver is "postgres" or "sqlite3".
func WithRelational(driver, dsn string, maxOpenConns int) Option {
	return func(c *clientConfig) {
		c.driver = driver
		c.dsn = dsn
		c.maxOpenConns = maxOpenConns
	}
}

// WithKeyPrefix sets the prefix of every shared store key.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithEntryTTL makes shared store entries expire. Zero keeps them forever.
func WithEntryTTL(d time.Duration) Option {
	return func(c *clientConfig) {
		c.entryTTL = d
	}
}

// WithProcessTier adds an in-process tier between the request-local and
// the shared tier.
func WithProcessTier(capacity, shards int, ttl time.Duration, evictionPercentage int) Option {
	return func(c *clientConfig) {
		c.processTier = &tier.ProcessConfig{
			Capacity:           capacity,
			NumShards:          shards,
			TTL:                ttl,
			EvictionPercentage: evictionPercentage,
		}
	}
}

// WithPageSizes sets the page size bounds and the size used when none is requested.
func WithPageSizes(minSize, defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		c.bounds = page.Bounds{MinSize: minSize, MaxSize: maxSize}
		c.defaultSize = defaultSize
	}
}

// WithRules resolves rule:n search terms.
func WithRules(r Rules) Option {
	return func(c *clientConfig) {
		c.rules = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
