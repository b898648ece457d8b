package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex"
	"github.com/kailas-cloud/mediadex/internal/config"
	logpkg "github.com/kailas-cloud/mediadex/internal/logger"
	"github.com/kailas-cloud/mediadex/internal/version"
)

// app carries what every subcommand needs once the root command has run.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "mediadex",
		Short:         "Layered document cache and search engine of the media gallery",
		Version:       fmt.Sprintf("%s (%s, %s)", version.Version, version.Commit, version.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.AddCommand(newServeCmd(a), newWarmupCmd(a), newSearchCmd(a))
	return root
}

// init loads configuration based on ENV and builds the logger.
func (a *app) init() error {
	a.env = config.GetEnv()

	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	return nil
}

// connect builds a client from the loaded configuration.
func (a *app) connect(ctx context.Context) (*mediadex.Client, error) {
	c := a.cfg
	opts := []mediadex.Option{
		mediadex.WithRedis(c.Redis.Addrs...),
		mediadex.WithRedisAuth(c.Redis.Username, c.Redis.Password, c.Redis.DB),
		mediadex.WithReadinessTimeout(time.Duration(c.Redis.ReadinessTimeout) * time.Second),
		mediadex.WithRelational(c.Relational.Driver, c.Relational.DSN, c.Relational.MaxOpenConns),
		mediadex.WithKeyPrefix(c.Cache.KeyPrefix),
		mediadex.WithEntryTTL(time.Duration(c.Cache.EntryTTLSec) * time.Second),
		mediadex.WithPageSizes(c.Search.MinPageSize, c.Search.DefaultPageSize, c.Search.MaxPageSize),
		mediadex.WithLogger(a.logger),
	}
	if pt := c.Cache.ProcessTier; pt.Enabled {
		opts = append(opts, mediadex.WithProcessTier(
			pt.Capacity, pt.NumShards, time.Duration(pt.TTLSec)*time.Second, pt.EvictionPercentage,
		))
	}

	client, err := mediadex.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Connected to shared store and relational source",
		zap.Strings("redis_addrs", c.Redis.Addrs),
		zap.String("relational_driver", c.Relational.Driver),
		zap.Bool("process_tier", c.Cache.ProcessTier.Enabled),
	)
	return client, nil
}
