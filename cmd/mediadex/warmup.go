package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWarmupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "warmup",
		Short: "Rebuild every cached entity from the relational source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			start := time.Now()
			if err := client.Warmup(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("Cache warmed up", zap.Duration("took", time.Since(start)))
			return nil
		},
	}
}
