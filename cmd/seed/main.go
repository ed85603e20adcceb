// cmd/seed/main.go
// Fills the configured store with sample stables, pilots, stages and results.
//
// Usage:
//
//	DB_PATH=./formula1.db go run ./cmd/seed --times 3
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/padraicbc/racedb/config"
	"github.com/padraicbc/racedb/db"
	applog "github.com/padraicbc/racedb/logger"
	"github.com/padraicbc/racedb/sample"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Insert randomized sample rows into the racing store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				return fmt.Errorf("--times must be at least 1, got %d", times)
			}
			return run(cmd.Context(), times)
		},
	}
	cmd.Flags().IntVar(&times, "times", 1, "number of sample batches to insert")
	return cmd
}

func run(ctx context.Context, times int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bdb, err := db.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer bdb.Close()

	if err := db.CreateTables(ctx, bdb); err != nil {
		return err
	}

	gen := sample.New(db.NewStore(bdb))
	for i := 1; i <= times; i++ {
		counts, err := gen.Generate(ctx)
		if err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
		logger.Info("sample batch inserted",
			zap.Int("batch", i),
			zap.Int("stables", counts.Stables),
			zap.Int("pilots", counts.Pilots),
			zap.Int("stages", counts.Stages),
			zap.Int("results", counts.Results),
		)
	}
	return nil
}
