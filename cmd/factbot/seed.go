package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/techfacts/factbot/internal/config"
	"github.com/techfacts/factbot/internal/facts"
	"github.com/techfacts/factbot/internal/logger"
	"github.com/techfacts/factbot/internal/store"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the fact store contents with the reference facts",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()
	db, err := store.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer db.Close()

	seed := facts.Seed()
	if err := db.ReplaceAll(ctx, seed); err != nil {
		return fmt.Errorf("seeding facts: %w", err)
	}
	log.Info("seed: inserted documents",
		zap.Int("count", len(seed)),
		zap.String("store", store.Describe(cfg)))

	stored, err := db.ListFacts(ctx)
	if err != nil {
		return fmt.Errorf("listing facts: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, f := range stored {
		fmt.Fprintf(out, "%-15s %-32s %s\n", f.Key, f.Title, f.Image)
	}
	return nil
}
