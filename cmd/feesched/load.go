package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/feesched/internal/db"
	"github.com/gyeh/feesched/internal/exitcode"
	"github.com/gyeh/feesched/internal/logging"
	"github.com/gyeh/feesched/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load reference files into the database",
	Long: "Parses the configured reference files and replaces the corresponding " +
		"Postgres tables. Tables whose file is not configured are left untouched.",
	RunE: runLoad,
}

func init() {
	addFileFlags(loadCmd.Flags())
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateFiles(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	result, err := store.Load(ctx, pool, log, cfg.Files)
	if err != nil {
		log.Error().Err(err).Msg("reference load failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Load complete: %d tables, %d rows (%.1fs)\n",
		result.TablesLoaded, result.RowsLoaded, result.Duration.Seconds())
	return nil
}
