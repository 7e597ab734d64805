package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/db"
	"github.com/gyeh/feesched/internal/exitcode"
	"github.com/gyeh/feesched/internal/store"
)

// buildReferenceSet loads the reference tables from the configured files
// when any file flag is set, otherwise from Postgres. Exits on failure.
func buildReferenceSet(ctx context.Context, log zerolog.Logger) *store.ReferenceSet {
	if filesConfigured() {
		if err := cfg.ValidateFiles(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
		set, err := store.FromFiles(cfg.Files, log)
		if err != nil {
			log.Error().Err(err).Msg("reference file parse failed")
			os.Exit(exitcode.LoadError)
		}
		return set
	}

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	set, err := store.Read(ctx, pool)
	if err != nil {
		log.Error().Err(err).Msg("reference read failed")
		os.Exit(exitcode.LoadError)
	}
	return set
}
