package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReplaceTable truncates a reference table and bulk-loads rows into it via
// the COPY protocol, atomically: readers see either the old table or the new
// one. Reference tables are replaced wholesale on each load; there is no
// incremental update path.
func ReplaceTable(ctx context.Context, pool *pgxpool.Pool, table pgx.Identifier, columns []string, rows [][]any) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE "+table.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", table.Sanitize(), err)
	}

	n, err := tx.CopyFrom(ctx, table, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table.Sanitize(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}
