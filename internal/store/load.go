package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/db"
	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
	embedsql "github.com/gyeh/feesched/internal/sql"
)

// LoadResult summarizes one reference load run.
type LoadResult struct {
	TablesLoaded int
	RowsLoaded   int64
	Duration     time.Duration
}

// Load parses the named files and replaces the corresponding Postgres
// tables, recording one load_runs row per file. Tables whose path is empty
// are left untouched.
func Load(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, files Files) (*LoadResult, error) {
	start := time.Now()
	set, err := FromFiles(files, log)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{}
	steps := []struct {
		path  string
		table pgx.Identifier
		cols  []string
		rows  [][]any
	}{
		{files.ZipCounty, pgx.Identifier{"ref", "zip_county"},
			[]string{"zip", "county_id", "state", "res_ratio"}, zipCountyValues(set.ZipCounty)},
		{files.CountyNames, pgx.Identifier{"ref", "county_name"},
			[]string{"county_id", "name"}, countyNameValues(set.CountyNames)},
		{files.Locality, pgx.Identifier{"ref", "locality"},
			[]string{"state", "county_scope", "locality_number", "locality_name"}, localityValues(set.Localities)},
		{files.GPCI, pgx.Identifier{"ref", "gpci"},
			[]string{"state", "locality_number", "work_mult", "expense_mult", "malpractice_mult"}, gpciValues(set.GPCI)},
		{files.RVU, pgx.Identifier{"ref", "rvu"},
			[]string{"code", "work_rvu", "expense_rvu", "malpractice_rvu"}, rvuValues(set.RVU)},
		{files.PTP, pgx.Identifier{"ref", "ptp_edit"},
			[]string{"column1_code", "column2_code", "modifier_indicator", "effective_from", "deleted_after"}, ptpValues(set.PTP)},
		{files.MUE, pgx.Identifier{"ref", "mue_edit"},
			[]string{"code", "max_units", "service_type"}, mueValues(set.MUE)},
		{files.Addon, pgx.Identifier{"ref", "addon_edit"},
			[]string{"addon_code", "primary_code"}, addonValues(set.Addons)},
	}

	for _, step := range steps {
		if step.path == "" {
			continue
		}
		n, err := db.ReplaceTable(ctx, pool, step.table, step.cols, step.rows)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", step.path, err)
		}
		if err := recordLoadRun(ctx, pool, step.path, step.table.Sanitize(), n); err != nil {
			return nil, err
		}
		log.Info().
			Str("table", step.table.Sanitize()).
			Str("file", step.path).
			Int64("rows", n).
			Msg("reference table replaced")
		result.TablesLoaded++
		result.RowsLoaded += n
	}

	result.Duration = time.Since(start)
	return result, nil
}

func recordLoadRun(ctx context.Context, pool *pgxpool.Pool, path, table string, rows int64) error {
	sha, err := normalize.FileHash(path)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	if _, err := pool.Exec(ctx, embedsql.InsertLoadRun, uuid.New(), path, sha, table, rows); err != nil {
		return fmt.Errorf("record load run for %s: %w", table, err)
	}
	return nil
}

func zipCountyValues(rows []model.ZipCountyRow) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.ZIP, r.CountyID, r.State, r.ResidentialRatio}
	}
	return out
}

func countyNameValues(rows []model.CountyName) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.CountyID, r.Name}
	}
	return out
}

func localityValues(rows []model.LocalityRow) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.State, r.CountyScope, r.LocalityNumber, r.LocalityName}
	}
	return out
}

func gpciValues(rows []model.GPCIEntry) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.State, r.LocalityNumber, r.WorkMult, r.ExpenseMult, r.MalpracticeMult}
	}
	return out
}

func rvuValues(rows []model.RVUEntry) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.Code, r.WorkRVU, r.ExpenseRVU, r.MalpracticeRVU}
	}
	return out
}

func ptpValues(rows []model.PTPPair) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.Column1Code, r.Column2Code, r.ModifierIndicator, r.EffectiveFrom, r.DeletedAfter}
	}
	return out
}

func mueValues(rows []model.MUEEntry) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.Code, r.MaxUnits, r.ServiceType}
	}
	return out
}

func addonValues(rows []model.AddonEntry) [][]any {
	var out [][]any
	for _, r := range rows {
		for _, p := range r.PrimaryCodes {
			out = append(out, []any{r.AddonCode, p})
		}
	}
	return out
}
