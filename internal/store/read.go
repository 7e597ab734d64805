package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/feesched/internal/model"
	embedsql "github.com/gyeh/feesched/internal/sql"
)

// Read rebuilds a full ReferenceSet from Postgres. Called once at process
// start; the resulting set is immutable for the life of the process.
func Read(ctx context.Context, pool *pgxpool.Pool) (*ReferenceSet, error) {
	set := &ReferenceSet{}

	rows, err := pool.Query(ctx, embedsql.SelectZipCounty)
	if err != nil {
		return nil, fmt.Errorf("query zip_county: %w", err)
	}
	for rows.Next() {
		var r model.ZipCountyRow
		if err := rows.Scan(&r.ZIP, &r.CountyID, &r.State, &r.ResidentialRatio); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan zip_county: %w", err)
		}
		set.ZipCounty = append(set.ZipCounty, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read zip_county: %w", err)
	}

	rows, err = pool.Query(ctx, embedsql.SelectCountyNames)
	if err != nil {
		return nil, fmt.Errorf("query county_name: %w", err)
	}
	for rows.Next() {
		var r model.CountyName
		if err := rows.Scan(&r.CountyID, &r.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan county_name: %w", err)
		}
		set.CountyNames = append(set.CountyNames, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read county_name: %w", err)
	}

	rows, err = pool.Query(ctx, embedsql.SelectLocalities)
	if err != nil {
		return nil, fmt.Errorf("query locality: %w", err)
	}
	for rows.Next() {
		var r model.LocalityRow
		if err := rows.Scan(&r.State, &r.CountyScope, &r.LocalityNumber, &r.LocalityName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan locality: %w", err)
		}
		set.Localities = append(set.Localities, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read locality: %w", err)
	}

	rows, err = pool.Query(ctx, embedsql.SelectGPCI)
	if err != nil {
		return nil, fmt.Errorf("query gpci: %w", err)
	}
	for rows.Next() {
		var r model.GPCIEntry
		if err := rows.Scan(&r.State, &r.LocalityNumber, &r.WorkMult, &r.ExpenseMult, &r.MalpracticeMult); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan gpci: %w", err)
		}
		set.GPCI = append(set.GPCI, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read gpci: %w", err)
	}

	rows, err = pool.Query(ctx, embedsql.SelectRVU)
	if err != nil {
		return nil, fmt.Errorf("query rvu: %w", err)
	}
	for rows.Next() {
		var r model.RVUEntry
		if err := rows.Scan(&r.Code, &r.WorkRVU, &r.ExpenseRVU, &r.MalpracticeRVU); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan rvu: %w", err)
		}
		set.RVU = append(set.RVU, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rvu: %w", err)
	}

	rows, err = pool.Query(ctx, embedsql.SelectPTPEdits)
	if err != nil {
		return nil, fmt.Errorf("query ptp_edit: %w", err)
	}
	for rows.Next() {
		var r model.PTPPair
		var from, until *time.Time
		if err := rows.Scan(&r.Column1Code, &r.Column2Code, &r.ModifierIndicator, &from, &until); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan ptp_edit: %w", err)
		}
		r.EffectiveFrom = from
		r.DeletedAfter = until
		set.PTP = append(set.PTP, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ptp_edit: %w", err)
	}

	rows, err = pool.Query(ctx, embedsql.SelectMUEEdits)
	if err != nil {
		return nil, fmt.Errorf("query mue_edit: %w", err)
	}
	for rows.Next() {
		var r model.MUEEntry
		if err := rows.Scan(&r.Code, &r.MaxUnits, &r.ServiceType); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan mue_edit: %w", err)
		}
		set.MUE = append(set.MUE, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read mue_edit: %w", err)
	}

	if err := readAddons(ctx, pool, set); err != nil {
		return nil, err
	}

	return set, nil
}

// readAddons regroups the (addon, primary) association rows into one
// AddonEntry per add-on code, preserving published order.
func readAddons(ctx context.Context, pool *pgxpool.Pool, set *ReferenceSet) error {
	rows, err := pool.Query(ctx, embedsql.SelectAddonEdits)
	if err != nil {
		return fmt.Errorf("query addon_edit: %w", err)
	}
	defer rows.Close()

	primaries := make(map[string][]string)
	var order []string
	for rows.Next() {
		var addon, primary string
		if err := rows.Scan(&addon, &primary); err != nil {
			return fmt.Errorf("scan addon_edit: %w", err)
		}
		if _, ok := primaries[addon]; !ok {
			order = append(order, addon)
		}
		primaries[addon] = append(primaries[addon], primary)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read addon_edit: %w", err)
	}

	for _, addon := range order {
		set.Addons = append(set.Addons, model.AddonEntry{AddonCode: addon, PrimaryCodes: primaries[addon]})
	}
	return nil
}
