// Package store moves the reference tables between their three homes: raw
// published files, Postgres, and the immutable in-memory tables the cores
// query. The cores do not care which source a ReferenceSet came from.
package store

import (
	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/fees"
	"github.com/gyeh/feesched/internal/geo"
	"github.com/gyeh/feesched/internal/locality"
	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/ncci"
	"github.com/gyeh/feesched/internal/refload"
)

// ReferenceSet holds all parsed reference rows. Built once per process,
// treated as immutable afterwards.
type ReferenceSet struct {
	ZipCounty   []model.ZipCountyRow
	CountyNames []model.CountyName
	Localities  []model.LocalityRow
	GPCI        []model.GPCIEntry
	RVU         []model.RVUEntry
	PTP         []model.PTPPair
	MUE         []model.MUEEntry
	Addons      []model.AddonEntry
}

// Files names the source files for each reference table. Empty paths skip
// that table.
type Files struct {
	ZipCounty      string
	CountyNames    string
	Locality       string
	GPCI           string
	RVU            string
	PTP            string
	MUE            string
	MUEServiceType string
	Addon          string
}

// FromFiles parses the named files directly into a ReferenceSet, bypassing
// Postgres entirely. The cores behave identically either way.
func FromFiles(files Files, log zerolog.Logger) (*ReferenceSet, error) {
	set := &ReferenceSet{}
	var err error
	if files.ZipCounty != "" {
		if set.ZipCounty, err = refload.ZipCounty(files.ZipCounty, log); err != nil {
			return nil, err
		}
	}
	if files.CountyNames != "" {
		if set.CountyNames, err = refload.CountyReference(files.CountyNames, log); err != nil {
			return nil, err
		}
	}
	if files.Locality != "" {
		if set.Localities, err = refload.Locality(files.Locality, log); err != nil {
			return nil, err
		}
	}
	if files.GPCI != "" {
		if set.GPCI, err = refload.GPCI(files.GPCI, log); err != nil {
			return nil, err
		}
	}
	if files.RVU != "" {
		if set.RVU, err = refload.RVU(files.RVU, log); err != nil {
			return nil, err
		}
	}
	if files.PTP != "" {
		if set.PTP, err = refload.PTP(files.PTP, log); err != nil {
			return nil, err
		}
	}
	if files.MUE != "" {
		if set.MUE, err = refload.MUE(files.MUE, files.MUEServiceType, log); err != nil {
			return nil, err
		}
	}
	if files.Addon != "" {
		if set.Addons, err = refload.Addon(files.Addon, log); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Calculator assembles the pricing pipeline from the loaded rows.
func (s *ReferenceSet) Calculator(conversionFactor float64) *fees.Calculator {
	return fees.NewCalculator(
		geo.NewResolver(s.ZipCounty),
		geo.NewCountyNames(s.CountyNames),
		locality.NewMatcher(s.Localities),
		fees.NewGPCITable(s.GPCI),
		fees.NewRVUTable(s.RVU),
		conversionFactor,
	)
}

// Engine assembles the compliance engine from the loaded rows.
func (s *ReferenceSet) Engine() *ncci.Engine {
	return ncci.NewEngine(ncci.NewTables(s.PTP, s.MUE, s.Addons))
}
