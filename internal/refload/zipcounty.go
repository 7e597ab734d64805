package refload

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/model"
)

// ZipCounty parses the ZIP-county crosswalk CSV. Expected header columns:
// ZIP, COUNTY, USPS_ZIP_PREF_STATE, RES_RATIO (extra columns are ignored).
// ZIP and county codes are zero-padded to their canonical widths. Rows with
// an unparseable residential ratio are dropped. Row order is preserved; it
// is the documented tie-break order for equal ratios.
func ZipCounty(path string, log zerolog.Logger) ([]model.ZipCountyRow, error) {
	r, closeFile, err := openCSV(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer closeFile()

	header, err := r.Read()
	if err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("read header: %w", err)}
	}
	idx := headerIndex(header)
	zipCol, okZIP := idx["zip"]
	countyCol, okCounty := idx["county"]
	stateCol, okState := idx["usps_zip_pref_state"]
	ratioCol, okRatio := idx["res_ratio"]
	if !okZIP || !okCounty || !okState || !okRatio {
		return nil, &LoadError{File: path, Err: fmt.Errorf("missing required columns in header %v", header)}
	}

	var rows []model.ZipCountyRow
	var dropped int
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{File: path, Line: line + 1, Err: err}
		}
		line++

		zip := field(record, zipCol)
		county := field(record, countyCol)
		state := field(record, stateCol)
		if zip == "" || county == "" || state == "" {
			dropped++
			continue
		}
		ratio, err := strconv.ParseFloat(field(record, ratioCol), 64)
		if err != nil {
			dropped++
			continue
		}
		rows = append(rows, model.ZipCountyRow{
			ZIP:              zfill(zip, 5),
			CountyID:         zfill(county, 5),
			State:            state,
			ResidentialRatio: ratio,
		})
	}

	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Int("dropped", dropped).
		Msg("zip-county crosswalk loaded")
	return rows, nil
}
