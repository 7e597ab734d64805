package refload

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// Locality parses the county→locality reference CSV. Expected header columns
// (matched by substring): State, Locality Number, Fee Schedule Area,
// Counties. The source file carries the state label only on the first row of
// each state's run; this loader carries the most recently seen non-empty
// label forward onto subsequent blank-labeled rows, so row order matters and
// the carry is done here, in a single pass, not as a later gap fill.
func Locality(path string, log zerolog.Logger) ([]model.LocalityRow, error) {
	r, closeFile, err := openCSV(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer closeFile()

	header, err := r.Read()
	if err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("read header: %w", err)}
	}
	stateCol, okState := findColumn(header, "state")
	numberCol, okNumber := findColumn(header, "locality number", "locality")
	areaCol, okArea := findColumn(header, "fee schedule area", "locality name")
	countiesCol, okCounties := findColumn(header, "counties", "county")
	if !okState || !okNumber || !okArea || !okCounties {
		return nil, &LoadError{File: path, Err: fmt.Errorf("missing required columns in header %v", header)}
	}

	var rows []model.LocalityRow
	var dropped int
	carriedState := ""
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

		if state := field(record, stateCol); state != "" {
			carriedState = state
		}
		counties := field(record, countiesCol)
		number, numErr := normalize.LocalityNumber(field(record, numberCol))
		if carriedState == "" || counties == "" || numErr != nil {
			dropped++
			continue
		}
		rows = append(rows, model.LocalityRow{
			State:          carriedState,
			CountyScope:    counties,
			LocalityNumber: number,
			LocalityName:   field(record, areaCol),
		})
	}

	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Int("dropped", dropped).
		Msg("locality reference loaded")
	return rows, nil
}
