package refload

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/model"
)

// CountyReference parses the census county reference file: headerless CSV of
// (state abbr, state FIPS, county FIPS, county name, class code). The county
// identifier is the 2-digit state FIPS concatenated with the 3-digit county
// FIPS, zero-padded.
func CountyReference(path string, log zerolog.Logger) ([]model.CountyName, error) {
	r, closeFile, err := openCSV(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer closeFile()

	seen := make(map[string]bool)
	var rows []model.CountyName
	var dropped int
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{File: path, Line: line + 1, Err: err}
		}
		line++

		if len(record) < 4 {
			dropped++
			continue
		}
		stateFIPS := field(record, 1)
		countyFIPS := field(record, 2)
		name := field(record, 3)
		if stateFIPS == "" || countyFIPS == "" || name == "" {
			dropped++
			continue
		}
		id := zfill(stateFIPS, 2) + zfill(countyFIPS, 3)
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, model.CountyName{CountyID: id, Name: name})
	}

	if len(rows) == 0 {
		return nil, &LoadError{File: path, Err: fmt.Errorf("no county reference rows")}
	}
	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Int("dropped", dropped).
		Msg("county reference loaded")
	return rows, nil
}
