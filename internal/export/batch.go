package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Pair is one batch pricing request: a procedure code and a ZIP code.
type Pair struct {
	Code string
	ZIP  string
}

// ReadPairs parses a batch input CSV of (code, zip) rows. A first row whose
// cells are not plausible inputs is treated as a header and skipped. Blank
// lines are ignored.
func ReadPairs(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var pairs []Pair
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line+1, err)
		}
		line++

		if len(record) < 2 {
			continue
		}
		code := strings.TrimSpace(record[0])
		zip := strings.TrimSpace(record[1])
		if code == "" && zip == "" {
			continue
		}
		if line == 1 && looksLikeHeader(code, zip) {
			continue
		}
		pairs = append(pairs, Pair{Code: code, ZIP: zip})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no input rows in %s", path)
	}
	return pairs, nil
}

func looksLikeHeader(code, zip string) bool {
	return strings.EqualFold(code, "code") || strings.EqualFold(zip, "zip")
}
