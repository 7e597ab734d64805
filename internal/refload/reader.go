// Package refload parses the raw published reference files into typed rows.
// Parsers reject structurally broken files but quietly drop individual rows
// with missing components: an absent value signals unpublished data, not a
// true zero.
package refload

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadError reports a structurally invalid reference file. The process
// treats this as fatal and refuses to serve queries until corrected.
type LoadError struct {
	File string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s line %d: %s", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// openCSV opens path as a CSV reader, skipping a UTF-8 BOM if present.
// The published files mix quoting styles, so lazy quotes and variable
// field counts are tolerated.
func openCSV(path string) (*csv.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	buf := bufio.NewReaderSize(f, 256*1024)
	if bom, err := buf.Peek(3); err == nil && len(bom) == 3 &&
		bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		buf.Discard(3)
	}

	r := csv.NewReader(buf)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r, f.Close, nil
}

// headerIndex builds a lookup from trimmed, lowercased header names to
// column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// findColumn returns the position of the first header cell containing any of
// the candidates (case-insensitive). The published files rename columns
// between schedule years ("2025 PE GPCI"), so substring matching is the only
// stable contract.
func findColumn(header []string, candidates ...string) (int, bool) {
	for i, h := range header {
		cell := strings.ToLower(strings.TrimSpace(h))
		for _, c := range candidates {
			if strings.Contains(cell, strings.ToLower(c)) {
				return i, true
			}
		}
	}
	return 0, false
}

// field returns the trimmed cell at position i, or "" when the record is
// short. The locality and RVU files pad rows unevenly.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// zfill left-pads a numeric string with zeros to the given width.
func zfill(s string, width int) string {
	s = strings.TrimSpace(s)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
