package refload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// RVU parses the relative-value file. The published file opens with several
// preamble lines, so records are skipped until the header row starting with
// HCPCS. Rows carrying a non-empty modifier are excluded: only base code
// rows participate in standard pricing. Rows missing any RVU component are
// dropped, and the first row per code wins.
func RVU(path string, log zerolog.Logger) ([]model.RVUEntry, error) {
	r, closeFile, err := openCSV(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer closeFile()

	header, headerLine, err := seekRVUHeader(r)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	codeCol, _ := findColumn(header, "hcpcs")
	modCol, okMod := findColumn(header, "mod")
	workCol, okWork := findColumn(header, "work rvu", "pw rvu")
	expenseCol, okExpense := findColumn(header, "pe rvu", "practice expense")
	malpracticeCol, okMalpractice := findColumn(header, "mp rvu", "malpractice")
	if !okMod || !okWork || !okExpense || !okMalpractice {
		return nil, &LoadError{File: path, Err: fmt.Errorf("missing required columns in header %v", header)}
	}

	seen := make(map[string]bool)
	var rows []model.RVUEntry
	var dropped, modifierRows int
	line := headerLine
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{File: path, Line: line + 1, Err: err}
		}
		line++

		code := normalize.Code(field(record, codeCol))
		if code == "" {
			dropped++
			continue
		}
		if field(record, modCol) != "" {
			modifierRows++
			continue
		}
		if seen[code] {
			continue
		}
		work, err1 := strconv.ParseFloat(field(record, workCol), 64)
		expense, err2 := strconv.ParseFloat(field(record, expenseCol), 64)
		malpractice, err3 := strconv.ParseFloat(field(record, malpracticeCol), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			dropped++
			continue
		}
		seen[code] = true
		rows = append(rows, model.RVUEntry{
			Code:           code,
			WorkRVU:        work,
			ExpenseRVU:     expense,
			MalpracticeRVU: malpractice,
		})
	}

	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Int("modifier_rows", modifierRows).
		Int("dropped", dropped).
		Msg("RVU reference loaded")
	return rows, nil
}

// seekRVUHeader reads records until the header row whose first cell is HCPCS.
func seekRVUHeader(r *csv.Reader) ([]string, int, error) {
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil, line, fmt.Errorf("no HCPCS header row found")
		}
		if err != nil {
			return nil, line, err
		}
		line++
		if len(record) > 0 && strings.HasPrefix(strings.ToUpper(strings.TrimSpace(record[0])), "HCPCS") {
			return record, line, nil
		}
	}
}
