package refload

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// GPCI parses the geographic practice cost index CSV. Header columns are
// matched by substring since the published file prefixes them with the
// schedule year ("2025 PE GPCI"). Rows missing any of the three multipliers
// are dropped rather than defaulted: an absent multiplier is unpublished
// data, not 1.0 and not 0.
func GPCI(path string, log zerolog.Logger) ([]model.GPCIEntry, error) {
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
	workCol, okWork := findColumn(header, "pw gpci", "work")
	expenseCol, okExpense := findColumn(header, "pe gpci", "practice expense")
	malpracticeCol, okMalpractice := findColumn(header, "mp gpci", "malpractice")
	if !okState || !okNumber || !okWork || !okExpense || !okMalpractice {
		return nil, &LoadError{File: path, Err: fmt.Errorf("missing required columns in header %v", header)}
	}

	type localityKey struct{ state, number string }
	seen := make(map[localityKey]bool)
	var rows []model.GPCIEntry
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

		state := field(record, stateCol)
		number, numErr := normalize.LocalityNumber(field(record, numberCol))
		if state == "" || numErr != nil {
			dropped++
			continue
		}
		work, err1 := strconv.ParseFloat(field(record, workCol), 64)
		expense, err2 := strconv.ParseFloat(field(record, expenseCol), 64)
		malpractice, err3 := strconv.ParseFloat(field(record, malpracticeCol), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			dropped++
			continue
		}
		key := localityKey{state: state, number: number}
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, model.GPCIEntry{
			State:           state,
			LocalityNumber:  number,
			WorkMult:        work,
			ExpenseMult:     expense,
			MalpracticeMult: malpractice,
		})
	}

	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Int("dropped", dropped).
		Msg("GPCI reference loaded")
	return rows, nil
}
