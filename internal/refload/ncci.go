package refload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// PTP parses the procedure-to-procedure edit file: tab-delimited with a
// copyright/header preamble of variable length. Lines are skipped until the
// first field looks like a procedure code. Columns are column-1 code,
// column-2 code, effective date, deletion date, and (one column later in
// newer file versions) the modifier indicator. Duplicate pairs keep the
// first row, matching the published file's own dedupe rule.
func PTP(path string, log zerolog.Logger) ([]model.PTPPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer f.Close()

	type pairKey struct{ c1, c2 string }
	seen := make(map[pairKey]bool)
	var rows []model.PTPPair
	var dropped int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		c1 := normalize.Code(fieldAt(fields, 0))
		c2 := normalize.Code(fieldAt(fields, 1))
		if !plausibleCode(c1) || !plausibleCode(c2) {
			// Preamble, blank, or junk line.
			dropped++
			continue
		}
		key := pairKey{c1: c1, c2: c2}
		if seen[key] {
			continue
		}
		seen[key] = true

		indicator := fieldAt(fields, 5)
		if indicator == "" {
			indicator = fieldAt(fields, 4)
		}
		rows = append(rows, model.PTPPair{
			Column1Code:       c1,
			Column2Code:       c2,
			ModifierIndicator: indicator,
			EffectiveFrom:     normalize.ParseDate(fieldAt(fields, 2)),
			DeletedAfter:      normalize.ParseDate(fieldAt(fields, 3)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{File: path, Line: line, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{File: path, Err: fmt.Errorf("no PTP edit rows")}
	}

	log.Info().
		Str("file", path).
		Int("rows", len(rows)).
		Int("skipped", dropped).
		Msg("PTP edits loaded")
	return rows, nil
}

// MUE parses the medically unlikely edit CSV. Columns are matched by
// substring: the code column contains "hcpcs", the ceiling column contains
// "mue value". serviceType labels the file variant (practitioner, facility,
// DME) on every entry.
func MUE(path, serviceType string, log zerolog.Logger) ([]model.MUEEntry, error) {
	r, closeFile, err := openCSV(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer closeFile()

	header, err := r.Read()
	if err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("read header: %w", err)}
	}
	codeCol, okCode := findColumn(header, "hcpcs")
	unitsCol, okUnits := findColumn(header, "mue value", "mue_value", "max units")
	if !okCode || !okUnits {
		return nil, &LoadError{File: path, Err: fmt.Errorf("missing required columns in header %v", header)}
	}

	seen := make(map[string]bool)
	var rows []model.MUEEntry
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

		code := normalize.Code(field(record, codeCol))
		units, unitsErr := strconv.Atoi(field(record, unitsCol))
		if code == "" || unitsErr != nil || seen[code] {
			dropped++
			continue
		}
		seen[code] = true
		rows = append(rows, model.MUEEntry{
			Code:        code,
			MaxUnits:    units,
			ServiceType: serviceType,
		})
	}

	log.Info().
		Str("file", path).
		Str("service_type", serviceType).
		Int("rows", len(rows)).
		Int("dropped", dropped).
		Msg("MUE edits loaded")
	return rows, nil
}

// Addon parses the add-on code file: tab-delimited, one row per
// (add-on code, primary code) association, aggregated per add-on code in
// file order. Rows whose primary column is empty declare an add-on with
// universal primaries and are skipped; the engine only flags add-ons with an
// explicit primary list.
func Addon(path string, log zerolog.Logger) ([]model.AddonEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer f.Close()

	primaries := make(map[string][]string)
	var order []string
	var dropped int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		addon := normalize.Code(fieldAt(fields, 0))
		primary := normalize.Code(fieldAt(fields, 1))
		if !plausibleCode(addon) {
			// Header or junk line.
			dropped++
			continue
		}
		if !plausibleCode(primary) {
			dropped++
			continue
		}
		if _, ok := primaries[addon]; !ok {
			order = append(order, addon)
		}
		primaries[addon] = append(primaries[addon], primary)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{File: path, Line: line, Err: err}
	}

	rows := make([]model.AddonEntry, 0, len(order))
	for _, addon := range order {
		rows = append(rows, model.AddonEntry{AddonCode: addon, PrimaryCodes: primaries[addon]})
	}

	log.Info().
		Str("file", path).
		Int("addon_codes", len(rows)).
		Int("skipped", dropped).
		Msg("add-on edits loaded")
	return rows, nil
}

func fieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// plausibleCode reports whether s looks like a 5-character HCPCS/CPT code.
// Used to separate data lines from preamble text in headerless files.
func plausibleCode(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
