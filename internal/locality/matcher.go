// Package locality assigns counties to Medicare payment localities.
package locality

import (
	"strings"

	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

const allCountiesSentinel = "ALL COUNTIES"
const exceptKeyword = "EXCEPT"

// Entry is a resolved locality assignment.
type Entry struct {
	State          string
	LocalityNumber string
	LocalityName   string
}

type exceptEntry struct {
	excluded map[string]bool
	entry    Entry
}

// Matcher resolves (state, county name) to a locality. Built once from
// locality reference rows and immutable afterwards. States are keyed by
// their canonical full name; the locality file labels rows with full names
// while the crosswalk supplies abbreviations, and normalize.State maps both
// onto the same key.
type Matcher struct {
	// specific maps state → normalized county name → entry.
	specific map[string]map[string]Entry
	// except holds "ALL COUNTIES EXCEPT ..." entries per state, in file order.
	except map[string][]exceptEntry
	// blanket holds "ALL COUNTIES" entries per state.
	blanket map[string]Entry
}

// NewMatcher builds a Matcher from locality rows. The loader has already
// carried state labels forward, so every row arrives with a non-empty state.
// A label may name several states joined by "/" ("MARYLAND/VIRGINIA"); the
// row registers under each. A scope is one of: an explicit county name, the
// sentinel "ALL COUNTIES", or "ALL COUNTIES EXCEPT a, b, ...".
func NewMatcher(rows []model.LocalityRow) *Matcher {
	m := &Matcher{
		specific: make(map[string]map[string]Entry),
		except:   make(map[string][]exceptEntry),
		blanket:  make(map[string]Entry),
	}
	for _, row := range rows {
		scope := strings.TrimSpace(row.CountyScope)
		if scope == "" || row.LocalityNumber == "" {
			continue
		}
		for _, label := range strings.Split(row.State, "/") {
			state := normalize.State(label)
			if state == "" {
				continue
			}
			entry := Entry{
				State:          state,
				LocalityNumber: row.LocalityNumber,
				LocalityName:   strings.TrimSpace(row.LocalityName),
			}
			upper := strings.ToUpper(scope)
			switch {
			case strings.HasPrefix(upper, allCountiesSentinel) && strings.Contains(upper, exceptKeyword):
				m.except[state] = append(m.except[state], exceptEntry{
					excluded: parseExclusions(upper),
					entry:    entry,
				})
			case upper == allCountiesSentinel:
				if _, ok := m.blanket[state]; !ok {
					m.blanket[state] = entry
				}
			default:
				key := normalize.County(scope)
				if key == "" {
					continue
				}
				if m.specific[state] == nil {
					m.specific[state] = make(map[string]Entry)
				}
				if _, ok := m.specific[state][key]; !ok {
					m.specific[state][key] = entry
				}
			}
		}
	}
	return m
}

// parseExclusions extracts the normalized county names after EXCEPT.
func parseExclusions(upperScope string) map[string]bool {
	_, rest, ok := strings.Cut(upperScope, exceptKeyword)
	excluded := make(map[string]bool)
	if !ok {
		return excluded
	}
	rest = strings.ReplaceAll(rest, " AND ", ",")
	rest = strings.ReplaceAll(rest, "/", ",")
	for _, part := range strings.Split(rest, ",") {
		if key := normalize.County(part); key != "" {
			excluded[key] = true
		}
	}
	return excluded
}

// Find resolves a county to its locality. State accepts an abbreviation or
// a full name. Resolution order: explicit entry, then an exception entry
// that does not exclude the county, then the state's blanket entry. An
// unmatched county is a lookup failure, never a default.
func (m *Matcher) Find(state, countyName string) (Entry, error) {
	state = normalize.State(state)
	key := normalize.County(countyName)

	if entry, ok := m.specific[state][key]; ok {
		return entry, nil
	}
	for _, ex := range m.except[state] {
		if !ex.excluded[key] {
			return ex.entry, nil
		}
	}
	if entry, ok := m.blanket[state]; ok {
		return entry, nil
	}
	return Entry{}, &model.NotFoundError{
		Stage: model.StageLocality,
		Key:   countyName + " in " + state,
	}
}
