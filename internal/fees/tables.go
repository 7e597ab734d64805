// Package fees prices procedure codes under the geographically adjusted
// physician fee schedule.
package fees

import (
	"github.com/gyeh/feesched/internal/model"
)

// GPCITable maps (state, locality number) to a geographic multiplier triple.
type GPCITable struct {
	byKey map[gpciKey]model.GPCIEntry
}

type gpciKey struct {
	state    string
	locality string
}

// NewGPCITable builds the lookup. Rows with a missing multiplier component
// signal unpublished data and are discarded by the loader before reaching
// here, so entries are taken as-is; first entry per key wins.
func NewGPCITable(rows []model.GPCIEntry) *GPCITable {
	byKey := make(map[gpciKey]model.GPCIEntry, len(rows))
	for _, r := range rows {
		k := gpciKey{state: r.State, locality: r.LocalityNumber}
		if _, ok := byKey[k]; !ok {
			byKey[k] = r
		}
	}
	return &GPCITable{byKey: byKey}
}

// Lookup returns the multipliers for a (state, locality number) pair.
// Exact match only.
func (t *GPCITable) Lookup(state, localityNumber string) (model.GPCIEntry, error) {
	entry, ok := t.byKey[gpciKey{state: state, locality: localityNumber}]
	if !ok {
		return model.GPCIEntry{}, &model.NotFoundError{
			Stage: model.StageGPCI,
			Key:   "state " + state + " locality " + localityNumber,
		}
	}
	return entry, nil
}

// RVUTable maps base procedure codes to relative-value triples. Rows carrying
// a modifier suffix never reach this table; a code with no qualifying row is
// absent, not zero.
type RVUTable struct {
	byCode map[string]model.RVUEntry
}

// NewRVUTable builds the lookup; first entry per code wins.
func NewRVUTable(rows []model.RVUEntry) *RVUTable {
	byCode := make(map[string]model.RVUEntry, len(rows))
	for _, r := range rows {
		if _, ok := byCode[r.Code]; !ok {
			byCode[r.Code] = r
		}
	}
	return &RVUTable{byCode: byCode}
}

// Lookup returns the relative values for a code. Exact match only.
func (t *RVUTable) Lookup(code string) (model.RVUEntry, error) {
	entry, ok := t.byCode[code]
	if !ok {
		return model.RVUEntry{}, &model.NotFoundError{Stage: model.StageRVU, Key: code}
	}
	return entry, nil
}
