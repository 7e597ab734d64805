// Package geo resolves ZIP codes to counties using the ZIP-county crosswalk.
package geo

import (
	"github.com/gyeh/feesched/internal/model"
)

// Resolver maps a ZIP code to its dominant county. Built once from crosswalk
// rows and immutable afterwards; safe for concurrent use.
type Resolver struct {
	byZIP map[string][]model.ZipCountyRow
}

// NewResolver builds a Resolver from crosswalk rows. Row order is preserved
// per ZIP: it is the tie-break order for equal residential ratios.
func NewResolver(rows []model.ZipCountyRow) *Resolver {
	byZIP := make(map[string][]model.ZipCountyRow)
	for _, r := range rows {
		byZIP[r.ZIP] = append(byZIP[r.ZIP], r)
	}
	return &Resolver{byZIP: byZIP}
}

// Resolve returns the county identifier and state for a ZIP code. Postal ZIPs
// do not align with county boundaries, so a multi-county ZIP resolves to the
// county with the highest residential ratio (the dominant-residence rule).
// Ties keep the first row in crosswalk order.
func (r *Resolver) Resolve(zip string) (countyID, state string, err error) {
	rows := r.byZIP[zip]
	if len(rows) == 0 {
		return "", "", &model.NotFoundError{Stage: model.StageZipCounty, Key: zip}
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.ResidentialRatio > best.ResidentialRatio {
			best = row
		}
	}
	return best.CountyID, best.State, nil
}
