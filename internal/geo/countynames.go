package geo

import (
	"github.com/gyeh/feesched/internal/model"
)

// CountyNames maps FIPS county identifiers to display names.
type CountyNames struct {
	byID map[string]string
}

// NewCountyNames builds the lookup from county reference rows. Later
// duplicates of the same county identifier are ignored.
func NewCountyNames(rows []model.CountyName) *CountyNames {
	byID := make(map[string]string, len(rows))
	for _, r := range rows {
		if _, ok := byID[r.CountyID]; !ok {
			byID[r.CountyID] = r.Name
		}
	}
	return &CountyNames{byID: byID}
}

// Name returns the display name for a FIPS county identifier.
func (c *CountyNames) Name(countyID string) (string, error) {
	name, ok := c.byID[countyID]
	if !ok {
		return "", &model.NotFoundError{Stage: model.StageCountyName, Key: countyID}
	}
	return name, nil
}
