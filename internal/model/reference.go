package model

import "time"

// ZipCountyRow is one ZIP→county association from the ZIP-county crosswalk.
// A ZIP may map to several counties; uniqueness is per (ZIP, CountyID).
type ZipCountyRow struct {
	ZIP              string
	CountyID         string
	State            string
	ResidentialRatio float64
}

// CountyName maps a 5-digit FIPS county identifier to its display name.
type CountyName struct {
	CountyID string
	Name     string
}

// LocalityRow is one raw row of the county→locality reference. State is the
// carried-forward state label; CountyScope is either an explicit county name,
// the sentinel "ALL COUNTIES", or "ALL COUNTIES EXCEPT a, b, ...".
type LocalityRow struct {
	State          string
	CountyScope    string
	LocalityNumber string
	LocalityName   string
}

// GPCIEntry holds the geographic multiplier triple for one (state, locality).
type GPCIEntry struct {
	State           string
	LocalityNumber  string
	WorkMult        float64
	ExpenseMult     float64
	MalpracticeMult float64
}

// RVUEntry holds the relative-value triple for one base (unmodified) code.
type RVUEntry struct {
	Code           string
	WorkRVU        float64
	ExpenseRVU     float64
	MalpracticeRVU float64
}

// PTPPair is one procedure-to-procedure edit: Column1Code and Column2Code may
// not be billed together while the edit is in effect, subject to the modifier
// indicator ("0" never bypassable, "1" bypassable, "9" not applicable).
type PTPPair struct {
	Column1Code       string
	Column2Code       string
	ModifierIndicator string
	EffectiveFrom     *time.Time
	DeletedAfter      *time.Time
}

// InEffect reports whether the edit applies on the given date.
func (p PTPPair) InEffect(asOf time.Time) bool {
	if p.EffectiveFrom != nil && asOf.Before(*p.EffectiveFrom) {
		return false
	}
	if p.DeletedAfter != nil && asOf.After(*p.DeletedAfter) {
		return false
	}
	return true
}

// MUEEntry is the per-code unit ceiling for a single date of service.
type MUEEntry struct {
	Code        string
	MaxUnits    int
	ServiceType string
}

// AddonEntry lists the primary codes that make an add-on code payable.
type AddonEntry struct {
	AddonCode    string
	PrimaryCodes []string
}
