package fees

import (
	"math"

	"github.com/gyeh/feesched/internal/geo"
	"github.com/gyeh/feesched/internal/locality"
	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// DefaultConversionFactor is the 2025 physician fee schedule dollars-per-RVU
// constant. Configuration may override it for a different schedule year.
const DefaultConversionFactor = 32.35

// Calculator composes the geographic resolution pipeline with the RVU and
// GPCI tables. All components are immutable after construction, so a single
// Calculator is safe for concurrent use.
type Calculator struct {
	geo              *geo.Resolver
	counties         *geo.CountyNames
	localities       *locality.Matcher
	gpci             *GPCITable
	rvu              *RVUTable
	conversionFactor float64
}

// NewCalculator wires the pipeline. A non-positive conversionFactor falls
// back to DefaultConversionFactor.
func NewCalculator(g *geo.Resolver, counties *geo.CountyNames, localities *locality.Matcher, gpci *GPCITable, rvu *RVUTable, conversionFactor float64) *Calculator {
	if conversionFactor <= 0 {
		conversionFactor = DefaultConversionFactor
	}
	return &Calculator{
		geo:              g,
		counties:         counties,
		localities:       localities,
		gpci:             gpci,
		rvu:              rvu,
		conversionFactor: conversionFactor,
	}
}

// Quote is the result of a single pricing call, with the intermediate
// resolution steps exposed for display.
type Quote struct {
	Code           string
	ZIP            string
	CountyID       string
	CountyName     string
	State          string
	LocalityNumber string
	LocalityName   string
	Amount         float64
}

// Price resolves a procedure code and ZIP to a reimbursable dollar amount:
// ZIP → county → county name → locality → GPCI, code → RVU, then
// Σ(rvu·gpci) × conversion factor, half-up rounded to cents. Failure at any
// stage aborts the whole call with that stage's NotFoundError; there is no
// partial or degraded price.
func (c *Calculator) Price(code, zip string) (float64, error) {
	q, err := c.Quote(code, zip)
	if err != nil {
		return 0, err
	}
	return q.Amount, nil
}

// Quote is Price with the intermediate pipeline results retained.
func (c *Calculator) Quote(code, zip string) (*Quote, error) {
	normalizedZIP, err := normalize.ZIP(zip)
	if err != nil {
		return nil, &model.InputError{Field: "zip", Value: zip, Reason: err.Error()}
	}
	normalizedCode := normalize.Code(code)
	if normalizedCode == "" {
		return nil, &model.InputError{Field: "code", Value: code, Reason: "empty procedure code"}
	}

	countyID, state, err := c.geo.Resolve(normalizedZIP)
	if err != nil {
		return nil, err
	}
	countyName, err := c.counties.Name(countyID)
	if err != nil {
		return nil, err
	}
	loc, err := c.localities.Find(state, countyName)
	if err != nil {
		return nil, err
	}
	gpci, err := c.gpci.Lookup(state, loc.LocalityNumber)
	if err != nil {
		return nil, err
	}
	rvu, err := c.rvu.Lookup(normalizedCode)
	if err != nil {
		return nil, err
	}

	amount := (rvu.WorkRVU*gpci.WorkMult +
		rvu.ExpenseRVU*gpci.ExpenseMult +
		rvu.MalpracticeRVU*gpci.MalpracticeMult) * c.conversionFactor

	return &Quote{
		Code:           normalizedCode,
		ZIP:            normalizedZIP,
		CountyID:       countyID,
		CountyName:     countyName,
		State:          state,
		LocalityNumber: loc.LocalityNumber,
		LocalityName:   loc.LocalityName,
		Amount:         roundHalfUp(amount),
	}, nil
}

// roundHalfUp rounds to 2 decimal places with halves rounding up.
// Prices are never negative.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
