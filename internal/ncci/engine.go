package ncci

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// Engine evaluates batches of billing lines against the loaded edit tables.
// Stateless across calls; safe for concurrent use.
type Engine struct {
	tables *Tables
}

// NewEngine wraps the edit tables in an evaluator.
func NewEngine(tables *Tables) *Engine {
	return &Engine{tables: tables}
}

// Evaluate runs all three checks against the batch as of today.
func (e *Engine) Evaluate(lines []model.BillingLine) ([]model.Violation, error) {
	return e.EvaluateAt(lines, time.Now())
}

// EvaluateAt runs the PTP, MUE, and orphan add-on checks against the batch,
// with PTP date ranges evaluated as of asOf. The three result sets are
// concatenated in a stable order: PTP violations in pair-evaluation order,
// then MUE in code-first-seen order, then orphan add-ons in code-first-seen
// order. A code absent from a rule table simply skips that check; absence of
// a limit is not a violation.
func (e *Engine) EvaluateAt(lines []model.BillingLine, asOf time.Time) ([]model.Violation, error) {
	batch, err := normalizeLines(lines)
	if err != nil {
		return nil, err
	}

	var violations []model.Violation
	violations = append(violations, e.checkPTP(batch, asOf)...)
	violations = append(violations, e.checkMUE(batch)...)
	violations = append(violations, e.checkAddons(batch)...)
	return violations, nil
}

// normalizeLines validates and canonicalizes the batch before any lookup.
// A zero unit count is treated as one unit.
func normalizeLines(lines []model.BillingLine) ([]model.BillingLine, error) {
	out := make([]model.BillingLine, len(lines))
	for i, l := range lines {
		code := normalize.Code(l.Code)
		if code == "" {
			return nil, &model.InputError{Field: "code", Value: l.Code, Reason: fmt.Sprintf("line %d has an empty procedure code", i+1)}
		}
		if l.Units < 0 {
			return nil, &model.InputError{Field: "units", Value: fmt.Sprintf("%d", l.Units), Reason: fmt.Sprintf("line %d has a negative unit count", i+1)}
		}
		units := l.Units
		if units == 0 {
			units = 1
		}
		mods := make([]string, 0, len(l.Modifiers))
		for _, m := range l.Modifiers {
			mod := normalize.Code(m)
			if mod == "" {
				continue
			}
			if len(mod) != 2 {
				return nil, &model.InputError{Field: "modifier", Value: m, Reason: fmt.Sprintf("line %d has a malformed modifier", i+1)}
			}
			mods = append(mods, mod)
		}
		out[i] = model.BillingLine{Code: code, Modifiers: mods, Units: units}
	}
	return out, nil
}

// checkPTP examines every unordered pair of distinct-code lines. Two lines
// with the same code are a unit question, not a pair conflict, and are left
// to the MUE check.
func (e *Engine) checkPTP(lines []model.BillingLine, asOf time.Time) []model.Violation {
	var violations []model.Violation
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if lines[i].Code == lines[j].Code {
				continue
			}
			pair, ok := e.tables.ptpPair(lines[i].Code, lines[j].Code)
			if !ok || !pair.InEffect(asOf) {
				continue
			}
			switch pair.ModifierIndicator {
			case "9":
				// Edit not applicable.
				continue
			case "1":
				if hasBypassModifier(lines[i]) || hasBypassModifier(lines[j]) {
					continue
				}
				violations = append(violations, model.Violation{
					Kind:   model.ViolationPTP,
					Codes:  []string{pair.Column1Code, pair.Column2Code},
					Detail: fmt.Sprintf("%s and %s may not be billed together; an appropriate modifier (e.g. 59) would bypass this edit", pair.Column1Code, pair.Column2Code),
				})
			default:
				// Indicator "0": never bypassable. Anything unrecognized is
				// treated the same way rather than silently waved through.
				violations = append(violations, model.Violation{
					Kind:   model.ViolationPTP,
					Codes:  []string{pair.Column1Code, pair.Column2Code},
					Detail: fmt.Sprintf("%s and %s may never be billed together", pair.Column1Code, pair.Column2Code),
				})
			}
		}
	}
	return violations
}

func hasBypassModifier(line model.BillingLine) bool {
	for _, m := range line.Modifiers {
		if BypassModifiers[m] {
			return true
		}
	}
	return false
}

// checkMUE sums units per code across the batch and compares each total
// against the published ceiling.
func (e *Engine) checkMUE(lines []model.BillingLine) []model.Violation {
	totals := make(map[string]int)
	var order []string
	for _, l := range lines {
		if _, seen := totals[l.Code]; !seen {
			order = append(order, l.Code)
		}
		totals[l.Code] += l.Units
	}

	var violations []model.Violation
	for _, code := range order {
		entry, ok := e.tables.mueEntry(code)
		if !ok {
			continue
		}
		if totals[code] > entry.MaxUnits {
			violations = append(violations, model.Violation{
				Kind:   model.ViolationMUE,
				Codes:  []string{code},
				Detail: fmt.Sprintf("%s billed for %d units, exceeding the limit of %d", code, totals[code], entry.MaxUnits),
			})
		}
	}
	return violations
}

// checkAddons flags add-on codes billed without any of their valid primary
// codes in the same batch. One violation per distinct orphaned add-on code.
func (e *Engine) checkAddons(lines []model.BillingLine) []model.Violation {
	present := make(map[string]bool, len(lines))
	for _, l := range lines {
		present[l.Code] = true
	}

	reported := make(map[string]bool)
	var violations []model.Violation
	for _, l := range lines {
		if reported[l.Code] {
			continue
		}
		primaries, ok := e.tables.addonPrimaries(l.Code)
		if !ok {
			continue
		}
		reported[l.Code] = true
		if anyPresent(present, primaries) {
			continue
		}
		violations = append(violations, model.Violation{
			Kind:   model.ViolationAddon,
			Codes:  []string{l.Code},
			Detail: fmt.Sprintf("add-on code %s billed without a primary procedure (expects one of: %s)", l.Code, strings.Join(primaries, ", ")),
		})
	}
	return violations
}

func anyPresent(present map[string]bool, codes []string) bool {
	for _, c := range codes {
		if present[c] {
			return true
		}
	}
	return false
}
