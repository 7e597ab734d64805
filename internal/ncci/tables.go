// Package ncci evaluates billed procedure codes against the National Correct
// Coding Initiative edit tables: procedure-to-procedure (PTP) conflicts,
// medically unlikely edit (MUE) unit ceilings, and add-on code requirements.
package ncci

import (
	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

// BypassModifiers are the modifiers that authorize bypassing a PTP edit with
// modifier indicator "1": the distinct-service modifiers 59/XE/XP/XS/XU plus
// the anatomic set.
var BypassModifiers = map[string]bool{
	"59": true, "XE": true, "XP": true, "XS": true, "XU": true,
	"LT": true, "RT": true,
	"E1": true, "E2": true, "E3": true, "E4": true,
	"FA": true, "F1": true, "F2": true, "F3": true, "F4": true,
	"F5": true, "F6": true, "F7": true, "F8": true, "F9": true,
	"TA": true, "T1": true, "T2": true, "T3": true, "T4": true,
	"T5": true, "T6": true, "T7": true, "T8": true, "T9": true,
	"LC": true, "LD": true, "RC": true, "RI": true,
}

type pairKey struct {
	column1 string
	column2 string
}

// Tables holds the three edit tables, built once and read-only afterwards.
type Tables struct {
	ptp    map[pairKey]model.PTPPair
	mue    map[string]model.MUEEntry
	addons map[string][]string
}

// NewTables builds the edit tables. Duplicate PTP pairs and MUE codes keep
// the first row, matching the published files' keep-first dedupe rule.
func NewTables(ptp []model.PTPPair, mue []model.MUEEntry, addons []model.AddonEntry) *Tables {
	t := &Tables{
		ptp:    make(map[pairKey]model.PTPPair, len(ptp)),
		mue:    make(map[string]model.MUEEntry, len(mue)),
		addons: make(map[string][]string, len(addons)),
	}
	for _, p := range ptp {
		c1 := normalize.Code(p.Column1Code)
		c2 := normalize.Code(p.Column2Code)
		if c1 == "" || c2 == "" {
			continue
		}
		k := pairKey{column1: c1, column2: c2}
		if _, ok := t.ptp[k]; !ok {
			p.Column1Code = c1
			p.Column2Code = c2
			t.ptp[k] = p
		}
	}
	for _, m := range mue {
		code := normalize.Code(m.Code)
		if code == "" {
			continue
		}
		if _, ok := t.mue[code]; !ok {
			m.Code = code
			t.mue[code] = m
		}
	}
	for _, a := range addons {
		code := normalize.Code(a.AddonCode)
		if code == "" {
			continue
		}
		primaries := make([]string, 0, len(a.PrimaryCodes))
		for _, p := range a.PrimaryCodes {
			if pc := normalize.Code(p); pc != "" {
				primaries = append(primaries, pc)
			}
		}
		t.addons[code] = append(t.addons[code], primaries...)
	}
	return t
}

// ptpPair looks up a PTP edit for two distinct codes in either orientation.
func (t *Tables) ptpPair(a, b string) (model.PTPPair, bool) {
	if p, ok := t.ptp[pairKey{column1: a, column2: b}]; ok {
		return p, true
	}
	p, ok := t.ptp[pairKey{column1: b, column2: a}]
	return p, ok
}

// mueEntry returns the unit ceiling for a code, if one is published.
func (t *Tables) mueEntry(code string) (model.MUEEntry, bool) {
	m, ok := t.mue[code]
	return m, ok
}

// addonPrimaries returns the valid primary codes for an add-on code.
// The second return is false when the code is not an add-on.
func (t *Tables) addonPrimaries(code string) ([]string, bool) {
	p, ok := t.addons[code]
	return p, ok
}
