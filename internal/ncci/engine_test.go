package ncci

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gyeh/feesched/internal/model"
)

var evalDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testEngine() *Engine {
	ptp := []model.PTPPair{
		{Column1Code: "80061", Column2Code: "82465", ModifierIndicator: "0", EffectiveFrom: date(2020, 1, 1)},
		{Column1Code: "99285", Column2Code: "99213", ModifierIndicator: "1", EffectiveFrom: date(2020, 1, 1)},
		{Column1Code: "11000", Column2Code: "11001", ModifierIndicator: "9", EffectiveFrom: date(2020, 1, 1)},
		{Column1Code: "20550", Column2Code: "20551", ModifierIndicator: "0", EffectiveFrom: date(2020, 1, 1), DeletedAfter: date(2021, 12, 31)},
	}
	mue := []model.MUEEntry{
		{Code: "36415", MaxUnits: 3, ServiceType: "Practitioner"},
		{Code: "99285", MaxUnits: 1, ServiceType: "Practitioner"},
	}
	addons := []model.AddonEntry{
		{AddonCode: "11001", PrimaryCodes: []string{"11000"}},
		{AddonCode: "99292", PrimaryCodes: []string{"99291"}},
	}
	return NewEngine(NewTables(ptp, mue, addons))
}

func line(code string, mods ...string) model.BillingLine {
	return model.BillingLine{Code: code, Modifiers: mods, Units: 1}
}

func kinds(vs []model.Violation) []model.ViolationKind {
	out := make([]model.ViolationKind, len(vs))
	for i, v := range vs {
		out[i] = v.Kind
	}
	return out
}

func TestPTPNeverBypassable(t *testing.T) {
	e := testEngine()
	// Indicator 0 violates regardless of modifiers present.
	vs, err := e.EvaluateAt([]model.BillingLine{line("80061", "59"), line("82465", "XU")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 1 || vs[0].Kind != model.ViolationPTP {
		t.Fatalf("got %v, want exactly one PTP violation", vs)
	}
	if !reflect.DeepEqual(vs[0].Codes, []string{"80061", "82465"}) {
		t.Errorf("codes = %v", vs[0].Codes)
	}
}

func TestPTPBypassableWithModifier(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("99285"), line("99213", "59")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	for _, v := range vs {
		if v.Kind == model.ViolationPTP {
			t.Errorf("bypass modifier did not suppress PTP violation: %v", v)
		}
	}
}

func TestPTPBypassableWithoutModifier(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("99285"), line("99213", "25")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	var ptp int
	for _, v := range vs {
		if v.Kind == model.ViolationPTP {
			ptp++
		}
	}
	// 25 is not a recognized bypass modifier for this edit family.
	if ptp != 1 {
		t.Errorf("got %d PTP violations, want 1", ptp)
	}
}

func TestPTPReversedOrientation(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("82465"), line("80061")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 1 || vs[0].Kind != model.ViolationPTP {
		t.Fatalf("got %v, want one PTP violation for reversed pair", vs)
	}
	// Codes are reported in table column order, not billing order.
	if !reflect.DeepEqual(vs[0].Codes, []string{"80061", "82465"}) {
		t.Errorf("codes = %v", vs[0].Codes)
	}
}

func TestPTPNotApplicableIndicator(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("11000"), line("11001")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	for _, v := range vs {
		if v.Kind == model.ViolationPTP {
			t.Errorf("indicator 9 pair produced a PTP violation: %v", v)
		}
	}
}

func TestPTPExpiredEdit(t *testing.T) {
	e := testEngine()
	// Edit was deleted after 2021-12-31; evaluation in 2025 skips it.
	vs, err := e.EvaluateAt([]model.BillingLine{line("20550"), line("20551")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 0 {
		t.Errorf("expired edit still fired: %v", vs)
	}
	// But it does fire for a service date inside the range.
	vs, err = e.EvaluateAt([]model.BillingLine{line("20550"), line("20551")}, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 1 {
		t.Errorf("in-range edit did not fire: %v", vs)
	}
}

func TestSameCodeTwiceIsMUENotPTP(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("99285"), line("99285")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 1 {
		t.Fatalf("got %v, want exactly one violation", vs)
	}
	if vs[0].Kind != model.ViolationMUE {
		t.Errorf("kind = %s, want MUE", vs[0].Kind)
	}
}

func TestMUEBoundary(t *testing.T) {
	e := testEngine()

	at := func(units int) []model.Violation {
		vs, err := e.EvaluateAt([]model.BillingLine{{Code: "36415", Units: units}}, evalDate)
		if err != nil {
			t.Fatalf("EvaluateAt: %v", err)
		}
		return vs
	}

	if vs := at(3); len(vs) != 0 {
		t.Errorf("exactly at the ceiling should pass, got %v", vs)
	}
	vs := at(4)
	if len(vs) != 1 || vs[0].Kind != model.ViolationMUE {
		t.Fatalf("got %v, want one MUE violation", vs)
	}
	if vs[0].Detail != "36415 billed for 4 units, exceeding the limit of 3" {
		t.Errorf("detail = %q", vs[0].Detail)
	}
}

func TestMUESumsAcrossLines(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{
		{Code: "36415", Units: 2},
		{Code: "36415", Units: 2},
	}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 1 || vs[0].Kind != model.ViolationMUE {
		t.Fatalf("got %v, want one MUE violation for summed units", vs)
	}
}

func TestMUEUnlistedCodeSkipped(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{{Code: "99999", Units: 50}}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	// No published ceiling means no check; absence of a limit is not a violation.
	if len(vs) != 0 {
		t.Errorf("got %v, want none", vs)
	}
}

func TestOrphanAddon(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("99292")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 1 || vs[0].Kind != model.ViolationAddon {
		t.Fatalf("got %v, want one orphan add-on violation", vs)
	}
	if !reflect.DeepEqual(vs[0].Codes, []string{"99292"}) {
		t.Errorf("codes = %v", vs[0].Codes)
	}
	if vs[0].Detail != "add-on code 99292 billed without a primary procedure (expects one of: 99291)" {
		t.Errorf("detail = %q", vs[0].Detail)
	}
}

func TestAddonWithPrimaryPresent(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt([]model.BillingLine{line("99292"), line("99291")}, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	for _, v := range vs {
		if v.Kind == model.ViolationAddon {
			t.Errorf("add-on with primary present flagged: %v", v)
		}
	}
}

func TestViolationOrderAndIdempotence(t *testing.T) {
	e := testEngine()
	batch := []model.BillingLine{
		{Code: "99292", Units: 1},
		{Code: "80061", Units: 1},
		{Code: "36415", Units: 4},
		{Code: "82465", Units: 1},
	}
	first, err := e.EvaluateAt(batch, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	want := []model.ViolationKind{model.ViolationPTP, model.ViolationMUE, model.ViolationAddon}
	if !reflect.DeepEqual(kinds(first), want) {
		t.Fatalf("violation order = %v, want %v", kinds(first), want)
	}
	second, err := e.EvaluateAt(batch, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluation not idempotent:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestEvaluateInputErrors(t *testing.T) {
	e := testEngine()
	cases := []struct {
		name  string
		lines []model.BillingLine
	}{
		{"empty code", []model.BillingLine{{Code: "  "}}},
		{"negative units", []model.BillingLine{{Code: "36415", Units: -1}}},
		{"malformed modifier", []model.BillingLine{{Code: "36415", Modifiers: []string{"599"}, Units: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.EvaluateAt(tc.lines, evalDate)
			var ie *model.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected InputError, got %v", err)
			}
		})
	}
}

func TestEvaluateEmptyBatch(t *testing.T) {
	e := testEngine()
	vs, err := e.EvaluateAt(nil, evalDate)
	if err != nil {
		t.Fatalf("EvaluateAt: %v", err)
	}
	if len(vs) != 0 {
		t.Errorf("empty batch produced violations: %v", vs)
	}
}
