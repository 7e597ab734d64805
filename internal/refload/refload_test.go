package refload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// writeFixture writes content to a temp file and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestZipCounty(t *testing.T) {
	path := writeFixture(t, "zip-county.csv",
		"ZIP,COUNTY,USPS_ZIP_PREF_CITY,USPS_ZIP_PREF_STATE,RES_RATIO\n"+
			"601,72001,ADJUNTAS,PR,0.964\n"+
			"10001,36061,NEW YORK,NY,0.82\n"+
			"10001,36081,NEW YORK,NY,0.18\n"+
			"99999,00000,NOWHERE,XX,not-a-number\n")
	rows, err := ZipCounty(path, testLogger())
	if err != nil {
		t.Fatalf("ZipCounty: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (bad-ratio row dropped)", len(rows))
	}
	if rows[0].ZIP != "00601" {
		t.Errorf("ZIP not zero-padded: %q", rows[0].ZIP)
	}
	if rows[0].CountyID != "72001" || rows[0].State != "PR" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	// Order preserved: the ratio tie-break depends on it.
	if rows[1].CountyID != "36061" || rows[2].CountyID != "36081" {
		t.Errorf("row order not preserved: %+v", rows[1:])
	}
}

func TestZipCountyMissingColumns(t *testing.T) {
	path := writeFixture(t, "bad.csv", "A,B,C\n1,2,3\n")
	_, err := ZipCounty(path, testLogger())
	if err == nil {
		t.Fatal("expected LoadError for missing columns")
	}
}

func TestCountyReference(t *testing.T) {
	path := writeFixture(t, "national_county.txt",
		"MO,29,510,St. Louis city,C7\n"+
			"NY,36,061,New York County,H6\n"+
			"PR,72,1,Adjuntas Municipio,H1\n")
	rows, err := CountyReference(path, testLogger())
	if err != nil {
		t.Fatalf("CountyReference: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].CountyID != "29510" || rows[0].Name != "St. Louis city" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	// Short FIPS components are zero-padded into the 5-digit identifier.
	if rows[2].CountyID != "72001" {
		t.Errorf("county id = %q, want 72001", rows[2].CountyID)
	}
}

func TestLocalityCarriesStateForward(t *testing.T) {
	path := writeFixture(t, "locality.csv",
		"Medicare Administrative Contractor,Locality Number,State,Fee Schedule Area,Counties\n"+
			"10112,01,ALABAMA,Birmingham,Jefferson\n"+
			"10112,02,,Rest of Alabama,ALL COUNTIES EXCEPT Jefferson\n"+
			"02102,01,ALASKA,Alaska,ALL COUNTIES\n"+
			"02102,,,junk row without locality number,Nowhere\n")
	rows, err := Locality(path, testLogger())
	if err != nil {
		t.Fatalf("Locality: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Blank state label inherits the carried value from the previous row.
	if rows[1].State != "ALABAMA" {
		t.Errorf("carried state = %q, want ALABAMA", rows[1].State)
	}
	if rows[1].CountyScope != "ALL COUNTIES EXCEPT Jefferson" {
		t.Errorf("scope = %q", rows[1].CountyScope)
	}
	// Locality numbers lose their leading zeros.
	if rows[0].LocalityNumber != "1" || rows[1].LocalityNumber != "2" {
		t.Errorf("locality numbers = %q, %q", rows[0].LocalityNumber, rows[1].LocalityNumber)
	}
	if rows[2].State != "ALASKA" {
		t.Errorf("state = %q", rows[2].State)
	}
}

func TestGPCIDropsIncompleteRows(t *testing.T) {
	path := writeFixture(t, "gpci.csv",
		"Medicare Administrative Contractor (MAC),State,Locality Number,Locality Name,2025 PW GPCI (with 1.0 Floor),2025 PE GPCI,2025 MP GPCI\n"+
			"10112,AL,00,Alabama,1.000,0.869,0.575\n"+
			"02102,AK,01,Alaska,1.500,1.103,0.662\n"+
			"99999,XX,05,Broken,1.000,,0.500\n")
	rows, err := GPCI(path, testLogger())
	if err != nil {
		t.Fatalf("GPCI: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (incomplete row dropped, not zero-filled)", len(rows))
	}
	if rows[0].State != "AL" || rows[0].LocalityNumber != "0" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].ExpenseMult != 1.103 {
		t.Errorf("expense mult = %v", rows[1].ExpenseMult)
	}
}

func TestRVUSkipsPreambleAndModifierRows(t *testing.T) {
	path := writeFixture(t, "pprrvu.csv",
		"Some preamble text about the fee schedule\n"+
			"More preamble\n"+
			"HCPCS,MOD,DESCRIPTION,WORK RVU,PE RVU,MP RVU\n"+
			"99213,,Office visit,1.30,1.07,0.10\n"+
			"99213,26,Office visit (professional),1.30,0.50,0.10\n"+
			"99214,,Office visit,1.92,1.46,0.14\n"+
			"G0008,,Flu shot admin,0.00,,0.00\n"+
			"99214,,Duplicate,9.99,9.99,9.99\n")
	rows, err := RVU(path, testLogger())
	if err != nil {
		t.Fatalf("RVU: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Code != "99213" || rows[0].WorkRVU != 1.30 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	// Duplicate 99214 keeps the first row.
	if rows[1].Code != "99214" || rows[1].WorkRVU != 1.92 {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestRVUNoHeader(t *testing.T) {
	path := writeFixture(t, "empty.csv", "just some text\nwithout a header\n")
	_, err := RVU(path, testLogger())
	if err == nil {
		t.Fatal("expected LoadError when HCPCS header row is absent")
	}
}

func TestPTP(t *testing.T) {
	path := writeFixture(t, "ptp.txt",
		"National Correct Coding Initiative\n"+
			"Column1\tColumn2\tEffective\tDeletion\tReason\tModifier\n"+
			"80061\t82465\t20200101\t*\t\t0\n"+
			"99285\t99213\t20200101\t\t\t1\n"+
			"80061\t82465\t20240101\t\t\t9\n")
	rows, err := PTP(path, testLogger())
	if err != nil {
		t.Fatalf("PTP: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (duplicate pair keeps first)", len(rows))
	}
	if rows[0].Column1Code != "80061" || rows[0].ModifierIndicator != "0" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].EffectiveFrom == nil || rows[0].EffectiveFrom.Year() != 2020 {
		t.Errorf("effective date = %v", rows[0].EffectiveFrom)
	}
	if rows[0].DeletedAfter != nil {
		t.Errorf("open-ended edit has deletion date %v", rows[0].DeletedAfter)
	}
}

func TestPTPFiveColumnLayout(t *testing.T) {
	// Older file versions carry the modifier indicator in the fifth column.
	path := writeFixture(t, "ptp-old.txt",
		"80061\t82465\t20200101\t\t1\n")
	rows, err := PTP(path, testLogger())
	if err != nil {
		t.Fatalf("PTP: %v", err)
	}
	if len(rows) != 1 || rows[0].ModifierIndicator != "1" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestMUE(t *testing.T) {
	path := writeFixture(t, "mue.csv",
		"HCPCS/CPT Code,Practitioner Services MUE Values,MUE Adjudication Indicator,MUE Rationale\n"+
			"36415,3,3 Date of Service Edit: Clinical,Clinical: Data\n"+
			"99285,1,2 Date of Service Edit: Policy,Anatomic\n"+
			"BOGUS,not-a-number,,\n")
	rows, err := MUE(path, "Practitioner", testLogger())
	if err != nil {
		t.Fatalf("MUE: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Code != "36415" || rows[0].MaxUnits != 3 || rows[0].ServiceType != "Practitioner" {
		t.Errorf("row 0 = %+v", rows[0])
	}
}

func TestAddon(t *testing.T) {
	path := writeFixture(t, "addon.txt",
		"AddOn Code\tPrimary Code\tEdit Type\n"+
			"99292\t99291\t1\n"+
			"11001\t11000\t1\n"+
			"11001\t11012\t1\n")
	rows, err := Addon(path, testLogger())
	if err != nil {
		t.Fatalf("Addon: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].AddonCode != "99292" || len(rows[0].PrimaryCodes) != 1 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].AddonCode != "11001" || len(rows[1].PrimaryCodes) != 2 {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[1].PrimaryCodes[1] != "11012" {
		t.Errorf("primaries = %v", rows[1].PrimaryCodes)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := ZipCounty("/nonexistent/zip.csv", testLogger()); err == nil {
		t.Error("ZipCounty: expected error")
	}
	if _, err := PTP("/nonexistent/ptp.txt", testLogger()); err == nil {
		t.Error("PTP: expected error")
	}
}
