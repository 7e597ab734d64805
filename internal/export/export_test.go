package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/feesched/internal/fees"
)

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.parquet")
	rows := []PricedLine{
		FromQuote(&fees.Quote{
			Code:           "99213",
			ZIP:            "63101",
			CountyID:       "29510",
			CountyName:     "St. Louis city",
			State:          "MO",
			LocalityNumber: "2",
			LocalityName:   "Metropolitan St. Louis",
			Amount:         159.61,
		}),
		Failed("00000", "63101", errors.New("no RVU entry for code 00000")),
	}

	if err := WriteParquet(path, rows); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	got, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0] != rows[0] {
		t.Errorf("row 0 = %+v, want %+v", got[0], rows[0])
	}
	if got[1].Error == "" || got[1].Amount != 0 {
		t.Errorf("failed row = %+v", got[1])
	}
}

func TestReadPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	content := "code,zip\n99213,63101\n36415, 65101 \n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatalf("ReadPairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2 (header and blank line skipped)", len(pairs))
	}
	if pairs[0] != (Pair{Code: "99213", ZIP: "63101"}) {
		t.Errorf("pair 0 = %+v", pairs[0])
	}
	if pairs[1].ZIP != "65101" {
		t.Errorf("pair 1 not trimmed: %+v", pairs[1])
	}
}

func TestReadPairsNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte("99213,63101\n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatalf("ReadPairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
}

func TestReadPairsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("code,zip\n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if _, err := ReadPairs(path); err == nil {
		t.Fatal("expected error for input with no data rows")
	}
}
