// Package export writes batch pricing results to Parquet for downstream
// analytics tools.
package export

import (
	"fmt"
	"io"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/feesched/internal/fees"
)

// PricedLine is one row of batch pricing output. Failed lines carry the
// error text and a zero amount so a batch never silently drops input rows.
type PricedLine struct {
	Code           string  `parquet:"code"`
	ZIP            string  `parquet:"zip"`
	CountyID       string  `parquet:"county_id"`
	CountyName     string  `parquet:"county_name"`
	State          string  `parquet:"state"`
	LocalityNumber string  `parquet:"locality_number"`
	LocalityName   string  `parquet:"locality_name"`
	Amount         float64 `parquet:"amount"`
	Error          string  `parquet:"error"`
}

// FromQuote converts a successful pricing quote into an output row.
func FromQuote(q *fees.Quote) PricedLine {
	return PricedLine{
		Code:           q.Code,
		ZIP:            q.ZIP,
		CountyID:       q.CountyID,
		CountyName:     q.CountyName,
		State:          q.State,
		LocalityNumber: q.LocalityNumber,
		LocalityName:   q.LocalityName,
		Amount:         q.Amount,
	}
}

// Failed converts a pricing failure into an output row.
func Failed(code, zip string, err error) PricedLine {
	return PricedLine{Code: code, ZIP: zip, Error: err.Error()}
}

// WriteParquet writes the priced rows to path as a Parquet file.
func WriteParquet(path string, rows []PricedLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := goparquet.NewGenericWriter[PricedLine](f)
	if _, err := writer.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close writer for %s: %w", path, err)
	}
	return f.Close()
}

// ReadParquet reads a priced batch file back into rows.
func ReadParquet(path string) ([]PricedLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	pf, err := goparquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	reader := goparquet.NewGenericReader[PricedLine](pf)
	defer reader.Close()

	var all []PricedLine
	buf := make([]PricedLine, 256)
	for {
		n, readErr := reader.Read(buf)
		all = append(all, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet %s: %w", path, readErr)
		}
	}
	return all, nil
}
