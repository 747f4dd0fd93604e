package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/checkernumber/avatar-checker/internal/domain"
)

// CSVReader parses comma-separated result files.
type CSVReader struct{}

var _ Reader = CSVReader{}

// Extensions lists the file extensions this reader claims.
func (CSVReader) Extensions() []string { return []string{".csv"} }

// Read parses the file row by row. The first row is the header; a file
// with no rows at all yields no records.
func (CSVReader) Read(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	columns := mapColumns(header)

	var records []domain.Record
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Path: path, Err: err}
		}
		if rec, ok := columns.record(cells); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}
