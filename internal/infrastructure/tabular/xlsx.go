package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/checkernumber/avatar-checker/internal/domain"
)

// XLSXReader parses Excel workbooks, the service's default export format.
// Rows are streamed off the first sheet so large exports are not held in
// memory at once.
type XLSXReader struct{}

var _ Reader = XLSXReader{}

// Extensions lists the file extensions this reader claims.
func (XLSXReader) Extensions() []string { return []string{".xlsx"} }

// Read parses the workbook's first sheet. The first row is the header;
// every following row becomes a record.
func (XLSXReader) Read(path string) ([]domain.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &domain.ParseError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	defer rows.Close()

	var (
		columns   columnMap
		hasHeader bool
		records   []domain.Record
	)
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, &domain.ParseError{Path: path, Err: err}
		}
		if !hasHeader {
			columns = mapColumns(cells)
			hasHeader = true
			continue
		}
		if rec, ok := columns.record(cells); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}
