package tabular

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/ports"
)

// unknownValue is the sentinel the service writes for fields it could not
// determine. Readers translate it (and blank cells) into absent fields.
const unknownValue = "unknown"

// Reader captures a single result-file format (Excel, CSV, etc.).
type Reader interface {
	Extensions() []string
	Read(path string) ([]domain.Record, error)
}

// Registry keeps a mapping from file extensions to their readers.
type Registry struct {
	readers map[string]Reader
}

var _ ports.RecordReader = (*Registry)(nil)

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}}
}

// Register adds or replaces a reader for each extension it claims.
func (r *Registry) Register(reader Reader) {
	if r.readers == nil {
		r.readers = map[string]Reader{}
	}
	for _, ext := range reader.Extensions() {
		r.readers[strings.ToLower(ext)] = reader
	}
}

// Resolve returns the reader for path's extension or an error if none is
// registered.
func (r *Registry) Resolve(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if reader, ok := r.readers[ext]; ok {
		return reader, nil
	}
	return nil, &domain.ParseError{Path: path, Err: fmt.Errorf("no reader registered for %q files", ext)}
}

// ReadRecords parses the file with the reader its extension selects.
func (r *Registry) ReadRecords(path string) ([]domain.Record, error) {
	reader, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

// columnMap locates the recognized columns inside one file's header row.
// Unrecognized columns are ignored.
type columnMap struct {
	number int
	dims   map[domain.Dimension]int
}

func mapColumns(header []string) columnMap {
	recognized := map[string]domain.Dimension{}
	for _, dim := range domain.RecordDimensions() {
		recognized[string(dim)] = dim
	}

	cm := columnMap{number: -1, dims: map[domain.Dimension]int{}}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "number" {
			cm.number = i
			continue
		}
		if dim, ok := recognized[name]; ok {
			cm.dims[dim] = i
		}
	}
	return cm
}

// record converts one data row. Blank and unknown cells become absent
// fields; rows with nothing known at all are dropped.
func (m columnMap) record(cells []string) (domain.Record, bool) {
	rec := domain.Record{Fields: map[domain.Dimension]string{}}
	if m.number >= 0 && m.number < len(cells) {
		rec.Number = strings.TrimSpace(cells[m.number])
	}

	for dim, i := range m.dims {
		if i >= len(cells) {
			continue
		}
		value := strings.TrimSpace(cells[i])
		if value == "" || strings.EqualFold(value, unknownValue) {
			continue
		}
		rec.Fields[dim] = value
	}

	if rec.Number == "" && len(rec.Fields) == 0 {
		return domain.Record{}, false
	}
	return rec, true
}
