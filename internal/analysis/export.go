package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/checkernumber/avatar-checker/internal/domain"
)

// WriteSummary serializes the summary to path as indented JSON. The
// format is lossless: ReadSummary returns an equal summary.
func WriteSummary(sum domain.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		_ = f.Close()
		return &domain.ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.ExportError{Path: path, Err: err}
	}

	return nil
}

// ReadSummary loads a summary previously written by WriteSummary.
func ReadSummary(path string) (domain.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("open summary: %w", err)
	}
	defer f.Close()

	var sum domain.Summary
	if err := json.NewDecoder(f).Decode(&sum); err != nil {
		return domain.Summary{}, fmt.Errorf("decode summary: %w", err)
	}

	return sum, nil
}
