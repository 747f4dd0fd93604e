package storage

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/checkernumber/avatar-checker/internal/ports"
)

const (
	inputFileName    = "input.txt"
	resultFileStem   = "avatar_results"
	summaryFileName  = "demographics_summary.json"
	defaultResultExt = ".xlsx"
)

// RunStore owns the artifact directory of a single run: a fresh directory
// under the configured base, named by a generated run id. Runs never
// overwrite each other's artifacts.
type RunStore struct {
	runID string
	dir   string
}

var _ ports.ArtifactStore = (*RunStore)(nil)

// NewRunStore creates the run directory under baseDir.
func NewRunStore(baseDir string) (*RunStore, error) {
	runID := uuid.NewString()
	dir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir %s: %w", dir, err)
	}
	return &RunStore{runID: runID, dir: dir}, nil
}

// RunID returns the generated identifier of this run.
func (s *RunStore) RunID() string { return s.runID }

// Dir returns the run's artifact directory.
func (s *RunStore) Dir() string { return s.dir }

// InputPayload renders phone numbers as the upload body: one number per
// line in input order, without a trailing newline. Duplicates are kept.
func InputPayload(numbers []string) []byte {
	return []byte(strings.Join(numbers, "\n"))
}

// WriteInput writes the upload body into the run directory and returns
// its path. The file is transient; RemoveInput deletes it when the run
// finishes.
func (s *RunStore) WriteInput(numbers []string) (string, error) {
	target := filepath.Join(s.dir, inputFileName)
	if err := os.WriteFile(target, InputPayload(numbers), 0o644); err != nil {
		return "", fmt.Errorf("write input file: %w", err)
	}
	return target, nil
}

// RemoveInput deletes the transient input file. Removing an already
// removed file is not an error.
func (s *RunStore) RemoveInput() error {
	err := os.Remove(filepath.Join(s.dir, inputFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove input file: %w", err)
	}
	return nil
}

// ResultPath decides where a downloaded result lands. The extension
// follows the result URL so the matching reader picks the file up later;
// unrecognized or absent extensions fall back to the service's default
// Excel export.
func (s *RunStore) ResultPath(resultURL string) string {
	ext := defaultResultExt
	if u, err := url.Parse(resultURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e == ".xlsx" || e == ".csv" {
			ext = e
		}
	}
	return filepath.Join(s.dir, resultFileStem+ext)
}

// SummaryPath returns where the demographic summary is exported.
func (s *RunStore) SummaryPath() string {
	return filepath.Join(s.dir, summaryFileName)
}
