package ports

import (
	"context"
	"io"

	"github.com/checkernumber/avatar-checker/internal/domain"
)

// TaskAPI is the remote analysis service surface: submit a batch, look up
// a batch.
type TaskAPI interface {
	Submit(ctx context.Context, filename string, payload io.Reader) (domain.Job, error)
	Status(ctx context.Context, taskID, userID string) (domain.Job, error)
}

// JobPoller drives a batch from submission to a terminal state.
type JobPoller interface {
	Submit(ctx context.Context, filename string, payload io.Reader) (domain.Job, error)
	PollUntilTerminal(ctx context.Context, taskID, userID string) (domain.Job, error)
}

// ResultFetcher downloads an exported result file to a local path.
type ResultFetcher interface {
	Download(ctx context.Context, resultURL, destPath string) error
}

// RecordReader parses a downloaded result file into records.
type RecordReader interface {
	ReadRecords(path string) ([]domain.Record, error)
}

// ArtifactStore owns the on-disk layout of one run: the transient input
// file and the places results land.
type ArtifactStore interface {
	RunID() string
	WriteInput(numbers []string) (string, error)
	RemoveInput() error
	ResultPath(resultURL string) string
	SummaryPath() string
}

// Reporter receives job progress and the final outcome for presentation.
// Calls arrive from a single goroutine, so implementations need not be
// safe for concurrent use.
type Reporter interface {
	JobProgress(job domain.Job)
	RunCompleted(outcome domain.Outcome)
	RunFailed(err error)
}
