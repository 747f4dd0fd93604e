package domain

// JobStatus is the lifecycle state the analysis service reports for a batch.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusExported   JobStatus = "exported"
	StatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether the batch can make no further transitions.
// The terminal set is closed: exported means success, failed means failure.
// Any other status the service invents is treated as still in flight.
func (s JobStatus) IsTerminal() bool {
	return s == StatusExported || s == StatusFailed
}

// Job is a snapshot of one remote analysis batch. The service assigns
// TaskID and UserID on submission; UserID is the credential later status
// queries must carry. Success counts numbers processed so far, Failure
// counts numbers the service gave up on, and ResultURL is set once the
// batch reaches exported and a result file exists.
type Job struct {
	TaskID    string
	UserID    string
	Status    JobStatus
	Total     int
	Success   int
	Failure   int
	ResultURL string
	CreatedAt string
	UpdatedAt string
}

// Outcome is the final product of one check run.
type Outcome struct {
	Job         Job
	Summary     *Summary // nil when the job exported no result file
	ResultPath  string
	SummaryPath string
}
