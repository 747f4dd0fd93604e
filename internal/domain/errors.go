package domain

import "fmt"

// SubmissionError reports that a batch never entered the service: the
// upload request failed or its acknowledgement was unusable.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// QueryError reports a failed status lookup for a submitted batch.
type QueryError struct {
	TaskID string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("status query for task %s failed: %v", e.TaskID, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// JobFailedError reports that the service itself marked the batch failed.
// Job is the final snapshot that carried the failed status.
type JobFailedError struct {
	Job Job
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("task %s failed after processing %d/%d numbers",
		e.Job.TaskID, e.Job.Success, e.Job.Total)
}

// RetrievalError reports that an exported result file could not be
// downloaded or written to disk.
type RetrievalError struct {
	URL string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieving %s failed: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ParseError reports a result file that could not be read as tabular data.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s failed: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExportError reports a summary that could not be serialized to disk.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting summary to %s failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
