package poll

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/ports"
)

const defaultInterval = 5 * time.Second

// Poller drives a batch from submission to a terminal state by re-querying
// the service at a fixed interval. There is no backoff and no attempt cap;
// the context is the only bound on the loop.
type Poller struct {
	api      ports.TaskAPI
	reporter ports.Reporter
	interval time.Duration
	logger   *slog.Logger
}

var _ ports.JobPoller = (*Poller)(nil)

// New builds a poller. A nil reporter disables progress reporting;
// a non-positive interval falls back to 5s.
func New(api ports.TaskAPI, reporter ports.Reporter, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		api:      api,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

// Submit uploads the batch input and returns the acknowledged job.
func (p *Poller) Submit(ctx context.Context, filename string, payload io.Reader) (domain.Job, error) {
	job, err := p.api.Submit(ctx, filename, payload)
	if err != nil {
		return domain.Job{}, err
	}

	p.logger.Info("batch submitted", "task_id", job.TaskID, "status", job.Status, "total", job.Total)
	return job, nil
}

// PollOnce performs a single status query. It does not retry: a transport
// failure surfaces immediately.
func (p *Poller) PollOnce(ctx context.Context, taskID, userID string) (domain.Job, error) {
	return p.api.Status(ctx, taskID, userID)
}

// PollUntilTerminal queries the job until it reaches a terminal state.
// An exported job is returned as-is; a failed job becomes a
// JobFailedError and no further queries are made. Every non-terminal
// snapshot is handed to the reporter before the next sleep.
func (p *Poller) PollUntilTerminal(ctx context.Context, taskID, userID string) (domain.Job, error) {
	for {
		job, err := p.PollOnce(ctx, taskID, userID)
		if err != nil {
			return domain.Job{}, err
		}

		switch job.Status {
		case domain.StatusExported:
			p.logger.Info("batch exported", "task_id", job.TaskID, "success", job.Success, "total", job.Total)
			return job, nil
		case domain.StatusFailed:
			return domain.Job{}, &domain.JobFailedError{Job: job}
		}

		if p.reporter != nil {
			p.reporter.JobProgress(job)
		}
		p.logger.Debug("batch in flight", "task_id", job.TaskID, "status", job.Status,
			"success", job.Success, "total", job.Total)

		if err := p.wait(ctx); err != nil {
			return domain.Job{}, err
		}
	}
}

func (p *Poller) wait(ctx context.Context) error {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
