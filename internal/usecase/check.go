package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/checkernumber/avatar-checker/internal/analysis"
	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/ports"
)

// RunnerDeps wires all driven adapters into the check workflow.
type RunnerDeps struct {
	Poller   ports.JobPoller
	Fetcher  ports.ResultFetcher
	Reader   ports.RecordReader
	Store    ports.ArtifactStore
	Reporter ports.Reporter
	Session  io.Closer
	Logger   *slog.Logger
}

// Runner implements the batch check workflow: submit the numbers and
// follow the job, then turn the exported result into a demographic
// summary.
type Runner struct {
	poller   ports.JobPoller
	fetcher  ports.ResultFetcher
	reader   ports.RecordReader
	store    ports.ArtifactStore
	reporter ports.Reporter
	session  io.Closer
	logger   *slog.Logger
}

// NewRunner constructs the orchestration component.
func NewRunner(deps RunnerDeps) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		poller:   deps.Poller,
		fetcher:  deps.Fetcher,
		reader:   deps.Reader,
		store:    deps.Store,
		reporter: deps.Reporter,
		session:  deps.Session,
		logger:   logger,
	}
}

// Check runs one batch end to end and returns the outcome. Whatever the
// exit path, the transient input file is removed and the API session is
// released. Failures reach the reporter exactly once, then propagate to
// the caller with their original error type intact.
func (r *Runner) Check(ctx context.Context, numbers []string) (domain.Outcome, error) {
	defer r.releaseSession()

	if r.poller == nil || r.fetcher == nil || r.reader == nil || r.store == nil {
		return r.fail(fmt.Errorf("runner is missing a collaborator"))
	}
	if len(numbers) == 0 {
		return r.fail(fmt.Errorf("no phone numbers to check"))
	}

	inputPath, err := r.store.WriteInput(numbers)
	if err != nil {
		return r.fail(fmt.Errorf("write input: %w", err))
	}
	defer r.cleanupInput()

	job, err := r.submit(ctx, inputPath)
	if err != nil {
		return r.fail(fmt.Errorf("submit batch: %w", err))
	}
	if r.reporter != nil {
		r.reporter.JobProgress(job)
	}

	final, err := r.poller.PollUntilTerminal(ctx, job.TaskID, job.UserID)
	if err != nil {
		return r.fail(fmt.Errorf("await batch %s: %w", job.TaskID, err))
	}

	outcome := domain.Outcome{Job: final}
	if final.ResultURL == "" {
		r.logger.Warn("job exported no result file", "task_id", final.TaskID)
		if r.reporter != nil {
			r.reporter.RunCompleted(outcome)
		}
		return outcome, nil
	}

	resultPath := r.store.ResultPath(final.ResultURL)
	if err := r.fetcher.Download(ctx, final.ResultURL, resultPath); err != nil {
		return r.fail(fmt.Errorf("download result: %w", err))
	}
	r.logger.Info("result file downloaded", "path", resultPath)

	records, err := r.reader.ReadRecords(resultPath)
	if err != nil {
		return r.fail(fmt.Errorf("parse result: %w", err))
	}

	sum := analysis.Summarize(records)
	summaryPath := r.store.SummaryPath()
	if err := analysis.WriteSummary(sum, summaryPath); err != nil {
		return r.fail(fmt.Errorf("export summary: %w", err))
	}

	outcome.Summary = &sum
	outcome.ResultPath = resultPath
	outcome.SummaryPath = summaryPath

	r.logger.Info("check finished", "task_id", final.TaskID, "records", sum.TotalRecords)
	if r.reporter != nil {
		r.reporter.RunCompleted(outcome)
	}
	return outcome, nil
}

func (r *Runner) submit(ctx context.Context, inputPath string) (domain.Job, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return domain.Job{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return r.poller.Submit(ctx, filepath.Base(inputPath), f)
}

func (r *Runner) fail(err error) (domain.Outcome, error) {
	if r.reporter != nil {
		r.reporter.RunFailed(err)
	}
	return domain.Outcome{}, err
}

func (r *Runner) cleanupInput() {
	if err := r.store.RemoveInput(); err != nil {
		r.logger.Warn("input cleanup failed", "error", err)
	}
}

func (r *Runner) releaseSession() {
	if r.session == nil {
		return
	}
	if err := r.session.Close(); err != nil {
		r.logger.Warn("session close failed", "error", err)
	}
}
