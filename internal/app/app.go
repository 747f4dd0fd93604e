package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/checkernumber/avatar-checker/internal/config"
	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/infrastructure/checknumber"
	"github.com/checkernumber/avatar-checker/internal/infrastructure/console"
	"github.com/checkernumber/avatar-checker/internal/infrastructure/storage"
	"github.com/checkernumber/avatar-checker/internal/infrastructure/tabular"
	"github.com/checkernumber/avatar-checker/internal/infrastructure/telegram"
	"github.com/checkernumber/avatar-checker/internal/logging"
	"github.com/checkernumber/avatar-checker/internal/poll"
	"github.com/checkernumber/avatar-checker/internal/ports"
	"github.com/checkernumber/avatar-checker/internal/usecase"
)

// Application wires configuration to the check workflow.
type Application struct {
	runner *usecase.Runner
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := checknumber.NewClient(cfg.API)

	store, err := storage.NewRunStore(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("prepare run store: %w", err)
	}
	baseLogger.Info("run prepared", "run_id", store.RunID(), "dir", store.Dir())

	registry := tabular.NewRegistry()
	registry.Register(tabular.XLSXReader{})
	registry.Register(tabular.CSVReader{})

	reporters := []ports.Reporter{console.NewReporter(nil)}
	tg := cfg.Notifications.Telegram
	if tg.BotToken != "" && tg.ChatID != "" {
		reporters = append(reporters, telegram.NewNotifier(tg, baseLogger.With("component", "telegram")))
	}
	reporter := fanout(reporters)

	poller := poll.New(client, reporter, cfg.Poll.Every(), baseLogger.With("component", "poller"))

	runner := usecase.NewRunner(usecase.RunnerDeps{
		Poller:   poller,
		Fetcher:  client,
		Reader:   registry,
		Store:    store,
		Reporter: reporter,
		Session:  client,
		Logger:   baseLogger.With("component", "runner"),
	})

	return &Application{runner: runner}, nil
}

// Run executes one batch check for the given numbers.
func (a *Application) Run(ctx context.Context, numbers []string) error {
	if a.runner == nil {
		return nil
	}
	_, err := a.runner.Check(ctx, numbers)
	return err
}

// fanout relays reporter calls to every registered sink.
type fanout []ports.Reporter

var _ ports.Reporter = fanout(nil)

func (f fanout) JobProgress(job domain.Job) {
	for _, r := range f {
		r.JobProgress(job)
	}
}

func (f fanout) RunCompleted(outcome domain.Outcome) {
	for _, r := range f {
		r.RunCompleted(outcome)
	}
}

func (f fanout) RunFailed(err error) {
	for _, r := range f {
		r.RunFailed(err)
	}
}
