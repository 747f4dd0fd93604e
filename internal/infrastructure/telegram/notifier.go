package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/checkernumber/avatar-checker/internal/config"
	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/ports"
)

// Notifier mirrors run outcomes to a Telegram chat via bot API. Send
// failures are logged and swallowed: chat delivery must never fail a
// check run.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.Reporter = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(cfg config.TelegramConfig, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		apiBase:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

// JobProgress sends nothing; per-poll noise stays out of the chat.
func (n *Notifier) JobProgress(job domain.Job) {}

// RunCompleted posts a short digest of the finished run.
func (n *Notifier) RunCompleted(outcome domain.Outcome) {
	n.send(digest(outcome))
}

// RunFailed posts the terminal failure.
func (n *Notifier) RunFailed(err error) {
	n.send(fmt.Sprintf("*WhatsApp avatar check failed*\n%v", err))
}

func (n *Notifier) send(text string) {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		n.logger.Warn("telegram request failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("telegram send failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn("telegram rejected message", "status", resp.Status)
	}
}

func digest(outcome domain.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*WhatsApp avatar check finished*\n")
	fmt.Fprintf(&b, "task %s: %d/%d numbers processed\n",
		outcome.Job.TaskID, outcome.Job.Success, outcome.Job.Total)

	if outcome.Summary == nil {
		b.WriteString("no result file exported")
		return b.String()
	}

	sum := outcome.Summary
	fmt.Fprintf(&b, "%d records, %d WhatsApp accounts, %d avatars\n",
		sum.TotalRecords, sum.WhatsAppAccounts, sum.AvailableAvatars)
	fmt.Fprintf(&b, "summary: %s", outcome.SummaryPath)
	return b.String()
}
