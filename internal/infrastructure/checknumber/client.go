package checknumber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/checkernumber/avatar-checker/internal/config"
	"github.com/checkernumber/avatar-checker/internal/domain"
	"github.com/checkernumber/avatar-checker/internal/ports"
)

const headerAPIKey = "X-API-Key"

// Client talks to the CheckNumber avatar analysis API. Submissions and
// status queries share a short-timeout HTTP client; result downloads use
// a separate client with a much longer timeout.
type Client struct {
	endpoint string
	apiKey   string
	api      *http.Client
	download *http.Client
}

var _ ports.TaskAPI = (*Client)(nil)
var _ ports.ResultFetcher = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.APIConfig) *Client {
	request, download := cfg.Timeouts()
	return &Client{
		endpoint: cfg.BaseURL,
		apiKey:   cfg.Key,
		api:      &http.Client{Timeout: request},
		download: &http.Client{Timeout: download},
	}
}

// Submit uploads a batch input file as multipart form data and returns the
// acknowledged job.
func (c *Client) Submit(ctx context.Context, filename string, payload io.Reader) (domain.Job, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("build form: %w", err)}
	}
	if _, err := io.Copy(part, payload); err != nil {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("copy payload: %w", err)}
	}
	if err := form.Close(); err != nil {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("close form: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.api.Do(req)
	if err != nil {
		return domain.Job{}, &domain.SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var ack taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("decode acknowledgement: %w", err)}
	}
	if ack.TaskID == "" || ack.UserID == "" {
		return domain.Job{}, &domain.SubmissionError{Err: fmt.Errorf("acknowledgement missing task or user id")}
	}

	return ack.job(), nil
}

// Status fetches the current snapshot of a submitted job.
func (c *Client) Status(ctx context.Context, taskID, userID string) (domain.Job, error) {
	u, err := url.JoinPath(c.endpoint, taskID)
	if err != nil {
		return domain.Job{}, &domain.QueryError{TaskID: taskID, Err: fmt.Errorf("build url: %w", err)}
	}
	u += "?" + url.Values{"user_id": {userID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Job{}, &domain.QueryError{TaskID: taskID, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.api.Do(req)
	if err != nil {
		return domain.Job{}, &domain.QueryError{TaskID: taskID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Job{}, &domain.QueryError{TaskID: taskID, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var snapshot taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return domain.Job{}, &domain.QueryError{TaskID: taskID, Err: fmt.Errorf("decode snapshot: %w", err)}
	}

	return snapshot.job(), nil
}

// Download streams an exported result file to destPath, overwriting any
// previous attempt.
func (c *Client) Download(ctx context.Context, resultURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return &domain.RetrievalError{URL: resultURL, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.download.Do(req)
	if err != nil {
		return &domain.RetrievalError{URL: resultURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.RetrievalError{URL: resultURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return &domain.RetrievalError{URL: resultURL, Err: fmt.Errorf("create %s: %w", destPath, err)}
	}

	// The body streams to disk in fixed-size chunks; an export is never
	// held in memory whole.
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return &domain.RetrievalError{URL: resultURL, Err: fmt.Errorf("write %s: %w", destPath, err)}
	}
	if err := out.Close(); err != nil {
		return &domain.RetrievalError{URL: resultURL, Err: fmt.Errorf("close %s: %w", destPath, err)}
	}

	return nil
}

// Close releases pooled connections on both underlying HTTP clients.
func (c *Client) Close() error {
	c.api.CloseIdleConnections()
	c.download.CloseIdleConnections()
	return nil
}

// taskResponse is the service's JSON shape for both the submission
// acknowledgement and status lookups.
type taskResponse struct {
	TaskID    string `json:"task_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	Total     int    `json:"total"`
	Success   int    `json:"success"`
	Failure   int    `json:"failure"`
	ResultURL string `json:"result_url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (r taskResponse) job() domain.Job {
	return domain.Job{
		TaskID:    r.TaskID,
		UserID:    r.UserID,
		Status:    domain.JobStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		Total:     r.Total,
		Success:   r.Success,
		Failure:   r.Failure,
		ResultURL: r.ResultURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
