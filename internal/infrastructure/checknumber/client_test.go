package checknumber

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/checkernumber/avatar-checker/internal/config"
	"github.com/checkernumber/avatar-checker/internal/domain"
)

func testConfig(baseURL string) config.APIConfig {
	return config.APIConfig{
		Key:             "secret-key",
		BaseURL:         baseURL,
		RequestTimeout:  "5s",
		DownloadTimeout: "5s",
	}
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret-key" {
			t.Errorf("unexpected api key header: %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename != "input.txt" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		data, err := io.ReadAll(file)
		if err != nil {
			t.Errorf("read upload: %v", err)
		}
		if string(data) != "79123456789\n79123456790" {
			t.Errorf("unexpected upload body %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"task_id": "task-1",
			"user_id": "user-1",
			"status": "processing",
			"total": 2,
			"success": 0,
			"failure": 0
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	payload := strings.NewReader("79123456789\n79123456790")
	job, err := client.Submit(context.Background(), "input.txt", payload)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if job.TaskID != "task-1" || job.UserID != "user-1" {
		t.Fatalf("unexpected ids: %+v", job)
	}
	if job.Status != domain.StatusProcessing {
		t.Fatalf("unexpected status %q", job.Status)
	}
	if job.Total != 2 {
		t.Fatalf("unexpected total %d", job.Total)
	}
}

func TestSubmitRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	_, err := client.Submit(context.Background(), "input.txt", strings.NewReader("123"))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var submission *domain.SubmissionError
	if !errors.As(err, &submission) {
		t.Fatalf("expected SubmissionError, got %T", err)
	}
}

func TestSubmitAckWithoutTaskID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "processing"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	_, err := client.Submit(context.Background(), "input.txt", strings.NewReader("123"))
	var submission *domain.SubmissionError
	if !errors.As(err, &submission) {
		t.Fatalf("expected SubmissionError for empty acknowledgement, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task-1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("user_id"); got != "user-1" {
			t.Errorf("unexpected user_id %q", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret-key" {
			t.Errorf("unexpected api key header: %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"task_id": "task-1",
			"user_id": "user-1",
			"status": "Exported",
			"total": 2,
			"success": 2,
			"failure": 0,
			"result_url": "https://files.example.org/task-1.xlsx"
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	job, err := client.Status(context.Background(), "task-1", "user-1")
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}

	if job.Status != domain.StatusExported {
		t.Fatalf("status should be normalized, got %q", job.Status)
	}
	if !job.Status.IsTerminal() {
		t.Fatal("exported should be terminal")
	}
	if job.ResultURL != "https://files.example.org/task-1.xlsx" {
		t.Fatalf("unexpected result url %q", job.ResultURL)
	}
	if job.Success != 2 {
		t.Fatalf("unexpected success count %d", job.Success)
	}
}

func TestStatusRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	_, err := client.Status(context.Background(), "task-404", "user-1")
	var query *domain.QueryError
	if !errors.As(err, &query) {
		t.Fatalf("expected QueryError, got %v", err)
	}
	if query.TaskID != "task-404" {
		t.Fatalf("unexpected task id %q", query.TaskID)
	}
}

func TestDownload(t *testing.T) {
	t.Parallel()

	body := "number,whatsapp\n79123456789,yes\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	dest := filepath.Join(t.TempDir(), "results.csv")
	if err := client.Download(context.Background(), server.URL+"/results.csv", dest); err != nil {
		t.Fatalf("Download error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != body {
		t.Fatalf("unexpected file content %q", data)
	}

	// A repeated download must overwrite, not append.
	if err := client.Download(context.Background(), server.URL+"/results.csv", dest); err != nil {
		t.Fatalf("second Download error: %v", err)
	}
	data, err = os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != body {
		t.Fatalf("repeated download should overwrite, got %q", data)
	}
}

func TestDownloadRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	defer client.Close()

	dest := filepath.Join(t.TempDir(), "results.csv")
	err := client.Download(context.Background(), server.URL+"/results.csv", dest)

	var retrieval *domain.RetrievalError
	if !errors.As(err, &retrieval) {
		t.Fatalf("expected RetrievalError, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatal("no file should be created for a rejected download")
	}
}
