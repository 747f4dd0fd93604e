package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInputPayload(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		numbers []string
		want    string
	}{
		{"empty", nil, ""},
		{"single", []string{"79123456789"}, "79123456789"},
		{"order and duplicates preserved", []string{"2", "1", "2"}, "2\n1\n2"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := string(InputPayload(tc.numbers))
			if got != tc.want {
				t.Fatalf("InputPayload(%v) = %q, want %q", tc.numbers, got, tc.want)
			}
			if strings.HasSuffix(got, "\n") {
				t.Fatal("payload must not end with a newline")
			}
		})
	}
}

func TestRunStoreLayout(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	first, err := NewRunStore(base)
	if err != nil {
		t.Fatalf("NewRunStore error: %v", err)
	}
	second, err := NewRunStore(base)
	if err != nil {
		t.Fatalf("NewRunStore error: %v", err)
	}

	if first.RunID() == second.RunID() {
		t.Fatal("run ids must be unique per run")
	}
	for _, store := range []*RunStore{first, second} {
		info, err := os.Stat(store.Dir())
		if err != nil || !info.IsDir() {
			t.Fatalf("run dir %s missing: %v", store.Dir(), err)
		}
		if filepath.Dir(store.Dir()) != base {
			t.Fatalf("run dir %s not under base %s", store.Dir(), base)
		}
	}
}

func TestWriteAndRemoveInput(t *testing.T) {
	t.Parallel()

	store, err := NewRunStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewRunStore error: %v", err)
	}

	path, err := store.WriteInput([]string{"79123456789", "79123456790"})
	if err != nil {
		t.Fatalf("WriteInput error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read input file: %v", err)
	}
	if string(data) != "79123456789\n79123456790" {
		t.Fatalf("unexpected input content %q", data)
	}

	if err := store.RemoveInput(); err != nil {
		t.Fatalf("RemoveInput error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("input file should be gone")
	}

	// Removing twice is fine.
	if err := store.RemoveInput(); err != nil {
		t.Fatalf("second RemoveInput error: %v", err)
	}
}

func TestResultPathExtension(t *testing.T) {
	t.Parallel()

	store, err := NewRunStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewRunStore error: %v", err)
	}

	cases := []struct {
		url  string
		want string
	}{
		{"https://files.example.org/t1.xlsx", "avatar_results.xlsx"},
		{"https://files.example.org/t1.csv", "avatar_results.csv"},
		{"https://files.example.org/t1.CSV?sig=abc", "avatar_results.csv"},
		{"https://files.example.org/t1.bin", "avatar_results.xlsx"},
		{"https://files.example.org/export?id=t1", "avatar_results.xlsx"},
	}

	for _, tc := range cases {
		got := store.ResultPath(tc.url)
		if filepath.Base(got) != tc.want {
			t.Errorf("ResultPath(%q) = %q, want base %q", tc.url, got, tc.want)
		}
		if filepath.Dir(got) != store.Dir() {
			t.Errorf("ResultPath(%q) escaped the run dir: %q", tc.url, got)
		}
	}
}

func TestSummaryPath(t *testing.T) {
	t.Parallel()

	store, err := NewRunStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewRunStore error: %v", err)
	}

	got := store.SummaryPath()
	if filepath.Base(got) != "demographics_summary.json" {
		t.Fatalf("unexpected summary path %q", got)
	}
	if filepath.Dir(got) != store.Dir() {
		t.Fatalf("summary path escaped the run dir: %q", got)
	}
}
