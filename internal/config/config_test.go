package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(apiKeyEnv, "")
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(telegramChatIDEnv, "")

	cfg := Load()

	if cfg.API.Key != PlaceholderAPIKey {
		t.Errorf("expected placeholder key, got %q", cfg.API.Key)
	}
	if cfg.API.BaseURL != defaultBaseURL {
		t.Errorf("unexpected base URL %q", cfg.API.BaseURL)
	}
	request, download := cfg.API.Timeouts()
	if request != 30*time.Second || download != 5*time.Minute {
		t.Errorf("unexpected timeouts: request=%s download=%s", request, download)
	}
	if cfg.Poll.Every() != 5*time.Second {
		t.Errorf("unexpected poll interval %s", cfg.Poll.Every())
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("unexpected output dir %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unexpected log level %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	raw := []byte(`
api:
  key: file-key
  requestTimeout: 10s
poll:
  interval: 250ms
output:
  dir: /tmp/avatar-runs
logging:
  level: debug
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(apiKeyEnv, "")

	cfg := Load()

	if cfg.API.Key != "file-key" {
		t.Errorf("expected file key, got %q", cfg.API.Key)
	}
	if cfg.API.BaseURL != defaultBaseURL {
		t.Errorf("base URL should keep default, got %q", cfg.API.BaseURL)
	}
	request, download := cfg.API.Timeouts()
	if request != 10*time.Second {
		t.Errorf("expected request timeout 10s, got %s", request)
	}
	if download != 5*time.Minute {
		t.Errorf("download timeout should keep default, got %s", download)
	}
	if cfg.Poll.Every() != 250*time.Millisecond {
		t.Errorf("unexpected poll interval %s", cfg.Poll.Every())
	}
	if cfg.Output.Dir != "/tmp/avatar-runs" {
		t.Errorf("unexpected output dir %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected log level %q", cfg.Logging.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	raw := []byte("api:\n  key: file-key\n")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(apiKeyEnv, "env-key")

	cfg := Load()

	if cfg.API.Key != "env-key" {
		t.Errorf("environment should win over file, got %q", cfg.API.Key)
	}
}

func TestDurationFallbacks(t *testing.T) {
	t.Parallel()

	api := APIConfig{RequestTimeout: "nonsense", DownloadTimeout: "-1m"}
	request, download := api.Timeouts()
	if request != defaultRequestTimeout {
		t.Errorf("invalid request timeout should fall back, got %s", request)
	}
	if download != defaultDownloadTimeout {
		t.Errorf("negative download timeout should fall back, got %s", download)
	}

	if got := (PollConfig{Interval: "0s"}).Every(); got != defaultPollInterval {
		t.Errorf("zero interval should fall back, got %s", got)
	}
}
