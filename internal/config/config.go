package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "AVATAR_CHECKER_CONFIG"
	apiKeyEnv         = "WHATSAPP_AVATAR_API_KEY"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"

	// PlaceholderAPIKey is used when no real key is configured. Submissions
	// made with it are rejected by the service, not by this client.
	PlaceholderAPIKey = "YOUR_API_KEY"

	defaultBaseURL         = "https://api.checknumber.ai/wa/api/avatar/tasks"
	defaultRequestTimeout  = 30 * time.Second
	defaultDownloadTimeout = 5 * time.Minute
	defaultPollInterval    = 5 * time.Second
)

// Config holds high-level settings required across the application.
type Config struct {
	API           APIConfig          `yaml:"api"`
	Poll          PollConfig         `yaml:"poll"`
	Output        OutputConfig       `yaml:"output"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// APIConfig describes how to reach the avatar analysis service.
type APIConfig struct {
	Key             string `yaml:"key"`
	BaseURL         string `yaml:"baseUrl"`
	RequestTimeout  string `yaml:"requestTimeout"`
	DownloadTimeout string `yaml:"downloadTimeout"`
}

// Timeouts resolves the request and download timeout strings. Submissions
// and status queries use the request timeout; result-file downloads get
// the longer download timeout.
func (a APIConfig) Timeouts() (request, download time.Duration) {
	return parseDuration(a.RequestTimeout, defaultRequestTimeout),
		parseDuration(a.DownloadTimeout, defaultDownloadTimeout)
}

// PollConfig defines how often a pending batch is re-queried.
type PollConfig struct {
	Interval string `yaml:"interval"`
}

// Every resolves the poll interval string.
func (p PollConfig) Every() time.Duration {
	return parseDuration(p.Interval, defaultPollInterval)
}

// OutputConfig locates the directory run artifacts are written under.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.API.Key = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.Key != "" {
		base.API.Key = override.API.Key
	}
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.RequestTimeout != "" {
		base.API.RequestTimeout = override.API.RequestTimeout
	}
	if override.API.DownloadTimeout != "" {
		base.API.DownloadTimeout = override.API.DownloadTimeout
	}

	if override.Poll.Interval != "" {
		base.Poll.Interval = override.Poll.Interval
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: invalid duration %q, using %s", raw, fallback)
		return fallback
	}
	return d
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Key:             PlaceholderAPIKey,
			BaseURL:         defaultBaseURL,
			RequestTimeout:  "30s",
			DownloadTimeout: "5m",
		},
		Poll:   PollConfig{Interval: "5s"},
		Output: OutputConfig{Dir: "out"},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
