package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Notification delivery methods.
const (
	NotifyAuto     = "auto"
	NotifyDesktop  = "desktop"
	NotifyConsole  = "console"
	NotifyTelegram = "telegram"
)

type Config struct {
	Store     StoreConfig     `koanf:"store"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Notify    NotifyConfig    `koanf:"notify"`
	Snooze    SnoozeConfig    `koanf:"snooze"`
	UI        UIConfig        `koanf:"ui"`
}

type StoreConfig struct {
	Path string `koanf:"path"`
}

type SchedulerConfig struct {
	// Enabled gates the background check loop in auxiliary
	// front-ends (mcp-reminder); the daemon and the interactive app
	// always run it.
	Enabled      bool `koanf:"enabled"`
	Interval     int  `koanf:"interval"` // seconds between sweeps
	CheckOnStart bool `koanf:"check_on_start"`
}

// IntervalDuration returns the sweep interval as a time.Duration.
func (c *SchedulerConfig) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

type NotifyConfig struct {
	Method     string         `koanf:"method"`
	Retries    int            `koanf:"retries"`
	RetryDelay int            `koanf:"retry_delay"` // seconds between delivery attempts
	Telegram   TelegramConfig `koanf:"telegram"`
}

// RetryDelayDuration returns the pause between delivery attempts.
func (c *NotifyConfig) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Second
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

type SnoozeConfig struct {
	Presets []int `koanf:"presets"` // minutes, first entry is the default
}

// DefaultMinutes returns the snooze duration used when the user gives
// none.
func (c *SnoozeConfig) DefaultMinutes() int {
	if len(c.Presets) > 0 {
		return c.Presets[0]
	}
	return 15
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

// Load builds the configuration from defaults, an optional YAML file
// and REMINDERD_* environment variables, in that order of precedence.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("REMINDERD_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "REMINDERD_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Multi-word keys cannot survive the underscore-to-dot mapping
	// above, so the telegram credentials get dedicated variables.
	if token := os.Getenv("REMINDERD_TELEGRAM_BOT_TOKEN"); token != "" {
		k.Set("notify.telegram.bot_token", token)
	}
	if chatID := os.Getenv("REMINDERD_TELEGRAM_CHAT_ID"); chatID != "" {
		k.Set("notify.telegram.chat_id", chatID)
	}
	if dbPath := os.Getenv("REMINDERD_DB_PATH"); dbPath != "" {
		k.Set("store.path", dbPath)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}

	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %d", c.Scheduler.Interval)
	}

	switch c.Notify.Method {
	case NotifyAuto, NotifyDesktop, NotifyConsole:
	case NotifyTelegram:
		if c.Notify.Telegram.BotToken == "" || c.Notify.Telegram.ChatID == "" {
			return fmt.Errorf("telegram notify method requires bot_token and chat_id (set REMINDERD_TELEGRAM_BOT_TOKEN and REMINDERD_TELEGRAM_CHAT_ID or add them to the config file)")
		}
	default:
		return fmt.Errorf("unknown notify method: %s (supported: %s, %s, %s, %s)",
			c.Notify.Method, NotifyAuto, NotifyDesktop, NotifyConsole, NotifyTelegram)
	}

	if c.Notify.Retries < 1 {
		return fmt.Errorf("notify retries must be at least 1, got %d", c.Notify.Retries)
	}

	if c.Notify.RetryDelay < 0 {
		return fmt.Errorf("notify retry_delay must not be negative, got %d", c.Notify.RetryDelay)
	}

	if len(c.Snooze.Presets) == 0 {
		return fmt.Errorf("at least one snooze preset is required")
	}
	for _, m := range c.Snooze.Presets {
		if m <= 0 {
			return fmt.Errorf("snooze presets must be positive minutes, got %d", m)
		}
	}

	return nil
}

// EnsureStoreDir creates the directory holding the database file.
func (c *Config) EnsureStoreDir() error {
	dir := filepath.Dir(c.Store.Path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
