// Package notify delivers reminder notifications. Delivery is
// best-effort: the primary channel is retried a bounded number of
// times, and on exhaustion the chain degrades to a console banner with
// an audible bell rather than dropping the notification.
package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/notexe/reminderd/internal/config"
)

// Notification is the payload handed to a sink when a reminder fires.
type Notification struct {
	ReminderID int64
	Title      string
	Message    string
}

// Sink defines the interface for notification delivery channels.
// Implementations include the desktop notifier, the console fallback
// and the Telegram sender.
type Sink interface {
	// Notify delivers one notification. The context bounds retry
	// waits; implementations must not retry beyond their budget.
	Notify(ctx context.Context, n Notification) error

	// Name returns the sink name (e.g. "desktop", "console").
	Name() string
}

// NewSink creates a Sink based on the configuration. Every method
// except "console" is wrapped in a Chain that falls back to the
// console sink, so delivery failures degrade loudly instead of
// disappearing. consoleOut is where the fallback banner goes; stdio
// servers pass stderr to keep their protocol stream clean.
func NewSink(cfg *config.NotifyConfig, colored bool, consoleOut io.Writer) (Sink, error) {
	console := NewConsoleSink(consoleOut, colored)

	switch cfg.Method {
	case config.NotifyConsole:
		return console, nil

	case config.NotifyAuto, config.NotifyDesktop:
		desktop := NewDesktopSink(cfg.Retries, cfg.RetryDelayDuration())
		return NewChain(desktop, console), nil

	case config.NotifyTelegram:
		telegram, err := NewTelegramSink(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		return NewChain(telegram, console), nil

	default:
		return nil, fmt.Errorf("unknown notify method: %s (supported: %s, %s, %s, %s)",
			cfg.Method, config.NotifyAuto, config.NotifyDesktop, config.NotifyConsole, config.NotifyTelegram)
	}
}
