package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gen2brain/beeep"
)

const appName = "reminderd"

// DesktopSink shows reminders as system notifications. A failed
// attempt is retried up to the configured budget with a fixed pause
// between attempts; the sink never retries beyond that.
type DesktopSink struct {
	retries    int
	retryDelay time.Duration
}

// NewDesktopSink creates a desktop notification sink with the given
// retry budget.
func NewDesktopSink(retries int, retryDelay time.Duration) *DesktopSink {
	if retries < 1 {
		retries = 1
	}
	return &DesktopSink{retries: retries, retryDelay: retryDelay}
}

// Name returns the sink name.
func (d *DesktopSink) Name() string {
	return "desktop"
}

// Notify shows a system notification, retrying on failure until the
// budget is exhausted.
func (d *DesktopSink) Notify(ctx context.Context, n Notification) error {
	var lastErr error

	for attempt := 1; attempt <= d.retries; attempt++ {
		err := beeep.Notify(n.Title, n.Message, "")
		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("[notify] desktop attempt %d/%d failed for reminder %d: %v",
			attempt, d.retries, n.ReminderID, err)

		if attempt < d.retries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("desktop delivery interrupted: %w", ctx.Err())
			case <-time.After(d.retryDelay):
			}
		}
	}

	return fmt.Errorf("desktop delivery failed after %d attempts: %w", d.retries, lastErr)
}
