package notify

import (
	"context"
	"log"
)

// Chain tries a primary sink and degrades to a fallback when the
// primary's retry budget is exhausted. The fallback is expected to be
// the console sink, which cannot fail, so Notify on a chain
// effectively always succeeds.
type Chain struct {
	primary  Sink
	fallback Sink
}

// NewChain creates a delivery chain.
func NewChain(primary, fallback Sink) *Chain {
	return &Chain{primary: primary, fallback: fallback}
}

// Name returns the chain's primary sink name.
func (c *Chain) Name() string {
	return c.primary.Name()
}

// Notify delivers through the primary sink, falling back on failure.
func (c *Chain) Notify(ctx context.Context, n Notification) error {
	err := c.primary.Notify(ctx, n)
	if err == nil {
		return nil
	}

	log.Printf("[notify] %s delivery failed for reminder %d, falling back to %s: %v",
		c.primary.Name(), n.ReminderID, c.fallback.Name(), err)
	return c.fallback.Notify(ctx, n)
}
