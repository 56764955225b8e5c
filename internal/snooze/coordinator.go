// Package snooze coordinates the "currently notifying" reminder slot.
// The scheduler sets the slot when it fires a notification; the
// foreground layer snoozes or dismisses it. The slot holds at most one
// id: firing a second notification while one is outstanding overwrites
// the first, which the UI relies on.
package snooze

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/notexe/reminderd/internal/reminder"
)

// ErrNoActiveNotification is returned by Snooze when no notification
// is currently showing.
var ErrNoActiveNotification = errors.New("no active notification to snooze")

// Coordinator tracks the reminder whose notification is currently
// showing and applies snooze actions to it. The slot is written from
// the scheduler goroutine and consumed from the foreground context, so
// every access goes through one mutex.
type Coordinator struct {
	mu     sync.Mutex
	store  *reminder.Store
	active int64
	set    bool
}

// NewCoordinator creates a Coordinator over the given store.
func NewCoordinator(store *reminder.Store) *Coordinator {
	return &Coordinator{store: store}
}

// MarkNotifying records id as the currently-notifying reminder,
// overwriting any previous slot value.
func (c *Coordinator) MarkNotifying(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = id
	c.set = true
}

// Active returns the currently-notifying reminder id, if any.
func (c *Coordinator) Active() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.active, c.set
}

// Clear empties the slot unconditionally. The UI calls it when the
// user dismisses a notification without snoozing.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = 0
	c.set = false
}

// Snooze pushes the currently-notifying reminder's due time forward by
// the given number of minutes, appends an audit note to its
// description, forces its status back to Pending and clears the slot.
// The firing tick usually marks the reminder Completed before the user
// reacts, so the explicit status reset is what re-queues it.
//
// Returns ErrNoActiveNotification when the slot is empty, and a
// NotFoundError (clearing the slot) when the reminder was deleted
// while its notification was showing.
func (c *Coordinator) Snooze(minutes int) (*reminder.Reminder, error) {
	if minutes <= 0 {
		return nil, &reminder.ValidationError{Field: "minutes", Reason: fmt.Sprintf("snooze minutes must be positive, got %d", minutes)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.set {
		return nil, ErrNoActiveNotification
	}
	id := c.active

	r, err := c.store.Get(id)
	if err != nil {
		if reminder.IsNotFound(err) {
			c.active = 0
			c.set = false
		}
		return nil, err
	}

	now := time.Now()
	newDue := now.Add(time.Duration(minutes) * time.Minute)
	description := r.Description + fmt.Sprintf("\n\nSnoozed for %d min at %s", minutes, now.Format("15:04:05"))

	if err := c.store.Update(id, r.Title, description, newDue); err != nil {
		if reminder.IsNotFound(err) {
			c.active = 0
			c.set = false
		}
		return nil, err
	}

	// Update leaves status untouched, and the firing path has already
	// set it to Completed (or reclassification to Overdue), so the
	// reminder only becomes eligible for firing again with an explicit
	// reset.
	if err := c.store.SetStatus(id, reminder.StatusPending); err != nil {
		return nil, err
	}

	c.active = 0
	c.set = false

	return &reminder.Reminder{
		ID:          id,
		Title:       r.Title,
		Description: description,
		DueAt:       newDue,
		Status:      reminder.StatusPending,
	}, nil
}
