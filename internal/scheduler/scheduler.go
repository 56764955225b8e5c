// Package scheduler runs the periodic reminder check loop. Each sweep
// reclassifies overdue reminders, fires notifications for due ones and
// marks them completed.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/notexe/reminderd/internal/notify"
	"github.com/notexe/reminderd/internal/reminder"
)

// Scheduler periodically sweeps the store on a background goroutine.
// It has two states: stopped and running. Start and Shutdown move
// between them; Shutdown lets an in-flight sweep finish rather than
// cancelling it.
type Scheduler struct {
	store    *reminder.Store
	sink     notify.Sink
	interval time.Duration
	onFired  func(id int64)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

// New creates a Scheduler. onFired, if non-nil, is invoked with the
// reminder id right before each notification is delivered, so the
// foreground layer can enable snooze actions for it.
func New(store *reminder.Store, sink notify.Sink, interval time.Duration, onFired func(id int64)) *Scheduler {
	return &Scheduler{
		store:    store,
		sink:     sink,
		interval: interval,
		onFired:  onFired,
	}
}

// Start launches the background loop. The first sweep happens one
// interval after Start; callers that want an immediate check run
// CheckNow first. Starting a running scheduler is an error.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run()
	return nil
}

// Shutdown stops the loop and waits for an in-flight sweep to finish.
// It is safe to call on a stopped scheduler and safe to call more than
// once.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.done
}

// Running reports whether the background loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// CheckNow runs one synchronous sweep. It returns an error only when
// the sweep could not run at all (reclassify or list failed);
// per-reminder failures are logged and skipped.
func (s *Scheduler) CheckNow(ctx context.Context) error {
	return s.sweep(ctx)
}

func (s *Scheduler) run() {
	defer close(s.done)

	log.Printf("[scheduler] Started. Interval: %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			log.Println("[scheduler] Shutting down...")
			return
		case <-ticker.C:
			// Shutdown must not cancel a sweep mid-flight, so the
			// sweep runs under its own context. Delivery retries are
			// bounded, which bounds the sweep.
			if err := s.sweep(context.Background()); err != nil {
				log.Printf("[scheduler] Error: %v", err)
			}
		}
	}
}

// sweep performs one check: reclassify overdue, list pending, then
// fire and complete each due reminder. A failure in the first two
// phases aborts the sweep; a failure on one reminder never stops the
// others.
func (s *Scheduler) sweep(ctx context.Context) error {
	log.Println("[scheduler] Checking reminders...")

	changed, err := s.store.ReclassifyOverdue()
	if err != nil {
		return fmt.Errorf("failed to reclassify overdue reminders: %w", err)
	}
	if changed > 0 {
		log.Printf("[scheduler] Marked %d reminder(s) overdue.", changed)
	}

	pending, err := s.store.List(reminder.FilterStatus(reminder.StatusPending), reminder.SortAscending)
	if err != nil {
		return fmt.Errorf("failed to list pending reminders: %w", err)
	}

	now := time.Now()
	for i := range pending {
		s.fire(ctx, &pending[i], now)
	}
	return nil
}

// fire delivers and completes one reminder if it is due. Delivery
// failure is logged but never blocks the status update: the reminder
// already got its one firing chance.
func (s *Scheduler) fire(ctx context.Context, r *reminder.Reminder, now time.Time) {
	if !r.Due(now) {
		return
	}

	log.Printf("[scheduler] Reminder %d due: %s", r.ID, r.Title)

	if s.onFired != nil {
		s.onFired(r.ID)
	}

	message := r.Description
	if message == "" {
		message = "Time's up!"
	}

	if err := s.sink.Notify(ctx, notify.Notification{
		ReminderID: r.ID,
		Title:      "Reminder: " + r.Title,
		Message:    message,
	}); err != nil {
		log.Printf("[scheduler] Error: delivery failed for reminder %d: %v", r.ID, err)
	}

	if err := s.store.SetStatus(r.ID, reminder.StatusCompleted); err != nil {
		log.Printf("[scheduler] Error: status update failed for reminder %d: %v", r.ID, err)
	}
}
