package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notexe/reminderd/internal/notify"
	"github.com/notexe/reminderd/internal/reminder"
)

// recordingSink captures every notification it receives and can be told
// to fail each delivery.
type recordingSink struct {
	mu       sync.Mutex
	received []notify.Notification
	err      error
}

func (r *recordingSink) Name() string { return "recording" }

func (r *recordingSink) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, n)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.received)
}

func (r *recordingSink) notifications() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.received...)
}

// blockingSink parks inside Notify until released, to hold a sweep
// in flight.
type blockingSink struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSink) Name() string { return "blocking" }

func (b *blockingSink) Notify(context.Context, notify.Notification) error {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return nil
}

func newTestStore(t *testing.T) *reminder.Store {
	t.Helper()
	store, err := reminder.NewStore(filepath.Join(t.TempDir(), "reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCheckNow_FiresDueReminder(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	id, err := store.Add("Stand-up", "", time.Now().Add(-30*time.Second))
	require.NoError(t, err)

	var firedID int64
	sched := New(store, sink, time.Minute, func(id int64) { firedID = id })
	require.NoError(t, sched.CheckNow(context.Background()))

	got := sink.notifications()
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ReminderID)
	assert.Equal(t, "Reminder: Stand-up", got[0].Title)
	assert.Equal(t, "Time's up!", got[0].Message, "empty description gets the default message")
	assert.Equal(t, id, firedID)

	r, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusCompleted, r.Status)
}

func TestCheckNow_UsesDescriptionAsMessage(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	_, err := store.Add("Stand-up", "Daily sync in room 4", time.Now().Add(-30*time.Second))
	require.NoError(t, err)

	sched := New(store, sink, time.Minute, nil)
	require.NoError(t, sched.CheckNow(context.Background()))

	got := sink.notifications()
	require.Len(t, got, 1)
	assert.Equal(t, "Daily sync in room 4", got[0].Message)
}

func TestCheckNow_SkipsFutureReminder(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	id, err := store.Add("Later", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sched := New(store, sink, time.Minute, nil)
	require.NoError(t, sched.CheckNow(context.Background()))

	assert.Zero(t, sink.count())
	r, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusPending, r.Status)
}

func TestCheckNow_ReclassifiesStaleInsteadOfFiring(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	id, err := store.Add("Missed", "", time.Now().Add(-10*time.Minute))
	require.NoError(t, err)

	sched := New(store, sink, time.Minute, nil)
	require.NoError(t, sched.CheckNow(context.Background()))

	assert.Zero(t, sink.count(), "a reminder past the grace window must not fire")
	r, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusOverdue, r.Status)
}

func TestCheckNow_FiresOnlyOnce(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	_, err := store.Add("Once", "", time.Now().Add(-30*time.Second))
	require.NoError(t, err)

	sched := New(store, sink, time.Minute, nil)
	require.NoError(t, sched.CheckNow(context.Background()))
	require.NoError(t, sched.CheckNow(context.Background()))

	assert.Equal(t, 1, sink.count(), "completed reminders must not fire again")
}

func TestCheckNow_DeliveryFailureStillCompletes(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{err: errors.New("delivery broken")}

	first, err := store.Add("First", "", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	second, err := store.Add("Second", "", time.Now().Add(-30*time.Second))
	require.NoError(t, err)

	sched := New(store, sink, time.Minute, nil)
	require.NoError(t, sched.CheckNow(context.Background()))

	assert.Equal(t, 2, sink.count(), "one failed delivery must not stop the rest")
	for _, id := range []int64{first, second} {
		r, err := store.Get(id)
		require.NoError(t, err)
		assert.Equal(t, reminder.StatusCompleted, r.Status, "reminder %d", id)
	}
}

func TestCheckNow_EmptyStore(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	sched := New(store, sink, time.Minute, nil)
	require.NoError(t, sched.CheckNow(context.Background()))
	assert.Zero(t, sink.count())
}

func TestStartAndShutdown(t *testing.T) {
	store := newTestStore(t)
	sched := New(store, &recordingSink{}, time.Hour, nil)

	assert.False(t, sched.Running())

	require.NoError(t, sched.Start())
	assert.True(t, sched.Running())

	err := sched.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	sched.Shutdown()
	assert.False(t, sched.Running())

	// Stopping again is a no-op, and a stopped scheduler can restart.
	sched.Shutdown()
	require.NoError(t, sched.Start())
	sched.Shutdown()
}

func TestStart_RejectsNonPositiveInterval(t *testing.T) {
	store := newTestStore(t)

	sched := New(store, &recordingSink{}, 0, nil)
	require.Error(t, sched.Start())
	assert.False(t, sched.Running())
}

func TestPeriodicSweepFires(t *testing.T) {
	store := newTestStore(t)
	sink := &recordingSink{}

	id, err := store.Add("Tick", "", time.Now().Add(-30*time.Second))
	require.NoError(t, err)

	sched := New(store, sink, 20*time.Millisecond, nil)
	require.NoError(t, sched.Start())
	defer sched.Shutdown()

	require.Eventually(t, func() bool { return sink.count() > 0 },
		2*time.Second, 10*time.Millisecond, "background loop never fired the due reminder")

	require.Eventually(t, func() bool {
		r, err := store.Get(id)
		return err == nil && r.Status == reminder.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShutdown_WaitsForInFlightSweep(t *testing.T) {
	store := newTestStore(t)
	sink := &blockingSink{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	id, err := store.Add("Slow", "", time.Now().Add(-30*time.Second))
	require.NoError(t, err)

	sched := New(store, sink, 20*time.Millisecond, nil)
	require.NoError(t, sched.Start())

	select {
	case <-sink.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never reached the sink")
	}

	stopped := make(chan struct{})
	go func() {
		sched.Shutdown()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Shutdown returned while a sweep was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the sweep finished")
	}

	r, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, reminder.StatusCompleted, r.Status, "the joined sweep must finish its work")
}
