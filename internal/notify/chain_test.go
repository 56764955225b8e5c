package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	name  string
	err   error
	calls int
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Notify(context.Context, Notification) error {
	s.calls++
	return s.err
}

func TestChain_PrimaryDelivers(t *testing.T) {
	primary := &stubSink{name: "primary"}
	fallback := &stubSink{name: "fallback"}
	chain := NewChain(primary, fallback)

	err := chain.Notify(context.Background(), Notification{ReminderID: 1, Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls, "fallback must stay quiet when the primary succeeds")
}

func TestChain_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := &stubSink{name: "primary", err: errors.New("no notification daemon")}
	fallback := &stubSink{name: "fallback"}
	chain := NewChain(primary, fallback)

	err := chain.Notify(context.Background(), Notification{ReminderID: 1, Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_PropagatesFallbackError(t *testing.T) {
	primary := &stubSink{name: "primary", err: errors.New("primary down")}
	fallback := &stubSink{name: "fallback", err: errors.New("fallback down")}
	chain := NewChain(primary, fallback)

	err := chain.Notify(context.Background(), Notification{})
	assert.EqualError(t, err, "fallback down")
}

func TestChain_Name(t *testing.T) {
	chain := NewChain(&stubSink{name: "desktop"}, &stubSink{name: "console"})
	assert.Equal(t, "desktop", chain.Name())
}
