package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleSink_PrintsBanner(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, false)
	sink.bell = false

	err := sink.Notify(context.Background(), Notification{
		ReminderID: 3,
		Title:      "Reminder: Stand-up",
		Message:    "Daily sync in room 4",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[!] REMINDER: Reminder: Stand-up")
	assert.Contains(t, out, ">>> Daily sync in room 4")
	assert.Contains(t, out, strings.Repeat("=", 60))
	assert.Contains(t, out, "at ")
}

func TestConsoleSink_NeverFails(t *testing.T) {
	sink := NewConsoleSink(&bytes.Buffer{}, true)
	sink.bell = false

	// Empty payloads still produce a banner instead of an error.
	err := sink.Notify(context.Background(), Notification{})
	assert.NoError(t, err)
}

func TestConsoleSink_Name(t *testing.T) {
	assert.Equal(t, "console", NewConsoleSink(&bytes.Buffer{}, false).Name())
}
