package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textsense/textsense-client/internal/models"
)

func TestCenter_EmitAndCurrent(t *testing.T) {
	center := NewCenter(time.Minute)

	_, ok := center.Current()
	assert.False(t, ok)

	center.Emit("saved", models.SeveritySuccess)

	current, ok := center.Current()
	require.True(t, ok)
	assert.Equal(t, "saved", current.Message)
	assert.Equal(t, models.SeveritySuccess, current.Severity)
	assert.False(t, current.CreatedAt.IsZero())
}

func TestCenter_EmitReplacesImmediately(t *testing.T) {
	center := NewCenter(time.Minute)

	center.Emit("first", models.SeverityInfo)
	center.Emit("second", models.SeverityError)

	current, ok := center.Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.Message)
	assert.Equal(t, models.SeverityError, current.Severity)
}

func TestCenter_AutoDismiss(t *testing.T) {
	center := NewCenter(30 * time.Millisecond)

	center.Emit("gone soon", models.SeverityInfo)

	assert.Eventually(t, func() bool {
		_, ok := center.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCenter_StaleTimerNeverClearsNewerNotification(t *testing.T) {
	center := NewCenter(60 * time.Millisecond)

	center.Emit("first", models.SeverityInfo)
	time.Sleep(40 * time.Millisecond)

	// Replacing restarts the timer; the first notification's expiry must
	// not take the second one down with it
	center.Emit("second", models.SeverityInfo)
	time.Sleep(40 * time.Millisecond)

	current, ok := center.Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.Message)

	// The second notification still expires on its own schedule
	assert.Eventually(t, func() bool {
		_, ok := center.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestCenter_DismissIsIdempotent(t *testing.T) {
	center := NewCenter(time.Minute)

	// Dismiss with nothing shown is a no-op
	center.Dismiss()

	center.Emit("notice", models.SeverityInfo)
	center.Dismiss()

	_, ok := center.Current()
	assert.False(t, ok)

	center.Dismiss()
	_, ok = center.Current()
	assert.False(t, ok)
}

func TestCenter_DismissCancelsPendingTimer(t *testing.T) {
	center := NewCenter(50 * time.Millisecond)

	center.Emit("first", models.SeverityInfo)
	center.Dismiss()

	// A new notification emitted right after a manual dismiss must not be
	// cleared by the first one's timer
	center.Emit("second", models.SeverityInfo)
	time.Sleep(30 * time.Millisecond)

	current, ok := center.Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.Message)
}
