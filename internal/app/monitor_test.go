package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorIgnoresEventsWhenDetached(t *testing.T) {
	m := NewMonitor(nil, 0, nil)
	assert.Equal(t, EscalationNone, m.HandleVisibility(false))
	assert.Equal(t, EscalationNone, m.HandleKey(ParseKeyEvent("printscreen")))
	assert.Equal(t, 0, m.Violations())
	assert.Equal(t, DefaultVisualLock, m.VisualLockDuration())

	m.Unsubscribe()
	m.Unsubscribe()
	assert.False(t, m.Subscribed())
}

func TestMonitorSubscribeTwiceDoesNotDoubleCount(t *testing.T) {
	m := NewMonitor(nil, time.Second, nil)
	m.Subscribe()
	m.Subscribe()

	m.HandleVisibility(false)
	assert.Equal(t, 1, m.Violations())
}

func TestMonitorEscalation(t *testing.T) {
	notifier := &recordingNotifier{}
	locks := 0
	m := NewMonitor(notifier, time.Second, func() { locks++ })
	m.Subscribe()

	assert.Equal(t, EscalationWarn, m.HandleVisibility(false))
	assert.True(t, m.Obscured())
	assert.Equal(t, EscalationNone, m.HandleVisibility(true))
	assert.False(t, m.Obscured())
	assert.Equal(t, 1, m.Violations(), "regaining focus never decrements")

	assert.Equal(t, EscalationTemporaryLock, m.HandleKey(ParseKeyEvent("ctrl+shift+s")))
	assert.True(t, m.Obscured())
	m.Restore()
	assert.False(t, m.Obscured())
	assert.False(t, m.Locked())

	assert.Equal(t, EscalationPermanentLock, m.HandleKey(KeyEvent{Key: "4", Meta: true, Shift: true}))
	assert.True(t, m.Locked())
	assert.Equal(t, 1, locks)

	// The lock detaches listeners, so further events cannot re-fire it.
	assert.Equal(t, EscalationNone, m.HandleVisibility(false))
	m.Subscribe()
	assert.Equal(t, EscalationNone, m.HandleVisibility(false))
	assert.Equal(t, 1, locks)

	require.Contains(t, notifier.messages, "Second violation: quiz temporarily disabled")
	require.Contains(t, notifier.messages, "Too many violations: quiz locked and auto-submitted")
}

func TestContextMenuWarnsWithoutCounting(t *testing.T) {
	notifier := &recordingNotifier{}
	m := NewMonitor(notifier, time.Second, nil)
	m.Subscribe()

	for i := 0; i < 5; i++ {
		assert.Equal(t, EscalationWarn, m.HandleContextMenu())
	}
	assert.Equal(t, 0, m.Violations())
	assert.Len(t, notifier.messages, 5)
	assert.Equal(t, LevelDanger, notifier.levels[0])
}

func TestParseKeyEvent(t *testing.T) {
	assert.True(t, ParseKeyEvent("PrintScreen").IsScreenshot())
	assert.True(t, ParseKeyEvent("ctrl+shift+up").IsScreenshot())
	assert.True(t, ParseKeyEvent("cmd+shift+4").IsScreenshot())
	assert.False(t, ParseKeyEvent("ctrl+c").IsScreenshot())
	assert.False(t, ParseKeyEvent("shift+tab").IsScreenshot())
	assert.False(t, ParseKeyEvent("a").IsScreenshot())
}
