package app

import (
	"strings"
	"time"
)

// Escalation tells the driver what the monitor decided after an event.
type Escalation int

const (
	EscalationNone Escalation = iota
	// EscalationWarn: a warning was shown.
	EscalationWarn
	// EscalationTemporaryLock: the interface is obscured until Restore is called
	// after VisualLockDuration.
	EscalationTemporaryLock
	// EscalationPermanentLock: the session was locked and force-finished.
	EscalationPermanentLock
)

const (
	lockThreshold   = 3
	visualLockCount = 2

	// DefaultVisualLock is how long the second violation obscures the interface.
	DefaultVisualLock = 2 * time.Second
)

// KeyEvent is a key press as reported by the host, e.g. "printscreen" or "ctrl+shift+s".
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Shift bool
	Meta  bool
}

// ParseKeyEvent builds a KeyEvent from a "+"-joined key string.
func ParseKeyEvent(s string) KeyEvent {
	ev := KeyEvent{Key: strings.ToLower(s)}
	for _, part := range strings.Split(ev.Key, "+") {
		switch part {
		case "ctrl":
			ev.Ctrl = true
		case "shift":
			ev.Shift = true
		case "meta", "cmd", "super":
			ev.Meta = true
		}
	}
	return ev
}

// IsScreenshot reports whether the key looks like a screen capture shortcut.
func (k KeyEvent) IsScreenshot() bool {
	return k.Key == "printscreen" || k.Key == "print" || (k.Ctrl && k.Shift) || (k.Meta && k.Shift)
}

// Monitor counts anti-cheat violations for one session and escalates
// warn -> temporary visual lock -> permanent lock.
type Monitor struct {
	notifier   Notifier
	onLock     func()
	visualLock time.Duration

	subscribed bool
	violations int
	obscured   bool
	locked     bool
}

// NewMonitor creates a monitor; onLock is invoked once when the third violation lands.
func NewMonitor(notifier Notifier, visualLock time.Duration, onLock func()) *Monitor {
	if visualLock <= 0 {
		visualLock = DefaultVisualLock
	}
	return &Monitor{notifier: notifier, visualLock: visualLock, onLock: onLock}
}

// Subscribe attaches the monitor to host events. Calling it twice is a no-op.
func (m *Monitor) Subscribe() {
	if m.locked {
		return
	}
	m.subscribed = true
}

// Unsubscribe detaches the monitor. Calling it when detached is a no-op.
func (m *Monitor) Unsubscribe() {
	m.subscribed = false
	m.obscured = false
}

// Reset clears the violation counter for a restarted session.
func (m *Monitor) Reset() {
	m.subscribed = false
	m.violations = 0
	m.obscured = false
	m.locked = false
}

func (m *Monitor) Subscribed() bool { return m.subscribed }
func (m *Monitor) Violations() int  { return m.violations }
func (m *Monitor) Obscured() bool   { return m.obscured }
func (m *Monitor) Locked() bool     { return m.locked }

// VisualLockDuration is how long a temporary lock lasts before Restore.
func (m *Monitor) VisualLockDuration() time.Duration { return m.visualLock }

// HandleKey counts screenshot shortcuts as violations.
func (m *Monitor) HandleKey(ev KeyEvent) Escalation {
	if !m.subscribed || !ev.IsScreenshot() {
		return EscalationNone
	}
	m.violations++
	notify(m.notifier, LevelDanger, "Screenshots are disabled during the quiz.")
	return m.escalate()
}

// HandleVisibility counts loss of visibility or focus; regaining it only clears
// the obscured indicator.
func (m *Monitor) HandleVisibility(visible bool) Escalation {
	if !m.subscribed {
		return EscalationNone
	}
	if visible {
		m.obscured = false
		return EscalationNone
	}
	m.violations++
	m.obscured = true
	notify(m.notifier, LevelWarning, "Please stay on the quiz page.")
	return m.escalate()
}

// HandleContextMenu warns on every right click without counting a violation.
func (m *Monitor) HandleContextMenu() Escalation {
	if !m.subscribed {
		return EscalationNone
	}
	notify(m.notifier, LevelDanger, "Right-clicking is disabled during the quiz.")
	return EscalationWarn
}

// Restore lifts a temporary visual lock.
func (m *Monitor) Restore() {
	m.obscured = false
}

func (m *Monitor) escalate() Escalation {
	switch {
	case m.violations >= lockThreshold:
		m.lock()
		return EscalationPermanentLock
	case m.violations == visualLockCount:
		m.obscured = true
		notify(m.notifier, LevelDanger, "Second violation: quiz temporarily disabled")
		return EscalationTemporaryLock
	default:
		return EscalationWarn
	}
}

func (m *Monitor) lock() {
	if m.locked {
		return
	}
	m.locked = true
	m.Unsubscribe()
	notify(m.notifier, LevelDanger, "Too many violations: quiz locked and auto-submitted")
	if m.onLock != nil {
		m.onLock()
	}
}
