package tui

import (
	"time"

	"quizlink/internal/app"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Options tunes the pacing of the quiz UI.
type Options struct {
	TickInterval time.Duration
	RevealDelay  time.Duration
}

const (
	defaultTickInterval = time.Second
	defaultRevealDelay  = 2500 * time.Millisecond
)

// Model is the bubbletea model driving a single quiz session. Every session
// call happens inside Update, so the session never sees concurrent access.
type Model struct {
	session  *app.Session
	notices  *Notices
	opts     Options
	progress progress.Model

	cursor         int
	gen            int
	pendingAdvance bool
	lastReveal     *app.Reveal
	quitting       bool
}

type tickMsg struct{ gen int }

type advanceMsg struct{ gen int }

type restoreMsg struct{}

// NewModel wraps a session. notices should be the Notifier the session was built with.
func NewModel(session *app.Session, notices *Notices, opts Options) *Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = defaultRevealDelay
	}
	if notices == nil {
		notices = &Notices{}
	}
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 40
	return &Model{
		session:  session,
		notices:  notices,
		opts:     opts,
		progress: prog,
	}
}

// Session exposes the driven session so callers can read the result after Run.
func (m *Model) Session() *app.Session { return m.session }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.FocusMsg:
		return m, m.escalate(m.session.Monitor().HandleVisibility(true))

	case tea.BlurMsg:
		return m, m.escalate(m.session.Monitor().HandleVisibility(false))

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress {
			return m, m.escalate(m.session.Monitor().HandleContextMenu())
		}
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || m.session.State() != app.StateInProgress || m.session.Revealing() {
			return m, nil
		}
		if reveal, expired := m.session.Tick(); expired {
			return m, m.scheduleAdvance(reveal)
		}
		return m, m.tick()

	case advanceMsg:
		if msg.gen != m.gen || !m.pendingAdvance {
			return m, nil
		}
		return m, m.advance()

	case restoreMsg:
		m.session.Monitor().Restore()
		return m, nil

	case tea.WindowSizeMsg:
		if w := msg.Width - 20; w > 10 && w < 60 {
			m.progress.Width = w
		}
		return m, nil

	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		m.progress = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	event := app.ParseKeyEvent(key)
	if event.IsScreenshot() {
		return m.escalate(m.session.Monitor().HandleKey(event))
	}

	switch m.session.State() {
	case app.StateNotStarted:
		switch key {
		case "enter", "s":
			return m.start()
		case "q", "esc":
			m.quitting = true
			return tea.Quit
		}

	case app.StateInProgress:
		if m.session.Monitor().Obscured() {
			return nil
		}
		return m.handleQuizKey(key)

	case app.StateFinished:
		switch key {
		case "r":
			if m.session.Locked() {
				return nil
			}
			m.session.Restart()
			m.notices.Clear()
			m.lastReveal = nil
			m.gen++
			return m.start()
		case "q", "enter", "esc":
			m.quitting = true
			return tea.Quit
		}
	}
	return nil
}

func (m *Model) handleQuizKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < 3 {
			m.cursor++
		}
	case "1", "2", "3", "4":
		m.cursor = int(key[0] - '1')
		m.choose()
	case "a", "b", "c", "d":
		m.cursor = int(key[0] - 'a')
		m.choose()
	case " ", "enter":
		m.choose()
	case "n", "right", "tab":
		if m.pendingAdvance {
			return nil
		}
		reveal, err := m.session.Next()
		if err != nil {
			return nil
		}
		return m.scheduleAdvance(reveal)
	case "f":
		m.gen++
		m.pendingAdvance = false
		m.session.Finish()
	}
	return nil
}

func (m *Model) choose() {
	_ = m.session.SelectAnswer(m.cursor)
}

func (m *Model) start() tea.Cmd {
	if err := m.session.Start(); err != nil {
		return nil
	}
	m.cursor = 0
	m.gen++
	return m.tick()
}

func (m *Model) advance() tea.Cmd {
	m.pendingAdvance = false
	if _, err := m.session.Advance(); err != nil {
		return nil
	}
	m.lastReveal = nil
	m.cursor = 0
	m.gen++
	if m.session.State() != app.StateInProgress {
		return nil
	}
	return m.tick()
}

func (m *Model) scheduleAdvance(reveal app.Reveal) tea.Cmd {
	m.lastReveal = &reveal
	m.pendingAdvance = true
	gen := m.gen
	return tea.Tick(m.opts.RevealDelay, func(time.Time) tea.Msg { return advanceMsg{gen: gen} })
}

func (m *Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *Model) escalate(e app.Escalation) tea.Cmd {
	switch e {
	case app.EscalationTemporaryLock:
		return tea.Tick(m.session.Monitor().VisualLockDuration(), func(time.Time) tea.Msg { return restoreMsg{} })
	case app.EscalationPermanentLock:
		m.gen++
		m.pendingAdvance = false
		m.lastReveal = nil
	}
	return nil
}
