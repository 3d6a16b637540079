package app

import "github.com/rs/zerolog"

// Level is the severity of a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notifier shows non-blocking notifications to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// LogNotifier writes notifications to a logger. Used where no UI is attached.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(level Level, message string) {
	event := n.Logger.Info()
	switch level {
	case LevelWarning:
		event = n.Logger.Warn()
	case LevelDanger:
		event = n.Logger.Error()
	}
	event.Str("level", string(level)).Msg(message)
}

func notify(n Notifier, level Level, message string) {
	if n != nil {
		n.Notify(level, message)
	}
}
