package tui

import "quizlink/internal/app"

// Notice is one notification shown under the quiz.
type Notice struct {
	Level   app.Level
	Message string
}

// Notices buffers notifications raised while the program's Update loop runs.
// It is only touched from that loop.
type Notices struct {
	items []Notice
}

func (n *Notices) Notify(level app.Level, message string) {
	n.items = append(n.items, Notice{Level: level, Message: message})
}

// Recent returns up to max of the latest notices, oldest first.
func (n *Notices) Recent(max int) []Notice {
	if len(n.items) <= max {
		return n.items
	}
	return n.items[len(n.items)-max:]
}

func (n *Notices) Clear() {
	n.items = nil
}
