package tui

import (
	"fmt"
	"strings"

	"quizlink/internal/app"
	"quizlink/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	lockStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(1, 4)
	linkStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)

	noticeStyles = map[app.Level]lipgloss.Style{
		app.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		app.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		app.LevelDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("📝 "+m.session.StudentName()+" · "+m.session.Quiz().ID) + "\n\n")

	switch m.session.State() {
	case app.StateNotStarted:
		fmt.Fprintf(&b, "%d questions, %d seconds each.\n", m.session.QuestionCount(), m.session.QuestionTimeLimit())
		b.WriteString("Stay on this window: switching away or taking screenshots is recorded.\n\n")
		b.WriteString(dimStyle.Render("enter: start · q: quit") + "\n")
	case app.StateInProgress:
		if m.session.Monitor().Obscured() {
			b.WriteString(lockStyle.Render("Quiz hidden: return to the quiz window") + "\n")
		} else {
			m.renderQuestion(&b)
		}
	case app.StateFinished:
		m.renderResult(&b)
	}

	if notices := m.notices.Recent(3); len(notices) > 0 {
		b.WriteString("\n")
		for _, n := range notices {
			b.WriteString(noticeStyles[n.Level].Render(n.Message) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderQuestion(b *strings.Builder) {
	q, ok := m.session.CurrentQuestion()
	if !ok {
		return
	}
	idx := m.session.QuestionIndex()
	fmt.Fprintf(b, "Question %d of %d  %s\n", idx+1, m.session.QuestionCount(), m.progress.ViewAs(m.session.Progress()))

	timer := fmt.Sprintf("⏱  %ds", m.session.Remaining())
	if m.session.Revealing() {
		timer = "⏱  --"
	}
	b.WriteString(dimStyle.Render(timer) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(q.Prompt) + "\n\n")

	chosen, answered := m.session.Answer(idx)
	for i, opt := range q.Options {
		pointer := "  "
		if i == m.cursor && !m.session.Revealing() {
			pointer = cursorStyle.Render("> ")
		}
		mark := "( )"
		if answered && chosen == i {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %s. %s", pointer, mark, domain.OptionLabel(i), opt)
		if m.lastReveal != nil {
			switch {
			case i == m.lastReveal.Correct:
				line = correctStyle.Render(line + "  ✓")
			case m.lastReveal.Answered && i == m.lastReveal.Chosen:
				line = wrongStyle.Render(line + "  ✗")
			}
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	help := "↑/↓ move · enter or 1-4 answer · n next · f submit"
	if m.session.IsLastQuestion() {
		help = "↑/↓ move · enter or 1-4 answer · n finish"
	}
	b.WriteString(dimStyle.Render(help) + "\n")
}

func (m *Model) renderResult(b *strings.Builder) {
	result, ok := m.session.Result()
	if !ok {
		return
	}
	if m.session.Locked() {
		b.WriteString(lockStyle.Render("🔒 Quiz locked after repeated violations") + "\n\n")
	}
	title, message := app.Verdict(result.Percentage())
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(message + "\n\n")
	fmt.Fprintf(b, "Score: %d/%d (%d%%)\n\n", result.Score, result.TotalQuestions, result.Percentage())
	if link := m.session.ResultLink(); link != "" {
		b.WriteString("Share this link with your teacher:\n")
		b.WriteString(linkStyle.Render(link) + "\n\n")
	}
	help := "r retake · q quit"
	if m.session.Locked() {
		help = "q quit"
	}
	b.WriteString(dimStyle.Render(help) + "\n")
}
