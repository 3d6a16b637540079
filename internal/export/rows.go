package export

import (
	"strconv"
	"time"

	"quizlink/internal/app"
	"quizlink/internal/domain"
)

// Sheet is a named grid of cell values with optional column widths (in characters).
type Sheet struct {
	Name   string
	Rows   [][]any
	Widths []float64
}

const displayTime = "2006-01-02 15:04:05"

// QuestionsSheet lists the authored questions with their correct answer text.
func QuestionsSheet(def domain.QuizDefinition) Sheet {
	rows := [][]any{
		{"Quiz ID", orDefault(def.ID, "Not generated"), "", "", "", ""},
		{"Question", "Option A", "Option B", "Option C", "Option D", "Correct Answer"},
	}
	for _, q := range def.Questions {
		rows = append(rows, []any{q.Prompt, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectOption()})
	}
	return Sheet{Name: "Questions", Rows: rows}
}

// ResultsSheet lists every collected result followed by a summary block.
// questionCount is the size of the held quiz, zero when none is held.
func ResultsSheet(quizID string, results []domain.QuizResult, questionCount int, exportedAt time.Time) Sheet {
	rows := [][]any{
		{"Quiz ID", orDefault(quizID, "Unknown"), "", "", ""},
		{"Export Date", exportedAt.Format(displayTime), "", "", ""},
		{"Student Name", "Score", "Total Questions", "Percentage", "Completed At"},
	}
	for _, r := range results {
		rows = append(rows, []any{
			r.StudentName,
			r.Score,
			r.TotalQuestions,
			strconv.Itoa(r.Percentage()) + "%",
			r.CompletedAt.Local().Format(displayTime),
		})
	}

	s := app.Summarize(results, questionCount)
	rows = append(rows,
		[]any{},
		[]any{"Summary Statistics", "", "", "", ""},
		[]any{"Total Students", s.TotalStudents, "", "", ""},
		[]any{"Average Score", strconv.FormatFloat(s.AverageScore, 'f', 1, 64), questionCount, strconv.Itoa(s.AveragePercentage) + "%", ""},
		[]any{"Highest Score", s.Highest, questionCount, "", ""},
		[]any{"Lowest Score", s.Lowest, questionCount, "", ""},
	)
	return Sheet{Name: "Student Results", Rows: rows, Widths: []float64{25, 10, 15, 15, 20}}
}

// QuestionStatsSheet shows how often each question was answered correctly.
func QuestionStatsSheet(stats []domain.QuestionStat) Sheet {
	rows := [][]any{{"#", "Question", "Correct", "Answered", "Students", "Correct Rate"}}
	for _, st := range stats {
		rows = append(rows, []any{
			st.Index + 1,
			st.Prompt,
			st.Correct,
			st.Answered,
			st.Total,
			strconv.Itoa(domain.Percent(float64(st.Correct), st.Total)) + "%",
		})
	}
	return Sheet{Name: "Question Stats", Rows: rows, Widths: []float64{5, 50, 10, 10, 10, 14}}
}

// StudentSheet is the per-question breakdown a student downloads after finishing.
func StudentSheet(def domain.QuizDefinition, result domain.QuizResult, takenAt time.Time) Sheet {
	rows := [][]any{
		{"Student Name", result.StudentName, "", ""},
		{"Quiz ID", orDefault(def.ID, "Unknown"), "", ""},
		{"Question", "Your Answer", "Correct Answer", "Result"},
	}
	for i, q := range def.Questions {
		answer := "Not answered"
		verdict := "✗ Wrong"
		if chosen, ok := result.Answers[i]; ok {
			if chosen >= 0 && chosen < domain.OptionCount {
				answer = q.Options[chosen]
			}
			if chosen == q.CorrectAnswer {
				verdict = "✓ Correct"
			}
		}
		rows = append(rows, []any{q.Prompt, answer, q.CorrectOption(), verdict})
	}
	total := len(def.Questions)
	rows = append(rows,
		[]any{},
		[]any{"Total Score", strconv.Itoa(result.Score) + "/" + strconv.Itoa(total), "", strconv.Itoa(domain.Percent(float64(result.Score), total)) + "%"},
		[]any{"Date Taken", takenAt.Format(displayTime), "", ""},
	)
	return Sheet{Name: "My Results", Rows: rows, Widths: []float64{50, 20, 20, 15}}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
