package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// OptionCount is the fixed number of options on every question.
const OptionCount = 4

// SchemaVersion tags quiz definitions carried in share links.
const SchemaVersion = "7.0"

// Question models an MCQ question with exactly four options and one correct answer.
type Question struct {
	ID            int64               `json:"id"`
	Prompt        string              `json:"question"`
	Options       [OptionCount]string `json:"options"`
	CorrectAnswer int                 `json:"correctAnswer"`
}

// Validate checks that every field is filled and the correct index is in range.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: prompt is empty", ErrInvalidQuestion)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %s is empty", ErrInvalidQuestion, OptionLabel(i))
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return fmt.Errorf("%w: correct answer %d out of range", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// OptionLabel renders an option index as A, B, C, D.
func OptionLabel(index int) string {
	return string(rune('A' + index))
}

// QuizDefinition is the payload of a quiz share link.
type QuizDefinition struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	Version   string     `json:"version"`
}

// NewQuizID derives an opaque quiz identifier from a timestamp.
func NewQuizID(now time.Time) string {
	return "QUIZ_" + strconv.FormatInt(now.UnixMilli(), 10)
}

// QuizResult is the payload of a result link. Answers maps question index to
// chosen option index; unanswered questions are absent.
type QuizResult struct {
	StudentName    string      `json:"studentName"`
	QuizID         string      `json:"quizId"`
	Score          int         `json:"score"`
	TotalQuestions int         `json:"totalQuestions"`
	Answers        map[int]int `json:"answers"`
	CompletedAt    time.Time   `json:"completedAt"`
}

// Percentage returns the rounded score percentage.
func (r QuizResult) Percentage() int {
	return Percent(float64(r.Score), r.TotalQuestions)
}

// Percent rounds score/total*100, treating a zero total as one.
func Percent(score float64, total int) int {
	if total <= 0 {
		total = 1
	}
	return int(math.Round(score / float64(total) * 100))
}

// Score counts the answers that match each question's correct option.
func Score(questions []Question, answers map[int]int) int {
	score := 0
	for i, q := range questions {
		if chosen, ok := answers[i]; ok && chosen == q.CorrectAnswer {
			score++
		}
	}
	return score
}
