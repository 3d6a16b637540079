package app

import (
	"context"
	"strings"
	"time"

	"quizlink/internal/codec"
	"quizlink/internal/domain"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// QuizBook holds the author's current quiz and persists it after every change.
type QuizBook struct {
	storage  *LocalStorage
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time

	quizID    string
	questions []domain.Question
	lastID    int64
}

func NewQuizBook(storage *LocalStorage, notifier Notifier, logger zerolog.Logger) *QuizBook {
	return NewQuizBookWithClock(storage, notifier, logger, time.Now)
}

// NewQuizBookWithClock allows deterministic identifiers in tests.
func NewQuizBookWithClock(storage *LocalStorage, notifier Notifier, logger zerolog.Logger, now func() time.Time) *QuizBook {
	return &QuizBook{storage: storage, notifier: notifier, logger: logger, now: now}
}

// Load restores the questions and quiz ID from storage.
func (b *QuizBook) Load(ctx context.Context) {
	var questions []domain.Question
	if b.storage.LoadJSON(ctx, KeyQuestions, &questions) {
		b.questions = questions
	}
	if id, ok := b.storage.LoadString(ctx, KeyQuizID); ok {
		b.quizID = id
	}
	for _, q := range b.questions {
		if q.ID > b.lastID {
			b.lastID = q.ID
		}
	}
}

func (b *QuizBook) QuizID() string { return b.quizID }

// Questions returns a copy of the current questions.
func (b *QuizBook) Questions() []domain.Question {
	out := make([]domain.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Definition is the shareable form of the current quiz.
func (b *QuizBook) Definition() domain.QuizDefinition {
	return domain.QuizDefinition{ID: b.quizID, Questions: b.Questions(), Version: domain.SchemaVersion}
}

// AddQuestion validates and appends a question, allocating a quiz ID if needed.
func (b *QuizBook) AddQuestion(ctx context.Context, prompt string, options [domain.OptionCount]string, correct int) (domain.Question, error) {
	q := domain.Question{
		ID:            b.nextID(),
		Prompt:        strings.TrimSpace(prompt),
		Options:       trimOptions(options),
		CorrectAnswer: correct,
	}
	if err := q.Validate(); err != nil {
		notify(b.notifier, LevelWarning, "Please fill all fields!")
		return domain.Question{}, err
	}
	b.questions = append(b.questions, q)
	b.save(ctx)
	notify(b.notifier, LevelSuccess, "Question added successfully!")
	b.logger.Debug().Int64("question", q.ID).Str("quiz", b.quizID).Msg("question added")
	return q, nil
}

// ReplaceQuestion swaps every field of an existing question except its ID.
func (b *QuizBook) ReplaceQuestion(ctx context.Context, id int64, prompt string, options [domain.OptionCount]string, correct int) (domain.Question, error) {
	_, idx, ok := lo.FindIndexOf(b.questions, func(q domain.Question) bool { return q.ID == id })
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	q := domain.Question{ID: id, Prompt: strings.TrimSpace(prompt), Options: trimOptions(options), CorrectAnswer: correct}
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	b.questions[idx] = q
	b.save(ctx)
	notify(b.notifier, LevelSuccess, "Question updated successfully!")
	return q, nil
}

// DeleteQuestion removes a single question by ID.
func (b *QuizBook) DeleteQuestion(ctx context.Context, id int64) error {
	kept := lo.Reject(b.questions, func(q domain.Question, _ int) bool { return q.ID == id })
	if len(kept) == len(b.questions) {
		return domain.ErrQuestionNotFound
	}
	b.questions = kept
	b.save(ctx)
	notify(b.notifier, LevelSuccess, "Question deleted successfully!")
	return nil
}

// ClearQuestions removes every question but keeps the quiz ID.
func (b *QuizBook) ClearQuestions(ctx context.Context) {
	b.questions = nil
	b.save(ctx)
	notify(b.notifier, LevelSuccess, "All questions cleared!")
}

// NewQuiz starts over with a fresh quiz ID and drops questions and collected results.
func (b *QuizBook) NewQuiz(ctx context.Context) string {
	b.questions = nil
	b.quizID = domain.NewQuizID(b.now())
	b.storage.Remove(ctx, KeyQuestions, KeyQuizID, KeyResults)
	b.storage.Save(ctx, map[string]any{KeyQuizID: b.quizID})
	notify(b.notifier, LevelSuccess, "New quiz created! Add questions to generate shareable link.")
	b.logger.Info().Str("quiz", b.quizID).Msg("new quiz")
	return b.quizID
}

// ShareLink encodes the current quiz; false when there are no questions yet.
func (b *QuizBook) ShareLink(ctx context.Context, baseURL string) (string, bool) {
	if len(b.questions) == 0 {
		return "", false
	}
	b.ensureQuizID(ctx)
	link, err := codec.QuizLink(baseURL, b.Definition())
	if err != nil {
		b.logger.Error().Err(err).Msg("encode quiz link")
		return "", false
	}
	return link, true
}

func (b *QuizBook) ensureQuizID(ctx context.Context) {
	if b.quizID != "" {
		return
	}
	b.quizID = domain.NewQuizID(b.now())
	b.storage.Save(ctx, map[string]any{KeyQuizID: b.quizID})
}

func (b *QuizBook) save(ctx context.Context) {
	if b.quizID == "" {
		b.quizID = domain.NewQuizID(b.now())
	}
	questions := b.questions
	if questions == nil {
		questions = []domain.Question{}
	}
	b.storage.Save(ctx, map[string]any{
		KeyQuestions: questions,
		KeyQuizID:    b.quizID,
	})
}

// nextID derives a time-based ID, bumped past the last one so IDs stay unique.
func (b *QuizBook) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

func trimOptions(options [domain.OptionCount]string) [domain.OptionCount]string {
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}
	return options
}
