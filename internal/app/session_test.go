package app

import (
	"testing"
	"time"

	"quizlink/internal/codec"
	"quizlink/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://quiz.example/"

type recordingNotifier struct {
	messages []string
	levels   []Level
}

func (n *recordingNotifier) Notify(level Level, message string) {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.UTC)
	return func() time.Time { return at }
}

func quizWith(n int) domain.QuizDefinition {
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			ID:            int64(1000 + i),
			Prompt:        "Question",
			Options:       [4]string{"A", "B", "C", "D"},
			CorrectAnswer: 1,
		}
	}
	return domain.QuizDefinition{ID: "QUIZ_1", Questions: qs, Version: domain.SchemaVersion}
}

func newTestSession(t *testing.T, n int, notifier Notifier) *Session {
	t.Helper()
	return NewSession("Alice", quizWith(n), SessionOptions{
		BaseURL:      testBaseURL,
		QuestionTime: 3,
		Notifier:     notifier,
		Logger:       zerolog.Nop(),
		Now:          fixedClock(),
	})
}

func TestSessionScoresHalf(t *testing.T) {
	s := newTestSession(t, 2, nil)
	require.NoError(t, s.Start())

	require.NoError(t, s.SelectAnswer(1))
	reveal, err := s.Advance()
	require.NoError(t, err)
	assert.True(t, reveal.IsCorrect())
	assert.Equal(t, 1, s.QuestionIndex())

	require.NoError(t, s.SelectAnswer(2))
	reveal, err = s.Advance()
	require.NoError(t, err)
	assert.False(t, reveal.IsCorrect())

	require.Equal(t, StateFinished, s.State())
	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 50, result.Percentage())
	assert.Equal(t, map[int]int{0: 1, 1: 2}, result.Answers)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 123000000, time.UTC), result.CompletedAt)
	assert.Equal(t, "completed", s.FinishedBy())

	decoded, ok := codec.DecodeResult(s.ResultLink())
	require.True(t, ok)
	assert.Equal(t, result, decoded)
}

func TestSelectAnswerOverwrites(t *testing.T) {
	s := newTestSession(t, 1, nil)
	require.NoError(t, s.Start())
	require.NoError(t, s.SelectAnswer(0))
	require.NoError(t, s.SelectAnswer(3))

	chosen, ok := s.Answer(0)
	require.True(t, ok)
	assert.Equal(t, 3, chosen)
	assert.Equal(t, 0, s.QuestionIndex(), "selecting never advances")

	assert.ErrorIs(t, s.SelectAnswer(4), domain.ErrInvalidOption)
}

func TestTimerExpiryRevealsOnceAndLeavesAnswerAbsent(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newTestSession(t, 2, notifier)
	require.NoError(t, s.Start())
	require.NoError(t, s.SelectAnswer(1))
	_, err := s.Advance()
	require.NoError(t, err)

	fired := 0
	for i := 0; i < 10; i++ {
		if reveal, expired := s.Tick(); expired {
			fired++
			assert.True(t, reveal.TimedOut)
			assert.False(t, reveal.Answered)
		}
	}
	assert.Equal(t, 1, fired, "expiry must fire exactly once")
	assert.True(t, s.Revealing())
	assert.ErrorIs(t, s.SelectAnswer(1), domain.ErrAnswerClosed)
	assert.Contains(t, notifier.messages, "Time is up! Here is the correct answer.")

	_, err = s.Advance()
	require.NoError(t, err)
	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 1, result.Score)
	_, answered := result.Answers[1]
	assert.False(t, answered)
}

func TestTimerResetsOnEveryQuestion(t *testing.T) {
	s := newTestSession(t, 3, nil)
	require.NoError(t, s.Start())
	assert.Equal(t, 3, s.Remaining())

	s.Tick()
	assert.Equal(t, 2, s.Remaining())

	_, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, 3, s.Remaining())
	assert.False(t, s.Revealing())
}

func TestThirdViolationForcesFinish(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newTestSession(t, 5, notifier)
	require.NoError(t, s.Start())

	require.NoError(t, s.SelectAnswer(1))
	_, err := s.Advance()
	require.NoError(t, err)
	require.NoError(t, s.SelectAnswer(1))
	require.Equal(t, 1, s.QuestionIndex())

	m := s.Monitor()
	assert.Equal(t, EscalationWarn, m.HandleVisibility(false))
	assert.Equal(t, EscalationTemporaryLock, m.HandleKey(ParseKeyEvent("printscreen")))
	assert.Equal(t, EscalationPermanentLock, m.HandleVisibility(false))

	assert.Equal(t, StateFinished, s.State())
	assert.True(t, s.Locked())
	assert.Equal(t, "locked", s.FinishedBy())
	assert.False(t, m.Subscribed())

	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Len(t, result.Answers, 2)
	assert.NotEmpty(t, s.ResultLink())

	assert.ErrorIs(t, s.SelectAnswer(1), domain.ErrNotInProgress)
	assert.Equal(t, EscalationNone, m.HandleVisibility(false), "listeners are detached after the lock")
	assert.Equal(t, 3, m.Violations())
}

func TestFinishIsIdempotent(t *testing.T) {
	s := newTestSession(t, 2, nil)
	assert.Equal(t, domain.QuizResult{}, s.Finish(), "finishing before start is a no-op")

	require.NoError(t, s.Start())
	first := s.Finish()
	second := s.Finish()
	assert.Equal(t, first, second)
	assert.Equal(t, 0, first.Score)

	_, err := s.Advance()
	assert.ErrorIs(t, err, domain.ErrNotInProgress)
}

func TestRestartClearsAttempt(t *testing.T) {
	s := newTestSession(t, 2, nil)
	require.NoError(t, s.Start())
	require.NoError(t, s.SelectAnswer(1))
	s.Monitor().HandleVisibility(false)
	s.Finish()

	s.Restart()
	assert.Equal(t, StateNotStarted, s.State())
	assert.Equal(t, 0, s.Monitor().Violations())
	_, ok := s.Result()
	assert.False(t, ok)

	require.NoError(t, s.Start())
	assert.Empty(t, s.Answers())
	assert.ErrorIs(t, s.Start(), domain.ErrSessionStarted)
}

func TestJoinValidatesInput(t *testing.T) {
	link, err := codec.QuizLink(testBaseURL, quizWith(2))
	require.NoError(t, err)
	opts := SessionOptions{BaseURL: testBaseURL, Logger: zerolog.Nop()}

	_, err = Join(link, "  ", opts)
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = Join("", "Alice", opts)
	assert.ErrorIs(t, err, domain.ErrLinkRequired)

	_, err = Join("https://quiz.example/#result=abc", "Alice", opts)
	assert.ErrorIs(t, err, domain.ErrInvalidLinkFormat)

	_, err = Join(testBaseURL+codec.QuizMarker+"garbage", "Alice", opts)
	assert.ErrorIs(t, err, domain.ErrInvalidQuizLink)

	notifier := &recordingNotifier{}
	opts.Notifier = notifier
	s, err := Join(link, " Alice ", opts)
	require.NoError(t, err)
	assert.Equal(t, "Alice", s.StudentName())
	assert.Equal(t, 2, s.QuestionCount())
	assert.Equal(t, StateNotStarted, s.State())
	assert.Equal(t, []Level{LevelSuccess}, notifier.levels)
}

func TestVerdictBands(t *testing.T) {
	title, _ := Verdict(100)
	assert.Equal(t, "Perfect Score! 🎉", title)
	_, msg := Verdict(80)
	assert.Equal(t, "Very good! You scored 80%!", msg)
	title, _ = Verdict(60)
	assert.Equal(t, "Good Work! 👍", title)
	title, _ = Verdict(10)
	assert.Equal(t, "Keep Learning! 📚", title)
}
