package app

import (
	"strconv"
	"strings"
	"time"

	"quizlink/internal/codec"
	"quizlink/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionState is the coarse position of a quiz attempt.
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateInProgress
	StateFinished
)

func (s SessionState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// DefaultQuestionTime is the per-question countdown in ticks (seconds).
const DefaultQuestionTime = 60

// SessionOptions configures a quiz attempt.
type SessionOptions struct {
	BaseURL      string
	QuestionTime int
	VisualLock   time.Duration
	Notifier     Notifier
	Logger       zerolog.Logger
	Now          func() time.Time
}

// Reveal describes a question at the moment its correct answer is shown.
type Reveal struct {
	QuestionIndex int
	Chosen        int
	Answered      bool
	Correct       int
	TimedOut      bool
}

// IsCorrect reports whether the recorded answer matched.
func (r Reveal) IsCorrect() bool {
	return r.Answered && r.Chosen == r.Correct
}

// Session is one student's attempt at a quiz: question sequencing, the
// per-question countdown, answer recording and scoring. It is owned by a single
// event loop and is not safe for concurrent use.
type Session struct {
	id      string
	student string
	quiz    domain.QuizDefinition
	opts    SessionOptions
	now     func() time.Time
	logger  zerolog.Logger
	monitor *Monitor

	state      SessionState
	index      int
	answers    map[int]int
	remaining  int
	revealing  bool
	locked     bool
	finishedBy string
	result     *domain.QuizResult
	resultLink string
}

// Join validates a pasted quiz link and opens a session for the named student.
func Join(link, studentName string, opts SessionOptions) (*Session, error) {
	studentName = strings.TrimSpace(studentName)
	link = strings.TrimSpace(link)
	if studentName == "" {
		notify(opts.Notifier, LevelWarning, "Please enter your name!")
		return nil, domain.ErrNameRequired
	}
	if link == "" {
		notify(opts.Notifier, LevelWarning, "Please paste the quiz link!")
		return nil, domain.ErrLinkRequired
	}
	if !codec.HasQuizMarker(link) {
		notify(opts.Notifier, LevelDanger, "❌ Invalid quiz link format. Please paste the complete link from your teacher.")
		return nil, domain.ErrInvalidLinkFormat
	}
	quiz, ok := codec.DecodeQuiz(link)
	if !ok {
		notify(opts.Notifier, LevelDanger, "❌ Invalid quiz link. Please check with your teacher.")
		return nil, domain.ErrInvalidQuizLink
	}
	s := NewSession(studentName, quiz, opts)
	notify(opts.Notifier, LevelSuccess, "✅ Welcome "+studentName+"! Quiz loaded successfully!")
	return s, nil
}

// NewSession opens a session over an already decoded quiz.
func NewSession(studentName string, quiz domain.QuizDefinition, opts SessionOptions) *Session {
	if opts.QuestionTime <= 0 {
		opts.QuestionTime = DefaultQuestionTime
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		id:      uuid.NewString(),
		student: studentName,
		quiz:    quiz,
		opts:    opts,
		now:     now,
		answers: make(map[int]int),
	}
	s.logger = opts.Logger.With().Str("attempt", s.id).Str("quiz", quiz.ID).Logger()
	s.monitor = NewMonitor(opts.Notifier, opts.VisualLock, s.forceFinish)
	return s
}

func (s *Session) ID() string                  { return s.id }
func (s *Session) StudentName() string         { return s.student }
func (s *Session) Quiz() domain.QuizDefinition { return s.quiz }
func (s *Session) State() SessionState         { return s.state }
func (s *Session) Locked() bool                { return s.locked }
func (s *Session) Monitor() *Monitor           { return s.monitor }
func (s *Session) QuestionIndex() int          { return s.index }
func (s *Session) QuestionCount() int          { return len(s.quiz.Questions) }
func (s *Session) Remaining() int              { return s.remaining }
func (s *Session) QuestionTimeLimit() int      { return s.opts.QuestionTime }
func (s *Session) Revealing() bool             { return s.revealing }
func (s *Session) ResultLink() string          { return s.resultLink }

// CurrentQuestion returns the question being shown.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	if s.state != StateInProgress || s.index >= len(s.quiz.Questions) {
		return domain.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// Answer returns the recorded option for a question index.
func (s *Session) Answer(index int) (int, bool) {
	chosen, ok := s.answers[index]
	return chosen, ok
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() map[int]int {
	out := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// IsLastQuestion reports whether the current question is the final one.
func (s *Session) IsLastQuestion() bool {
	return s.index == len(s.quiz.Questions)-1
}

// Progress is the fraction of questions reached, counting the current one.
func (s *Session) Progress() float64 {
	n := len(s.quiz.Questions)
	if n == 0 {
		return 0
	}
	return float64(s.index+1) / float64(n)
}

// Result returns the result once the session has finished.
func (s *Session) Result() (domain.QuizResult, bool) {
	if s.result == nil {
		return domain.QuizResult{}, false
	}
	return *s.result, true
}

// Start begins the first question and activates the anti-cheat monitor.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return domain.ErrSessionStarted
	}
	if len(s.quiz.Questions) == 0 {
		return domain.ErrNoQuestions
	}
	s.state = StateInProgress
	s.index = 0
	s.answers = make(map[int]int)
	s.monitor.Subscribe()
	s.resetTimer()
	s.logger.Info().Str("student", s.student).Int("questions", len(s.quiz.Questions)).Msg("quiz started")
	return nil
}

// SelectAnswer records the option for the current question, replacing any earlier choice.
func (s *Session) SelectAnswer(option int) error {
	if s.state != StateInProgress {
		return domain.ErrNotInProgress
	}
	if s.locked {
		return domain.ErrSessionLocked
	}
	if s.revealing {
		return domain.ErrAnswerClosed
	}
	if option < 0 || option >= domain.OptionCount {
		return domain.ErrInvalidOption
	}
	s.answers[s.index] = option
	return nil
}

// Tick advances the countdown by one unit. When it reaches zero the current
// question is revealed exactly once and the returned bool is true; the caller
// then calls Advance after the reveal delay.
func (s *Session) Tick() (Reveal, bool) {
	if s.state != StateInProgress || s.revealing || s.remaining <= 0 {
		return Reveal{}, false
	}
	s.remaining--
	if s.remaining > 0 {
		return Reveal{}, false
	}
	reveal := s.reveal(true)
	if _, answered := s.answers[s.index]; !answered {
		notify(s.opts.Notifier, LevelWarning, "Time is up! Here is the correct answer.")
	}
	return reveal, true
}

// Next stops the countdown and reveals the correct answer for the current question.
func (s *Session) Next() (Reveal, error) {
	if s.state != StateInProgress {
		return Reveal{}, domain.ErrNotInProgress
	}
	if s.revealing {
		return s.currentReveal(false), nil
	}
	return s.reveal(false), nil
}

// Advance leaves the current question, revealing it first if needed. On the
// last question it finishes the session.
func (s *Session) Advance() (Reveal, error) {
	if s.state != StateInProgress {
		return Reveal{}, domain.ErrNotInProgress
	}
	reveal, err := s.Next()
	if err != nil {
		return Reveal{}, err
	}
	if s.IsLastQuestion() {
		s.finish("completed")
		return reveal, nil
	}
	s.index++
	s.revealing = false
	s.resetTimer()
	return reveal, nil
}

// Finish ends the session, scores it and builds the result link. It is
// idempotent and may be called from any state after Start.
func (s *Session) Finish() domain.QuizResult {
	s.finish("submitted")
	r, _ := s.Result()
	return r
}

// Restart returns a finished or running session to NotStarted for a retake.
func (s *Session) Restart() {
	s.monitor.Reset()
	s.state = StateNotStarted
	s.index = 0
	s.answers = make(map[int]int)
	s.remaining = 0
	s.revealing = false
	s.locked = false
	s.finishedBy = ""
	s.result = nil
	s.resultLink = ""
}

func (s *Session) forceFinish() {
	s.locked = true
	s.finish("locked")
}

func (s *Session) finish(reason string) {
	if s.state == StateFinished || s.state == StateNotStarted {
		return
	}
	s.monitor.Unsubscribe()
	s.remaining = 0
	s.revealing = false
	s.state = StateFinished
	s.finishedBy = reason

	result := domain.QuizResult{
		StudentName:    s.student,
		QuizID:         s.quiz.ID,
		Score:          domain.Score(s.quiz.Questions, s.answers),
		TotalQuestions: len(s.quiz.Questions),
		Answers:        s.Answers(),
		CompletedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	s.result = &result

	link, err := codec.ResultLink(s.opts.BaseURL, result)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode result link")
	}
	s.resultLink = link

	s.logger.Info().
		Str("reason", reason).
		Int("score", result.Score).
		Int("total", result.TotalQuestions).
		Int("violations", s.monitor.Violations()).
		Msg("quiz finished")
}

// FinishedBy names what ended the session: completed, submitted or locked.
func (s *Session) FinishedBy() string { return s.finishedBy }

func (s *Session) resetTimer() {
	s.remaining = s.opts.QuestionTime
}

func (s *Session) reveal(timedOut bool) Reveal {
	s.revealing = true
	s.remaining = 0
	return s.currentReveal(timedOut)
}

func (s *Session) currentReveal(timedOut bool) Reveal {
	q := s.quiz.Questions[s.index]
	chosen, answered := s.answers[s.index]
	return Reveal{
		QuestionIndex: s.index,
		Chosen:        chosen,
		Answered:      answered,
		Correct:       q.CorrectAnswer,
		TimedOut:      timedOut,
	}
}

// Verdict returns the headline and message shown for a final percentage.
func Verdict(percentage int) (string, string) {
	switch {
	case percentage == 100:
		return "Perfect Score! 🎉", "Excellent! You got all questions right!"
	case percentage >= 80:
		return "Great Job! 👏", "Very good! You scored " + strconv.Itoa(percentage) + "%!"
	case percentage >= 60:
		return "Good Work! 👍", "Not bad! You scored " + strconv.Itoa(percentage) + "%. Keep learning!"
	default:
		return "Keep Learning! 📚", "You scored " + strconv.Itoa(percentage) + "%. Don't worry, practice makes perfect!"
	}
}
