package domain

import "errors"

var (
	// ErrNameRequired is returned when a student joins without a name.
	ErrNameRequired = errors.New("student name is required")
	// ErrLinkRequired is returned when a student joins without a quiz link.
	ErrLinkRequired = errors.New("quiz link is required")
	// ErrInvalidLinkFormat indicates the pasted text carries no quiz marker.
	ErrInvalidLinkFormat = errors.New("invalid quiz link format")
	// ErrInvalidQuizLink indicates the quiz marker was found but its payload could not be decoded.
	ErrInvalidQuizLink = errors.New("invalid quiz link")
	// ErrQuestionNotFound indicates a question ID is unknown to the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidQuestion indicates a question failed validation.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrNoQuestions is returned when an operation needs at least one question.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrNoResultLinks is returned when there is nothing to collect.
	ErrNoResultLinks = errors.New("no result links to collect")
	// ErrNoResults is returned when an export needs at least one collected result.
	ErrNoResults = errors.New("no results collected")

	// ErrSessionStarted is returned when Start is called twice.
	ErrSessionStarted = errors.New("quiz session already started")
	// ErrNotInProgress is returned for answer and navigation calls outside a running quiz.
	ErrNotInProgress = errors.New("quiz session is not in progress")
	// ErrSessionLocked is returned when input arrives after an anti-cheat lock.
	ErrSessionLocked = errors.New("quiz session is locked")
	// ErrAnswerClosed is returned when answering while the correct answer is shown.
	ErrAnswerClosed = errors.New("answers are closed for this question")
	// ErrInvalidOption indicates an option index outside the question's options.
	ErrInvalidOption = errors.New("option index out of range")
)
