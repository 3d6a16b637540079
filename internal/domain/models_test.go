package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: 1, Prompt: "Q1", Options: [OptionCount]string{"A", "B", "C", "D"}, CorrectAnswer: 1},
		{ID: 2, Prompt: "Q2", Options: [OptionCount]string{"A", "B", "C", "D"}, CorrectAnswer: 1},
	}
}

func TestScoreCountsMatchingAnswers(t *testing.T) {
	qs := sampleQuestions()

	assert.Equal(t, 1, Score(qs, map[int]int{0: 1, 1: 2}))
	assert.Equal(t, 2, Score(qs, map[int]int{0: 1, 1: 1}))
	assert.Equal(t, 0, Score(qs, map[int]int{}))
	assert.Equal(t, 1, Score(qs, map[int]int{1: 1}), "an absent answer is never correct")
}

func TestQuestionValidate(t *testing.T) {
	q := sampleQuestions()[0]
	require.NoError(t, q.Validate())

	bad := q
	bad.Options[2] = " "
	require.ErrorIs(t, bad.Validate(), ErrInvalidQuestion)

	bad = q
	bad.CorrectAnswer = 4
	require.ErrorIs(t, bad.Validate(), ErrInvalidQuestion)

	bad = q
	bad.Prompt = ""
	require.ErrorIs(t, bad.Validate(), ErrInvalidQuestion)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 50, QuizResult{Score: 1, TotalQuestions: 2}.Percentage())
	assert.Equal(t, 67, QuizResult{Score: 2, TotalQuestions: 3}.Percentage())
	assert.Equal(t, 0, QuizResult{Score: 0, TotalQuestions: 0}.Percentage())
}

func TestCollectedResultsOverwritesByKey(t *testing.T) {
	set := NewCollectedResults()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, set.Put(QuizResult{StudentName: "Alice", QuizID: "QUIZ_1", Score: 1, TotalQuestions: 2, CompletedAt: at}))
	assert.False(t, set.Put(QuizResult{StudentName: "Bob", QuizID: "QUIZ_1", Score: 2, TotalQuestions: 2, CompletedAt: at}))
	assert.True(t, set.Put(QuizResult{StudentName: "Alice", QuizID: "QUIZ_1", Score: 2, TotalQuestions: 2, CompletedAt: at}))
	assert.False(t, set.Put(QuizResult{StudentName: "Alice", QuizID: "QUIZ_2", Score: 0, TotalQuestions: 2, CompletedAt: at}))

	all := set.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Alice", all[0].StudentName)
	assert.Equal(t, 2, all[0].Score)
	assert.Equal(t, "Bob", all[1].StudentName)
	assert.Equal(t, "QUIZ_2", all[2].QuizID)
}

func TestCollectedResultsJSONArray(t *testing.T) {
	set := NewCollectedResults()
	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	set.Put(QuizResult{StudentName: "Alice", QuizID: "QUIZ_1", Score: 1, TotalQuestions: 2, Answers: map[int]int{0: 1}, CompletedAt: at})
	data, err = json.Marshal(set)
	require.NoError(t, err)

	restored := NewCollectedResults()
	require.NoError(t, json.Unmarshal(data, restored))
	require.Equal(t, set.All(), restored.All())
}

func TestComputeQuestionStatsIgnoresStoredScore(t *testing.T) {
	def := QuizDefinition{ID: "QUIZ_1", Questions: sampleQuestions(), Version: SchemaVersion}
	results := []QuizResult{
		{StudentName: "Alice", QuizID: "QUIZ_1", Score: 99, TotalQuestions: 2, Answers: map[int]int{0: 1, 1: 2}},
		{StudentName: "Bob", QuizID: "QUIZ_1", Score: 0, TotalQuestions: 2, Answers: map[int]int{0: 1}},
		{StudentName: "Eve", QuizID: "QUIZ_OTHER", Answers: map[int]int{0: 1, 1: 1}},
	}

	stats := ComputeQuestionStats(def, results)
	require.Len(t, stats, 2)
	assert.Equal(t, QuestionStat{Index: 0, Prompt: "Q1", Correct: 2, Answered: 2, Total: 2}, stats[0])
	assert.Equal(t, QuestionStat{Index: 1, Prompt: "Q2", Correct: 0, Answered: 1, Total: 2}, stats[1])
	assert.InDelta(t, 1.0, stats[0].CorrectRate(), 0.0001)
}
