package export

import (
	"path/filepath"
	"testing"
	"time"

	"quizlink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportDay = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func sampleDefinition() domain.QuizDefinition {
	return domain.QuizDefinition{
		ID: "QUIZ_1",
		Questions: []domain.Question{
			{ID: 1, Prompt: "What is 2 + 2?", Options: [4]string{"3", "4", "5", "6"}, CorrectAnswer: 1},
			{ID: 2, Prompt: "Capital of France?", Options: [4]string{"Paris", "Rome", "Oslo", "Bern"}, CorrectAnswer: 0},
		},
		Version: domain.SchemaVersion,
	}
}

func sampleResults() []domain.QuizResult {
	return []domain.QuizResult{
		{StudentName: "Alice", QuizID: "QUIZ_1", Score: 2, TotalQuestions: 2, Answers: map[int]int{0: 1, 1: 0}, CompletedAt: exportDay},
		{StudentName: "Bob", QuizID: "QUIZ_1", Score: 0, TotalQuestions: 2, Answers: map[int]int{0: 2}, CompletedAt: exportDay},
	}
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Quiz_Questions_EXPORT_2024-05-01.xlsx", QuestionsFileName("", exportDay))
	assert.Equal(t, "ALL_STUDENT_RESULTS_QUIZ_1_2024-05-01.xlsx", ResultsFileName("QUIZ_1", exportDay))
	assert.Equal(t, "student_Quiz_Results_2024-05-01.xlsx", StudentFileName(" ", exportDay))
	assert.Equal(t, "a_b_Quiz_Results_2024-05-01.xlsx", StudentFileName("a/b", exportDay))
}

func TestQuestionsSheet(t *testing.T) {
	sheet := QuestionsSheet(sampleDefinition())
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, []any{"Quiz ID", "QUIZ_1", "", "", "", ""}, sheet.Rows[0])
	assert.Equal(t, []any{"What is 2 + 2?", "3", "4", "5", "6", "4"}, sheet.Rows[2])
}

func TestResultsSheetSummary(t *testing.T) {
	sheet := ResultsSheet("QUIZ_1", sampleResults(), 2, exportDay)
	assert.Equal(t, []float64{25, 10, 15, 15, 20}, sheet.Widths)

	assert.Equal(t, "Alice", sheet.Rows[3][0])
	assert.Equal(t, "100%", sheet.Rows[3][3])
	assert.Equal(t, "0%", sheet.Rows[4][3])

	n := len(sheet.Rows)
	assert.Equal(t, []any{"Total Students", 2, "", "", ""}, sheet.Rows[n-4])
	assert.Equal(t, []any{"Average Score", "1.0", 2, "50%", ""}, sheet.Rows[n-3])
	assert.Equal(t, []any{"Highest Score", 2, 2, "", ""}, sheet.Rows[n-2])
	assert.Equal(t, []any{"Lowest Score", 0, 2, "", ""}, sheet.Rows[n-1])
}

func TestStudentSheetMarksAnswers(t *testing.T) {
	result := sampleResults()[1]
	sheet := StudentSheet(sampleDefinition(), result, exportDay)

	assert.Equal(t, []any{"What is 2 + 2?", "5", "4", "✗ Wrong"}, sheet.Rows[3])
	assert.Equal(t, []any{"Capital of France?", "Not answered", "Paris", "✗ Wrong"}, sheet.Rows[4])
	assert.Equal(t, "0/2", sheet.Rows[6][1])
}

func TestQuestionStatsSheet(t *testing.T) {
	stats := domain.ComputeQuestionStats(sampleDefinition(), sampleResults())
	sheet := QuestionStatsSheet(stats)
	assert.Equal(t, []any{1, "What is 2 + 2?", 1, 2, 2, "50%"}, sheet.Rows[1])
	assert.Equal(t, []any{2, "Capital of France?", 1, 1, 2, "50%"}, sheet.Rows[2])
}

func TestWriteResultsWorkbook(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteResults(dir, sampleDefinition(), sampleResults(), exportDay)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ALL_STUDENT_RESULTS_QUIZ_1_2024-05-01.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Student Results", "Question Stats"}, f.GetSheetList())
	name, err := f.GetCellValue("Student Results", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	width, err := f.GetColWidth("Student Results", "A")
	require.NoError(t, err)
	assert.Equal(t, 25.0, width)
}

func TestWriteRefusesEmptyInput(t *testing.T) {
	_, err := WriteResults(t.TempDir(), sampleDefinition(), nil, exportDay)
	assert.ErrorIs(t, err, domain.ErrNoResults)
	_, err = WriteQuestions(t.TempDir(), domain.QuizDefinition{}, exportDay)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}
