package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"quizlink/internal/domain"

	"github.com/xuri/excelize/v2"
)

// QuestionsFileName is Quiz_Questions_<quiz id|EXPORT>_<date>.xlsx.
func QuestionsFileName(quizID string, on time.Time) string {
	return "Quiz_Questions_" + orDefault(quizID, "EXPORT") + "_" + on.Format("2006-01-02") + ".xlsx"
}

// ResultsFileName is ALL_STUDENT_RESULTS_<quiz id|QUIZ>_<date>.xlsx.
func ResultsFileName(quizID string, on time.Time) string {
	return "ALL_STUDENT_RESULTS_" + orDefault(quizID, "QUIZ") + "_" + on.Format("2006-01-02") + ".xlsx"
}

// StudentFileName is <name|student>_Quiz_Results_<date>.xlsx with path separators removed from the name.
func StudentFileName(name string, on time.Time) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	return orDefault(name, "student") + "_Quiz_Results_" + on.Format("2006-01-02") + ".xlsx"
}

// WriteQuestions writes the questions workbook into dir and returns its path.
func WriteQuestions(dir string, def domain.QuizDefinition, now time.Time) (string, error) {
	if len(def.Questions) == 0 {
		return "", domain.ErrNoQuestions
	}
	path := filepath.Join(dir, QuestionsFileName(def.ID, now))
	return path, Write(path, QuestionsSheet(def))
}

// WriteResults writes every collected result. When def holds the quiz the
// results belong to, a Question Stats sheet is added.
func WriteResults(dir string, def domain.QuizDefinition, results []domain.QuizResult, now time.Time) (string, error) {
	if len(results) == 0 {
		return "", domain.ErrNoResults
	}
	sheets := []Sheet{ResultsSheet(def.ID, results, len(def.Questions), now)}
	if len(def.Questions) > 0 && def.ID != "" {
		sheets = append(sheets, QuestionStatsSheet(domain.ComputeQuestionStats(def, results)))
	}
	path := filepath.Join(dir, ResultsFileName(def.ID, now))
	return path, Write(path, sheets...)
}

// WriteStudent writes a single student's breakdown.
func WriteStudent(dir string, def domain.QuizDefinition, result domain.QuizResult, now time.Time) (string, error) {
	path := filepath.Join(dir, StudentFileName(result.StudentName, now))
	return path, Write(path, StudentSheet(def, result, now))
}

// Write saves the sheets, in order, as a new workbook at path.
func Write(path string, sheets ...Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet.Name, err)
		}
		if err := fillSheet(f, sheet); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet Sheet) error {
	for i, row := range sheet.Rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet.Name, i+1, err)
		}
	}
	for i, width := range sheet.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return fmt.Errorf("width %s col %s: %w", sheet.Name, col, err)
		}
	}
	return nil
}
