// Package export writes a learner's vocabulary and lesson progress as an
// .xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hindipath/internal/models"
)

// Sheet names
const (
	VocabularySheet = "Vocabulary"
	LessonsSheet    = "Lessons"
)

const timeLayout = "2006-01-02 15:04"

// WriteWorkbook writes the workbook to w
func WriteWorkbook(w io.Writer, words []models.VocabularyEntry, lessons []models.LessonProgress) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", VocabularySheet); err != nil {
		return fmt.Errorf("failed to name vocabulary sheet: %w", err)
	}
	if _, err := f.NewSheet(LessonsSheet); err != nil {
		return fmt.Errorf("failed to add lessons sheet: %w", err)
	}

	if err := writeRow(f, VocabularySheet, 1, []interface{}{"Word", "Lesson", "Logged at"}); err != nil {
		return err
	}
	for i, word := range words {
		row := []interface{}{word.Word, word.LessonID, word.LoggedAt.Format(timeLayout)}
		if err := writeRow(f, VocabularySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, LessonsSheet, 1, []interface{}{"Lesson", "Completed", "Words seen", "Last activity"}); err != nil {
		return err
	}
	for i, lesson := range lessons {
		completed := "no"
		if lesson.Completed {
			completed = "yes"
		}
		row := []interface{}{lesson.LessonID, completed, lesson.WordsSeen, lesson.LastAt.Format(timeLayout)}
		if err := writeRow(f, LessonsSheet, i+2, row); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
