package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// EncodeWorksheet produces a printable XLSX workbook for the document with
// Overview, Quiz, and Timeline sheets. Teachers use it for grading; it never
// embeds slide images.
func EncodeWorksheet(doc lesson.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeOverviewSheet(f, doc); err != nil {
		return nil, err
	}
	if err := writeQuizSheet(f, doc.Quiz); err != nil {
		return nil, err
	}
	if err := writeTimelineSheet(f, doc.Timeline); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOverviewSheet(f *excelize.File, doc lesson.Document) error {
	const sheet = "Overview"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename overview sheet: %w", err)
	}

	cells := [][2]any{
		{"A1", "Lesson"},
		{"B1", doc.Title},
		{"A3", "Learning Objectives"},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, c[0].(string), c[1]); err != nil {
			return fmt.Errorf("write overview cell: %w", err)
		}
	}

	row := 4
	for _, obj := range doc.LearningObjectives {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), obj); err != nil {
			return fmt.Errorf("write objective: %w", err)
		}
		row++
	}

	row++
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Homework: "+doc.Homework.Title); err != nil {
		return fmt.Errorf("write homework title: %w", err)
	}
	row++
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.Homework.Description); err != nil {
		return fmt.Errorf("write homework description: %w", err)
	}
	row++
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Extension: "+doc.Homework.ExtensionTask); err != nil {
		return fmt.Errorf("write homework extension: %w", err)
	}

	return nil
}

func writeQuizSheet(f *excelize.File, quiz []lesson.QuizItem) error {
	const sheet = "Quiz"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create quiz sheet: %w", err)
	}

	headers := []string{"#", "Question", "Options", "Answer"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write quiz header: %w", err)
		}
	}

	for i, q := range quiz {
		row := i + 2
		values := []any{i + 1, q.Question, strings.Join(q.Options, " | "), q.Answer}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write quiz row %d: %w", row, err)
			}
		}
	}

	return nil
}

func writeTimelineSheet(f *excelize.File, timeline []lesson.TimelineStage) error {
	const sheet = "Timeline"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create timeline sheet: %w", err)
	}

	headers := []string{"Stage", "Title", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write timeline header: %w", err)
		}
	}

	for i, stage := range timeline {
		row := i + 2
		values := []any{stage.Stage, stage.Title, stage.Description}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write timeline row %d: %w", row, err)
			}
		}
	}

	return nil
}
