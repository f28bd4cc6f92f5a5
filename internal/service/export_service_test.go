package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildImportSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{
		"Category", "Subcategory", "Difficulty", "Question",
		"Option A", "Option B", "Option C", "Option D",
		"Correct Answers", "Score", "Explanation",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return &buf
}

func TestParseQuestionsExcel(t *testing.T) {
	buf := buildImportSheet(t, [][]interface{}{
		{"math", "algebra", "easy", "2+2?", "3", "4", "5", "6", "4", "2", "basic sum"},
		{"geo", "", "hard", "Capital of France?", "Paris", "London", "Rome", "Berlin", "Paris", "", ""},
	})

	reqs, err := ParseQuestionsExcel(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(reqs))
	}

	first := reqs[0]
	if first.Category != "math" || first.Question != "2+2?" {
		t.Fatalf("first row mangled: %+v", first)
	}
	if len(first.Options) != 4 || first.Options[1] != "4" {
		t.Fatalf("options mangled: %v", first.Options)
	}
	if len(first.CorrectAnswers) != 1 || first.CorrectAnswers[0] != "4" {
		t.Fatalf("answers mangled: %v", first.CorrectAnswers)
	}
	if first.Score != 2 {
		t.Fatalf("score = %v, want 2", first.Score)
	}
	if first.Explanation != "basic sum" {
		t.Fatalf("explanation = %q", first.Explanation)
	}

	// 缺失分值回退为 1
	if reqs[1].Score != 1 {
		t.Fatalf("blank score should default to 1, got %v", reqs[1].Score)
	}
}

func TestParseQuestionsExcelMultipleAnswers(t *testing.T) {
	buf := buildImportSheet(t, [][]interface{}{
		{"", "", "medium", "Prime numbers?", "2", "3", "4", "6", "2 | 3", "1", ""},
	})

	reqs, err := ParseQuestionsExcel(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(reqs))
	}
	answers := reqs[0].CorrectAnswers
	if len(answers) != 2 || answers[0] != "2" || answers[1] != "3" {
		t.Fatalf("pipe-separated answers mangled: %v", answers)
	}
}

func TestParseQuestionsExcelSkipsBlankRows(t *testing.T) {
	buf := buildImportSheet(t, [][]interface{}{
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"misc", "", "easy", "Colors of RGB?", "Red", "Gold", "Silver", "Pink", "Red", "1", ""},
	})

	reqs, err := ParseQuestionsExcel(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("blank rows should be skipped, got %d questions", len(reqs))
	}
	if reqs[0].Question != "Colors of RGB?" {
		t.Fatalf("wrong row kept: %+v", reqs[0])
	}
}
