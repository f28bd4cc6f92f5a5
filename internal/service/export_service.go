package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/scoring"
	"quiz_contest_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

// ExportService 生成比赛成绩的 Excel 导出，并支持从 Excel 批量导入题目。
type ExportService struct {
	Results *ResultService
	Storage *StorageService
}

func NewExportService(results *ResultService, storage *StorageService) *ExportService {
	return &ExportService{Results: results, Storage: storage}
}

const (
	sheetLeaderboard = "Leaderboard"
	sheetQuestions   = "Question Analysis"
	sheetResponses   = "Responses"
	sheetSummary     = "Summary"
)

var leaderboardHeader = []interface{}{
	"Rank", "Name", "Email", "Correct", "Final Score", "Negative Marks",
	"Attempted", "Total Questions", "Percentage", "Accuracy", "Submitted At", "Time Taken (min)",
}

var questionHeader = []interface{}{
	"Question ID", "Question", "Total Attempts", "Correct", "Incorrect", "Not Attempted",
}

// ExportContestResults 生成一场比赛的成绩工作簿：
// 排行榜、逐题分析和比赛汇总各一个工作表。
func (s *ExportService) ExportContestResults(contestID uint) (*excelize.File, string, error) {
	contest, err := s.Results.contest(contestID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.Results.Leaderboard(contestID)
	if err != nil {
		return nil, "", err
	}
	stats, err := s.Results.Stats(contestID)
	if err != nil {
		return nil, "", err
	}
	results, err := s.Results.AllResults(contestID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetLeaderboard)

	if err := writeLeaderboardSheet(f, entries); err != nil {
		return nil, "", err
	}
	if err := writeQuestionSheet(f, stats); err != nil {
		return nil, "", err
	}
	if err := writeResponseSheet(f, results); err != nil {
		return nil, "", err
	}
	if err := writeSummarySheet(f, contest, stats); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("contest_%d_results_%s.xlsx", contest.ID, time.Now().Format("20060102_150405"))
	return f, filename, nil
}

func writeLeaderboardSheet(f *excelize.File, entries []scoring.LeaderboardEntry) error {
	if err := f.SetSheetRow(sheetLeaderboard, "A1", &leaderboardHeader); err != nil {
		return err
	}
	for i, e := range entries {
		submitted := ""
		if e.SubmittedAt != nil {
			submitted = e.SubmittedAt.Format(util.TimeFormat)
		}
		row := []interface{}{
			e.Rank, e.UserName, e.UserEmail, e.Correct, e.FinalScore, e.NegativeMarks,
			e.Attempted, e.TotalQuestions,
			fmt.Sprintf("%.2f%%", e.Percentage),
			fmt.Sprintf("%.2f%%", e.Accuracy),
			submitted, e.TimeTaken,
		}
		if err := f.SetSheetRow(sheetLeaderboard, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeQuestionSheet(f *excelize.File, stats *scoring.ContestStats) error {
	if _, err := f.NewSheet(sheetQuestions); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetQuestions, "A1", &questionHeader); err != nil {
		return err
	}
	for i, qs := range stats.QuestionStats {
		row := []interface{}{
			qs.QuestionID, qs.Question, qs.TotalAttempts,
			qs.CorrectAttempts, qs.IncorrectAttempts, qs.NotAttempted,
		}
		if err := f.SetSheetRow(sheetQuestions, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

var responseHeader = []interface{}{
	"Name", "Email", "Question", "Answer", "Correct Answer", "Is Correct", "Attempted", "Negative Marks",
}

// writeResponseSheet 每个参与者 × 每道题一行的答题明细。
func writeResponseSheet(f *excelize.File, results []ParticipantResult) error {
	if _, err := f.NewSheet(sheetResponses); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetResponses, "A1", &responseHeader); err != nil {
		return err
	}
	rowNum := 2
	for _, pr := range results {
		for _, qr := range pr.Result.QuestionResults {
			row := []interface{}{
				pr.UserName, pr.UserEmail, qr.Question, qr.UserAnswer,
				qr.CorrectAnswer, qr.IsCorrect, qr.IsAttempted, qr.NegativeMarks,
			}
			if err := f.SetSheetRow(sheetResponses, fmt.Sprintf("A%d", rowNum), &row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, contest *model.Contest, stats *scoring.ContestStats) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Contest", contest.Title},
		{"Start Time", contest.StartTime.Format(util.TimeFormat)},
		{"End Time", contest.EndTime.Format(util.TimeFormat)},
		{"Negative Marking", contest.NegativeMarking},
		{"Negative Marking Ratio", scoring.RatioString(contest.NegativeMarkingValue)},
		{"Participants", stats.TotalParticipants},
		{"Questions", stats.TotalQuestions},
		{"Total Max Marks", stats.TotalMaxMarks},
		{"Average Score", stats.Average},
		{"Average Percentage", fmt.Sprintf("%.2f%%", stats.AveragePercentage)},
		{"Highest Score", stats.HighestScore},
		{"Lowest Score", stats.LowestScore},
		{"Standard Deviation", stats.StandardDeviation},
	}
	for i, row := range rows {
		r := row
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+1), &r); err != nil {
			return err
		}
	}
	return nil
}

// ArchiveContestResults 生成成绩工作簿并归档到对象存储，返回访问 URL。
func (s *ExportService) ArchiveContestResults(ctx context.Context, contestID uint) (string, error) {
	f, filename, err := s.ExportContestResults(contestID)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", err
	}
	return s.Storage.Upload(ctx, "exports/"+filename, &buf, int64(buf.Len()),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// ParseQuestionsExcel 解析批量导入的题目表。首行为表头，列依次为：
// Category, Subcategory, Difficulty, Question, Option A-D, Correct Answers, Score, Explanation。
// 多个正确答案用 | 分隔。
func ParseQuestionsExcel(reader io.Reader) ([]QuestionReq, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	reqs := make([]QuestionReq, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // 表头
		}
		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		if cell(3) == "" {
			continue // 空行
		}

		options := []string{cell(4), cell(5), cell(6), cell(7)}
		var correct []string
		for _, c := range strings.Split(cell(8), "|") {
			if c = strings.TrimSpace(c); c != "" {
				correct = append(correct, c)
			}
		}

		score := 1.0
		if raw := cell(9); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				score = v
			}
		}

		reqs = append(reqs, QuestionReq{
			Category:       cell(0),
			Subcategory:    cell(1),
			Difficulty:     cell(2),
			Question:       cell(3),
			Options:        options,
			CorrectAnswers: correct,
			Score:          score,
			Explanation:    cell(10),
		})
	}
	return reqs, nil
}
