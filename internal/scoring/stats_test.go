package scoring

import (
	"encoding/json"
	"testing"
	"time"
)

func statsQuestions() []Question {
	return []Question{
		{ID: 1, Text: "Q1", Options: []string{"A", "B", "C", "D"}, CorrectAnswers: []string{"A"}, Score: 1},
		{ID: 2, Text: "Q2", Options: []string{"A", "B", "C", "D"}, CorrectAnswers: []string{"B"}, Score: 1},
	}
}

func at(sec int) time.Time {
	return time.Date(2024, 6, 1, 10, 0, sec, 0, time.UTC)
}

func TestBuildStatsEmptyContest(t *testing.T) {
	stats := BuildStats(statsQuestions(), Config{}, nil, nil, at(0), at(0).Add(time.Hour))

	if stats.TotalParticipants != 0 || stats.Average != 0 || stats.AveragePercentage != 0 {
		t.Fatalf("zero participants must give zeroed stats, got %+v", stats)
	}
	for _, qs := range stats.QuestionStats {
		if qs.NotAttempted != 0 {
			t.Fatalf("question %d: expected notAttempted 0, got %d", qs.QuestionID, qs.NotAttempted)
		}
	}
}

func TestBuildStatsNotAttemptedConsistency(t *testing.T) {
	participants := []Participant{
		{UserID: 1}, {UserID: 2}, {UserID: 3},
	}
	// 用户 3 没有任何活动记录
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "A", CreatedAt: at(1)},
		{UserID: 2, QuestionID: 1, Answer: "C", CreatedAt: at(2)},
		{UserID: 1, QuestionID: 2, Answer: "B", CreatedAt: at(3)},
	}

	stats := BuildStats(statsQuestions(), Config{}, participants, activities, at(0), at(0).Add(time.Hour))

	for _, qs := range stats.QuestionStats {
		if qs.NotAttempted != stats.TotalParticipants-qs.TotalAttempts {
			t.Fatalf("question %d: notAttempted %d != participants %d - attempts %d",
				qs.QuestionID, qs.NotAttempted, stats.TotalParticipants, qs.TotalAttempts)
		}
	}

	q1 := stats.QuestionStats[0]
	if q1.TotalAttempts != 2 || q1.CorrectAttempts != 1 || q1.IncorrectAttempts != 1 || q1.NotAttempted != 1 {
		t.Fatalf("unexpected Q1 tallies: %+v", q1)
	}
}

func TestFinalAnswersLatestRowWins(t *testing.T) {
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "B", CreatedAt: at(1)},
		{UserID: 1, QuestionID: 1, Answer: "A", CreatedAt: at(5)},
		{UserID: 1, QuestionID: 1, Answer: "C", CreatedAt: at(3)},
	}
	final := FinalAnswers(activities)
	if final[1][1] != "A" {
		t.Fatalf("expected latest answer A to win, got %q", final[1][1])
	}
}

func TestBuildLeaderboardIncludesSilentParticipants(t *testing.T) {
	participants := []Participant{
		{UserID: 1, UserName: "Alice", SubmittedAt: ts(10)},
		{UserID: 2, UserName: "Bob"}, // 从未作答
	}
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "A", CreatedAt: at(1)},
	}

	entries := BuildLeaderboard(statsQuestions(), Config{}, participants, activities, at(0), at(0).Add(time.Hour))

	if len(entries) != 2 {
		t.Fatalf("expected 2 leaderboard entries, got %d", len(entries))
	}
	if entries[0].UserID != 1 || entries[0].Correct != 1 {
		t.Fatalf("expected Alice to lead with 1 correct, got %+v", entries[0])
	}
	if entries[1].UserID != 2 || entries[1].FinalScore != 0 || entries[1].Attempted != 0 {
		t.Fatalf("silent participant must score zero, got %+v", entries[1])
	}
}

func TestBuildLeaderboardAccuracy(t *testing.T) {
	participants := []Participant{{UserID: 1}}
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "A", CreatedAt: at(1)}, // 对
		{UserID: 1, QuestionID: 2, Answer: "C", CreatedAt: at(2)}, // 错
	}
	entries := BuildLeaderboard(statsQuestions(), Config{}, participants, activities, at(0), at(0).Add(time.Hour))
	if entries[0].Accuracy != 50 {
		t.Fatalf("expected accuracy 50, got %v", entries[0].Accuracy)
	}
	if entries[0].Percentage != 50 {
		t.Fatalf("expected percentage 50, got %v", entries[0].Percentage)
	}
}

func TestBuildStatsScoreAggregates(t *testing.T) {
	participants := []Participant{{UserID: 1}, {UserID: 2}}
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "A", CreatedAt: at(1)},
		{UserID: 1, QuestionID: 2, Answer: "B", CreatedAt: at(2)},
		// 用户 2 全错不作答
	}
	stats := BuildStats(statsQuestions(), Config{}, participants, activities, at(0), at(0).Add(time.Hour))

	if stats.Average != 1 {
		t.Fatalf("expected average 1 over scores [2,0], got %v", stats.Average)
	}
	if stats.HighestScore != 2 || stats.LowestScore != 0 {
		t.Fatalf("expected high 2 low 0, got %v/%v", stats.HighestScore, stats.LowestScore)
	}
	if stats.StandardDeviation != 1 {
		t.Fatalf("expected population stddev 1, got %v", stats.StandardDeviation)
	}
	if stats.AveragePercentage != 50 {
		t.Fatalf("expected averagePercentage 50, got %v", stats.AveragePercentage)
	}
}

func TestBuildStatsHighlightsFirstSeenWins(t *testing.T) {
	questions := []Question{
		{ID: 1, Text: "Q1", CorrectAnswers: []string{"A"}},
		{ID: 2, Text: "Q2", CorrectAnswers: []string{"A"}},
	}
	participants := []Participant{{UserID: 1}}
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "A", CreatedAt: at(1)},
		{UserID: 1, QuestionID: 2, Answer: "A", CreatedAt: at(2)},
	}
	stats := BuildStats(questions, Config{}, participants, activities, at(0), at(0).Add(time.Hour))

	if stats.MostCorrect == nil || stats.MostCorrect.QuestionID != 1 {
		t.Fatalf("tie on correct attempts must keep first question, got %+v", stats.MostCorrect)
	}
	if stats.MostAttempted == nil || stats.MostAttempted.QuestionID != 1 {
		t.Fatalf("tie on attempts must keep first question, got %+v", stats.MostAttempted)
	}
}

func TestBuildStatsTimeRanges(t *testing.T) {
	start := at(0)
	mk := func(minutes int) Participant {
		s := start
		e := start.Add(time.Duration(minutes) * time.Minute)
		return Participant{UserID: uint(minutes), StartedAt: &s, EndTime: &e, SubmittedAt: &e}
	}
	participants := []Participant{mk(10), mk(45), mk(75), mk(120)}

	stats := BuildStats(statsQuestions(), Config{}, participants, nil, start, start.Add(3*time.Hour))

	want := map[string]int{"0-30 min": 1, "31-60 min": 1, "61-90 min": 1, "90+ min": 1}
	for bucket, n := range want {
		if stats.TimeRanges[bucket] != n {
			t.Fatalf("bucket %q: expected %d, got %d", bucket, n, stats.TimeRanges[bucket])
		}
	}
}

func TestBuildStatsLegacyKeyedOptions(t *testing.T) {
	raw := json.RawMessage(`{"a":"Red","b":"Green","c":"Blue","d":"Black"}`)
	options, legacy := NormalizeOptions(raw)
	if !legacy {
		t.Fatal("expected legacy shape to be detected")
	}
	if len(options) != 4 || options[0] != "Red" || options[3] != "Black" {
		t.Fatalf("unexpected normalized options: %v", options)
	}

	questions := []Question{
		{ID: 1, Text: "Q1", Options: options, CorrectAnswers: []string{"Green"}, LegacyKeyed: true},
	}
	participants := []Participant{{UserID: 1}, {UserID: 2}, {UserID: 3}}
	activities := []Activity{
		{UserID: 1, QuestionID: 1, Answer: "Green", CreatedAt: at(1)},
		{UserID: 2, QuestionID: 1, Answer: "b", CreatedAt: at(2)},
	}

	stats := BuildStats(questions, Config{}, participants, activities, at(0), at(0).Add(time.Hour))
	qs := stats.QuestionStats[0]

	if qs.KeyCounts == nil {
		t.Fatal("legacy question must carry key counts")
	}
	if qs.KeyCounts["b"] != 2 {
		t.Fatalf("expected key b counted twice (text + key answers), got %d", qs.KeyCounts["b"])
	}
	if qs.KeyCounts["notAttempted"] != 1 {
		t.Fatalf("expected 1 notAttempted in key counts, got %d", qs.KeyCounts["notAttempted"])
	}
	if qs.OptionCounts["Green"] != 1 || qs.OptionCounts["notAttempted"] != 1 {
		t.Fatalf("unexpected option counts: %v", qs.OptionCounts)
	}
}

func TestNormalizeAnswerSet(t *testing.T) {
	if got := NormalizeAnswerSet(json.RawMessage(`["A","B"]`)); len(got) != 2 {
		t.Fatalf("expected 2 answers from array, got %v", got)
	}
	if got := NormalizeAnswerSet(json.RawMessage(`"A"`)); len(got) != 1 || got[0] != "A" {
		t.Fatalf("expected single-string answer to normalize, got %v", got)
	}
	if got := NormalizeAnswerSet(nil); got != nil {
		t.Fatalf("expected nil for empty raw, got %v", got)
	}
}
