package scoring

import (
	"testing"
	"time"
)

func ts(minute int) *time.Time {
	t := time.Date(2024, 6, 1, 10, minute, 0, 0, time.UTC)
	return &t
}

func TestRankByCorrectWithSubmissionTieBreak(t *testing.T) {
	entries := []LeaderboardEntry{
		{UserID: 3, UserName: "C", Correct: 8, SubmittedAt: ts(5)},
		{UserID: 2, UserName: "B", Correct: 10, SubmittedAt: ts(20)},
		{UserID: 1, UserName: "A", Correct: 10, SubmittedAt: ts(10)},
	}

	ranked := Rank(entries, false)

	wantOrder := []uint{1, 2, 3}
	for i, want := range wantOrder {
		if ranked[i].UserID != want {
			t.Fatalf("position %d: expected user %d, got %d", i, want, ranked[i].UserID)
		}
		if ranked[i].Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, ranked[i].Rank)
		}
	}
}

func TestRankByFinalScoreWhenNegativeMarking(t *testing.T) {
	entries := []LeaderboardEntry{
		{UserID: 1, Correct: 10, FinalScore: 7.5},
		{UserID: 2, Correct: 9, FinalScore: 9},
	}
	ranked := Rank(entries, true)
	if ranked[0].UserID != 2 {
		t.Fatalf("negative marking must rank by final score, got leader %d", ranked[0].UserID)
	}
}

func TestRankMissingSubmittedAtKeepsOrder(t *testing.T) {
	entries := []LeaderboardEntry{
		{UserID: 1, Correct: 5},
		{UserID: 2, Correct: 5, SubmittedAt: ts(1)},
		{UserID: 3, Correct: 5},
	}
	ranked := Rank(entries, false)
	wantOrder := []uint{1, 2, 3}
	for i, want := range wantOrder {
		if ranked[i].UserID != want {
			t.Fatalf("tie without timestamps must be stable, position %d got user %d", i, ranked[i].UserID)
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	build := func() []LeaderboardEntry {
		return []LeaderboardEntry{
			{UserID: 1, Correct: 3, SubmittedAt: ts(3)},
			{UserID: 2, Correct: 7, SubmittedAt: ts(1)},
			{UserID: 3, Correct: 7, SubmittedAt: ts(2)},
			{UserID: 4, Correct: 1},
		}
	}

	first := Rank(build(), false)
	second := Rank(build(), false)
	for i := range first {
		if first[i].UserID != second[i].UserID || first[i].Rank != second[i].Rank {
			t.Fatalf("ranking not deterministic at position %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
