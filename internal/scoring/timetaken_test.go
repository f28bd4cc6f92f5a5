package scoring

import (
	"testing"
	"time"
)

func TestTimeTakenPrefersParticipationWindow(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(42 * time.Minute)
	submitted := start.Add(55 * time.Minute)
	contestStart := start.Add(-time.Hour)

	got := TimeTakenMinutes(&start, &end, &submitted, contestStart, contestStart.Add(3*time.Hour))
	if got != 42 {
		t.Fatalf("expected 42 minutes from participation start/end, got %d", got)
	}
}

func TestTimeTakenFallsBackToSubmittedAt(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	submitted := start.Add(25 * time.Minute)

	got := TimeTakenMinutes(&start, nil, &submitted, time.Time{}, time.Time{})
	if got != 25 {
		t.Fatalf("expected 25 minutes from start/submittedAt fallback, got %d", got)
	}
}

func TestTimeTakenFallsBackToContestTimes(t *testing.T) {
	contestStart := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	submitted := contestStart.Add(80 * time.Minute)

	// 参与开始时间缺失 → 比赛开始 + 提交时间
	if got := TimeTakenMinutes(nil, nil, &submitted, contestStart, contestStart.Add(2*time.Hour)); got != 80 {
		t.Fatalf("expected 80 minutes from contest start/submittedAt, got %d", got)
	}

	// 提交时间也缺失 → 比赛起止窗口
	if got := TimeTakenMinutes(nil, nil, nil, contestStart, contestStart.Add(2*time.Hour)); got != 120 {
		t.Fatalf("expected 120 minutes from contest window, got %d", got)
	}
}

func TestTimeTakenAllMissing(t *testing.T) {
	if got := TimeTakenMinutes(nil, nil, nil, time.Time{}, time.Time{}); got != 0 {
		t.Fatalf("expected 0 when no usable timestamp pair, got %d", got)
	}
}

func TestTimeTakenRoundsToWholeMinutes(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	if got := TimeTakenMinutes(&start, &end, nil, time.Time{}, time.Time{}); got != 2 {
		t.Fatalf("expected 90s to round to 2 minutes, got %d", got)
	}
}
