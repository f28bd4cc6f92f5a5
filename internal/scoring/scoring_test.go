package scoring

import (
	"math"
	"testing"
)

func twoQuestionSet() []Question {
	return []Question{
		{ID: 1, Text: "Q1", Options: []string{"A", "B", "C", "D"}, CorrectAnswers: []string{"A"}, Score: 1},
		{ID: 2, Text: "Q2", Options: []string{"A", "B", "C", "D"}, CorrectAnswers: []string{"B"}, Score: 1},
	}
}

func TestEvaluateWithNegativeMarking(t *testing.T) {
	cfg := Config{NegativeMarking: true, Ratio: 0.25}
	res := Evaluate(twoQuestionSet(), cfg, map[uint]string{1: "A", 2: "C"})

	if res.ObtainedMarks != 1 {
		t.Fatalf("expected obtainedMarks 1, got %v", res.ObtainedMarks)
	}
	if res.NegativeMarks != 0.25 {
		t.Fatalf("expected negativeMarks 0.25, got %v", res.NegativeMarks)
	}
	if res.Score != 0.75 {
		t.Fatalf("expected finalScore 0.75, got %v", res.Score)
	}
	if res.Attempted != 2 {
		t.Fatalf("expected attempted 2, got %d", res.Attempted)
	}
	if res.Percentage != 38 {
		t.Fatalf("expected percentage 38, got %d", res.Percentage)
	}
}

func TestEvaluateNothingAnswered(t *testing.T) {
	cfg := Config{NegativeMarking: true, Ratio: 0.25}
	res := Evaluate(twoQuestionSet(), cfg, nil)

	if res.ObtainedMarks != 0 || res.NegativeMarks != 0 || res.Score != 0 || res.Attempted != 0 {
		t.Fatalf("expected zeroed result, got %+v", res)
	}
	if len(res.QuestionResults) != 2 {
		t.Fatalf("unanswered questions must still appear, got %d results", len(res.QuestionResults))
	}
	for _, qr := range res.QuestionResults {
		if qr.IsAttempted {
			t.Fatalf("question %d should be unattempted", qr.QuestionID)
		}
		if qr.UserAnswer != "" {
			t.Fatalf("unattempted answer should be empty, got %q", qr.UserAnswer)
		}
	}
}

func TestFinalScoreNeverNegative(t *testing.T) {
	questions := []Question{
		{ID: 1, CorrectAnswers: []string{"A"}, Score: 1},
		{ID: 2, CorrectAnswers: []string{"A"}, Score: 10},
	}
	cfg := Config{NegativeMarking: true, Ratio: 1}
	res := Evaluate(questions, cfg, map[uint]string{1: "B", 2: "B"})

	if res.Score != 0 {
		t.Fatalf("finalScore must floor at zero, got %v", res.Score)
	}
	if res.NegativeMarks != 11 {
		t.Fatalf("expected negativeMarks 11, got %v", res.NegativeMarks)
	}
}

func TestHasAnswered(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"", false},
		{"   ", false},
		{"null", false},
		{" null ", false},
		{"A", true},
		{" B ", true},
		{"0", true},
	}
	for _, c := range cases {
		if got := HasAnswered(c.answer); got != c.want {
			t.Fatalf("HasAnswered(%q) = %v, want %v", c.answer, got, c.want)
		}
	}
}

func TestHasAnsweredTrimIdempotent(t *testing.T) {
	for _, s := range []string{"", "  x  ", "null", "  null", "yes"} {
		trimmed := s
		for len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[len(trimmed)-1] == ' ') {
			if trimmed[0] == ' ' {
				trimmed = trimmed[1:]
			} else {
				trimmed = trimmed[:len(trimmed)-1]
			}
		}
		if HasAnswered(s) != HasAnswered(trimmed) {
			t.Fatalf("HasAnswered(%q) != HasAnswered(%q)", s, trimmed)
		}
	}
}

func TestCorrectnessTrimsBothSides(t *testing.T) {
	q := Question{ID: 1, CorrectAnswers: []string{" Paris "}}
	if !IsCorrect(q, "Paris") {
		t.Fatal("expected trimmed match to be correct")
	}
	if IsCorrect(q, "paris") {
		t.Fatal("match must be case-sensitive")
	}
}

func TestWeightDefaults(t *testing.T) {
	questions := []Question{
		{ID: 1, CorrectAnswers: []string{"A"}, Score: 0},
		{ID: 2, CorrectAnswers: []string{"A"}, Score: -3},
		{ID: 3, CorrectAnswers: []string{"A"}, Score: math.NaN()},
		{ID: 4, CorrectAnswers: []string{"A"}, Score: 2.5},
	}
	res := Evaluate(questions, Config{}, nil)
	if res.TotalMaxMarks != 5.5 {
		t.Fatalf("expected totalMaxMarks 5.5 with defaulted weights, got %v", res.TotalMaxMarks)
	}
}

func TestPercentageZeroQuestions(t *testing.T) {
	res := Evaluate(nil, Config{NegativeMarking: true, Ratio: 0.5}, map[uint]string{1: "A"})
	if res.Percentage != 0 || res.TotalMaxMarks != 0 {
		t.Fatalf("zero questions must give zero percentage, got %+v", res)
	}
}

func TestInvalidRatioSubstituted(t *testing.T) {
	questions := []Question{{ID: 1, CorrectAnswers: []string{"A"}, Score: 1}}
	for _, ratio := range []float64{math.NaN(), math.Inf(1), -0.5} {
		res := Evaluate(questions, Config{NegativeMarking: true, Ratio: ratio}, map[uint]string{1: "B"})
		if res.NegativeMarks != 0 {
			t.Fatalf("invalid ratio %v must fall back to 0, got negativeMarks %v", ratio, res.NegativeMarks)
		}
	}
}

func TestRatioString(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0.3333335, "1/3"},
		{0.2, "1/5"},
		{0.25, "1/4"},
		{1, "1/1"},
		{0.1, "1/10"},
		{0, "0"},
		{-0.5, "0"},
		{0.37, "0.37"},
	}
	for _, c := range cases {
		if got := RatioString(c.ratio); got != c.want {
			t.Fatalf("RatioString(%v) = %q, want %q", c.ratio, got, c.want)
		}
	}
}
