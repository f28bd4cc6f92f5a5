package service

import (
	"testing"

	"quiz_contest_backend/internal/model"
)

func validReq() QuestionReq {
	return QuestionReq{
		Category:       "general",
		Difficulty:     "easy",
		Question:       "2+2?",
		Options:        []string{"3", "4", "5", "6"},
		CorrectAnswers: []string{"4"},
		Score:          2,
	}
}

func TestValidateQuestion(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*QuestionReq)
		wantOK bool
	}{
		{"valid", func(r *QuestionReq) {}, true},
		{"three options", func(r *QuestionReq) { r.Options = r.Options[:3] }, false},
		{"five options", func(r *QuestionReq) { r.Options = append(r.Options, "7") }, false},
		{"blank option", func(r *QuestionReq) { r.Options[2] = "   " }, false},
		{"no correct answers", func(r *QuestionReq) { r.CorrectAnswers = nil }, false},
		{"answer not an option", func(r *QuestionReq) { r.CorrectAnswers = []string{"7"} }, false},
		{"answer matches after trim", func(r *QuestionReq) { r.CorrectAnswers = []string{" 4 "} }, true},
		{"multiple correct answers", func(r *QuestionReq) { r.CorrectAnswers = []string{"4", "5"} }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validReq()
			tc.mutate(&req)
			err := validateQuestion(&req)
			if tc.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatalf("expected validation error, got nil")
			}
		})
	}
}

func TestQuestionFromReqDefaults(t *testing.T) {
	req := validReq()
	req.Difficulty = "impossible"
	req.Score = -3

	q, err := questionFromReq(&req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Difficulty != model.DifficultyMedium {
		t.Fatalf("unknown difficulty should default to medium, got %s", q.Difficulty)
	}
	if q.Score != 1 {
		t.Fatalf("non-positive score should default to 1, got %v", q.Score)
	}
	if !q.Visibility {
		t.Fatalf("new questions should be visible")
	}
}

func TestQuestionFromReqKeepsScore(t *testing.T) {
	req := validReq()
	q, err := questionFromReq(&req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Score != 2 {
		t.Fatalf("score = %v, want 2", q.Score)
	}
}
