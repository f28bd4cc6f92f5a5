package service

import (
	"encoding/json"
	"testing"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/scoring"
)

func evaluateEmpty() scoring.Result {
	return scoring.Evaluate(nil, scoring.Config{}, nil)
}

func TestToScoringQuestionsNormalizesShapes(t *testing.T) {
	questions := []model.Question{
		{
			BaseModel:      model.BaseModel{ID: 1},
			Question:       "array options",
			Options:        json.RawMessage(`["Paris","London","Rome","Berlin"]`),
			CorrectAnswers: json.RawMessage(`["Paris"]`),
			Score:          2,
		},
		{
			BaseModel:      model.BaseModel{ID: 2},
			Question:       "keyed options",
			Options:        json.RawMessage(`{"a":"Red","b":"Green","c":"Blue","d":"Black"}`),
			CorrectAnswers: json.RawMessage(`"Blue"`),
			Score:          0,
		},
	}

	out := toScoringQuestions(questions)
	if len(out) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(out))
	}

	first := out[0]
	if first.LegacyKeyed {
		t.Fatalf("array-shaped options should not be legacy")
	}
	if len(first.Options) != 4 || first.Options[0] != "Paris" {
		t.Fatalf("array options mangled: %v", first.Options)
	}
	if len(first.CorrectAnswers) != 1 || first.CorrectAnswers[0] != "Paris" {
		t.Fatalf("array answers mangled: %v", first.CorrectAnswers)
	}
	if first.Weight() != 2 {
		t.Fatalf("weight = %v, want 2", first.Weight())
	}

	second := out[1]
	if !second.LegacyKeyed {
		t.Fatalf("keyed options should be flagged legacy")
	}
	if len(second.Options) != 4 || second.Options[2] != "Blue" {
		t.Fatalf("keyed options should expand in a/b/c/d order: %v", second.Options)
	}
	if len(second.CorrectAnswers) != 1 || second.CorrectAnswers[0] != "Blue" {
		t.Fatalf("single-string answer should wrap in a slice: %v", second.CorrectAnswers)
	}
	if second.Weight() != 1 {
		t.Fatalf("zero score should weigh 1, got %v", second.Weight())
	}
}

func TestToScoringConfig(t *testing.T) {
	contest := &model.Contest{NegativeMarking: true, NegativeMarkingValue: 0.25}
	cfg := toScoringConfig(contest)
	if !cfg.NegativeMarking || cfg.Ratio != 0.25 {
		t.Fatalf("config = %+v", cfg)
	}

	off := toScoringConfig(&model.Contest{})
	if off.NegativeMarking || off.Ratio != 0 {
		t.Fatalf("config = %+v", off)
	}
}

func TestBuildSubmissionResultRatio(t *testing.T) {
	s := &ResultService{}

	contest := &model.Contest{
		BaseModel:            model.BaseModel{ID: 7},
		Title:                "weekly",
		NegativeMarking:      true,
		NegativeMarkingValue: 0.25,
	}
	p := &model.Participation{Violations: 1}

	res := s.buildSubmissionResult(contest, p, evaluateEmpty(), false)
	if res.NegativeMarkingRatio != "1/4" {
		t.Fatalf("ratio string = %q, want 1/4", res.NegativeMarkingRatio)
	}
	if !res.HasNegativeMarking || res.Violations != 1 || res.AutoSubmitted {
		t.Fatalf("result = %+v", res)
	}

	contest.NegativeMarking = false
	res = s.buildSubmissionResult(contest, p, evaluateEmpty(), true)
	if res.NegativeMarkingRatio != "0" {
		t.Fatalf("ratio string with marking off = %q, want 0", res.NegativeMarkingRatio)
	}
	if !res.AutoSubmitted {
		t.Fatalf("auto flag lost")
	}
}
