package service

import (
	"encoding/json"
	"strings"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/repository"
	"quiz_contest_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

type QuestionReq struct {
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory"`
	Difficulty     string   `json:"difficulty"`
	Question       string   `json:"question" binding:"required"`
	Options        []string `json:"options" binding:"required"`
	CorrectAnswers []string `json:"correctAnswers" binding:"required"`
	Score          float64  `json:"score"`
	Explanation    string   `json:"explanation"`
}

// validateQuestion 校验题目不变式：恰好 4 个非空选项，
// 正确答案非空且每个都能（去空白后）精确匹配某个选项。
func validateQuestion(req *QuestionReq) error {
	if len(req.Options) != 4 {
		return util.ErrInvalidQuestion
	}
	optionSet := make(map[string]bool, 4)
	for _, opt := range req.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			return util.ErrInvalidQuestion
		}
		optionSet[trimmed] = true
	}

	if len(req.CorrectAnswers) == 0 {
		return util.ErrInvalidQuestion
	}
	for _, ans := range req.CorrectAnswers {
		if !optionSet[strings.TrimSpace(ans)] {
			return util.ErrInvalidQuestion
		}
	}
	return nil
}

func questionFromReq(req *QuestionReq) (*model.Question, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	options, _ := json.Marshal(req.Options)
	answers, _ := json.Marshal(req.CorrectAnswers)

	difficulty := model.Difficulty(req.Difficulty)
	switch difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		difficulty = model.DifficultyMedium
	}

	score := req.Score
	if score <= 0 {
		score = 1
	}

	return &model.Question{
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Difficulty:     difficulty,
		Question:       req.Question,
		Options:        options,
		CorrectAnswers: answers,
		Score:          score,
		Explanation:    req.Explanation,
		Visibility:     true,
	}, nil
}

func (s *QuestionService) Create(req QuestionReq) (*model.Question, error) {
	q, err := questionFromReq(&req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

// BulkCreate Excel/JSON 批量导入，全部校验通过才入库。
func (s *QuestionService) BulkCreate(reqs []QuestionReq) ([]model.Question, error) {
	qs := make([]model.Question, 0, len(reqs))
	for i := range reqs {
		q, err := questionFromReq(&reqs[i])
		if err != nil {
			return nil, err
		}
		qs = append(qs, *q)
	}
	if err := s.Repo.CreateBatch(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) Update(id uint, req QuestionReq) (*model.Question, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updated, err := questionFromReq(&req)
	if err != nil {
		return nil, err
	}

	existing.Category = updated.Category
	existing.Subcategory = updated.Subcategory
	existing.Difficulty = updated.Difficulty
	existing.Question = updated.Question
	existing.Options = updated.Options
	existing.CorrectAnswers = updated.CorrectAnswers
	existing.Score = updated.Score
	existing.Explanation = updated.Explanation

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *QuestionService) List(page, limit int, category, difficulty string, visibleOnly bool) ([]model.Question, int64, error) {
	return s.Repo.List(page, limit, category, difficulty, visibleOnly)
}
