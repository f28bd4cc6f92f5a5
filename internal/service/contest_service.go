package service

import (
	"crypto/rand"
	"strings"
	"time"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/repository"
	"quiz_contest_backend/internal/util"
	"quiz_contest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContestService struct {
	Repo         *repository.ContestRepository
	QuestionRepo *repository.QuestionRepository
	Notifier     *NotificationService
}

func NewContestService(repo *repository.ContestRepository, questionRepo *repository.QuestionRepository, notifier *NotificationService) *ContestService {
	return &ContestService{Repo: repo, QuestionRepo: questionRepo, Notifier: notifier}
}

type ContestReq struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	StartTime            *time.Time `json:"startTime"`
	EndTime              *time.Time `json:"endTime"`
	WithJoinCode         *bool      `json:"withJoinCode"`
	NegativeMarking      *bool      `json:"negativeMarking"`
	NegativeMarkingValue *float64   `json:"negativeMarkingValue"`
	QuestionIDs          *[]uint    `json:"questionIds"`
}

const joinCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const joinCodeLength = 6
const joinCodeMaxRetries = 5

// generateJoinCode 随机 6 位大写字母数字邀请码。
func generateJoinCode() (string, error) {
	buf := make([]byte, joinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(joinCodeCharset[int(b)%len(joinCodeCharset)])
	}
	return sb.String(), nil
}

// newUniqueJoinCode 生成并预检唯一性；真正的唯一约束在存储层，
// 创建冲突时调用方重试。
func (s *ContestService) newUniqueJoinCode() (string, error) {
	for i := 0; i < joinCodeMaxRetries; i++ {
		code, err := generateJoinCode()
		if err != nil {
			return "", err
		}
		exists, err := s.Repo.JoinCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", util.ErrJoinCodeTaken
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

func (s *ContestService) Create(creatorID uint, req ContestReq) (*model.Contest, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, util.ErrInvalidContest
	}
	if req.StartTime == nil || req.EndTime == nil || !req.EndTime.After(*req.StartTime) {
		return nil, util.ErrInvalidTimeWindow
	}

	contest := &model.Contest{
		Title:     *req.Title,
		StartTime: *req.StartTime,
		EndTime:   *req.EndTime,
		CreatorID: creatorID,
	}
	if req.Description != nil {
		contest.Description = *req.Description
	}
	if req.NegativeMarking != nil {
		contest.NegativeMarking = *req.NegativeMarking
	}
	if req.NegativeMarkingValue != nil {
		contest.NegativeMarkingValue = clampRatio(*req.NegativeMarkingValue)
	}

	var questions []model.Question
	if req.QuestionIDs != nil && len(*req.QuestionIDs) > 0 {
		var err error
		questions, err = s.QuestionRepo.FindByIDs(*req.QuestionIDs)
		if err != nil {
			return nil, err
		}
		contest.Questions = questions
	}

	// 唯一约束下的邀请码生成：冲突则换码重试
	withCode := req.WithJoinCode != nil && *req.WithJoinCode
	for attempt := 0; ; attempt++ {
		if withCode {
			code, err := s.newUniqueJoinCode()
			if err != nil {
				return nil, err
			}
			contest.JoinCode = &code
		}

		err := s.Repo.Create(contest)
		if err == nil {
			break
		}
		if withCode && isDuplicateKey(err) && attempt < joinCodeMaxRetries {
			continue
		}
		return nil, err
	}

	// 锁定题目可见性
	s.lockQuestions(questions)

	// 公告通知尽力而为，失败只记日志
	if err := s.Notifier.NotifyContestAnnounced(contest); err != nil {
		logger.Log.Warn("contest announcement notification failed", zap.Uint("contestId", contest.ID), zap.Error(err))
	}

	return contest, nil
}

func clampRatio(ratio float64) float64 {
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (s *ContestService) lockQuestions(questions []model.Question) {
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	if err := s.QuestionRepo.SetVisibility(ids, false); err != nil {
		logger.Log.Error("failed to lock contest questions", zap.Error(err))
	}
}

func (s *ContestService) unlockQuestions(questions []model.Question) {
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	if err := s.QuestionRepo.SetVisibility(ids, true); err != nil {
		logger.Log.Error("failed to unlock contest questions", zap.Error(err))
	}
}

func (s *ContestService) Get(id uint) (*model.Contest, error) {
	contest, err := s.Repo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrContestNotFound
	}
	return contest, err
}

func (s *ContestService) Update(id uint, req ContestReq) (*model.Contest, error) {
	contest, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		contest.Title = *req.Title
	}
	if req.Description != nil {
		contest.Description = *req.Description
	}
	if req.StartTime != nil {
		contest.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		contest.EndTime = *req.EndTime
	}
	if !contest.EndTime.After(contest.StartTime) {
		return nil, util.ErrInvalidTimeWindow
	}
	if req.NegativeMarking != nil {
		contest.NegativeMarking = *req.NegativeMarking
	}
	if req.NegativeMarkingValue != nil {
		contest.NegativeMarkingValue = clampRatio(*req.NegativeMarkingValue)
	}

	if err := s.Repo.Update(contest); err != nil {
		return nil, err
	}

	// 替换题目集合：旧题解锁，新题锁定
	if req.QuestionIDs != nil {
		newQuestions, err := s.QuestionRepo.FindByIDs(*req.QuestionIDs)
		if err != nil {
			return nil, err
		}
		s.unlockQuestions(contest.Questions)
		if err := s.Repo.ReplaceQuestions(contest, newQuestions); err != nil {
			return nil, err
		}
		s.lockQuestions(newQuestions)
		contest.Questions = newQuestions
	}

	return contest, nil
}

// ExtendEndTime 延长比赛结束时间。
func (s *ContestService) ExtendEndTime(id uint, newEnd time.Time) (*model.Contest, error) {
	contest, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !newEnd.After(contest.StartTime) {
		return nil, util.ErrInvalidTimeWindow
	}
	contest.EndTime = newEnd
	if err := s.Repo.Update(contest); err != nil {
		return nil, err
	}
	return contest, nil
}

// Delete 级联删除比赛及其参与/活动记录，并解锁题目。
func (s *ContestService) Delete(id uint) error {
	contest, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.unlockQuestions(contest.Questions)
	return nil
}

func (s *ContestService) List(page, limit int) ([]model.Contest, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *ContestService) ListActive() ([]model.Contest, error) {
	return s.Repo.ListActive(time.Now())
}
