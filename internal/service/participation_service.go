package service

import (
	"strings"
	"time"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/repository"
	"quiz_contest_backend/internal/util"

	"gorm.io/gorm"
)

type ParticipationService struct {
	Repo        *repository.ParticipationRepository
	ContestRepo *repository.ContestRepository
}

func NewParticipationService(repo *repository.ParticipationRepository, contestRepo *repository.ContestRepository) *ParticipationService {
	return &ParticipationService{Repo: repo, ContestRepo: contestRepo}
}

// Join 加入比赛。比赛必须在进行窗口内；重复加入返回已有记录和
// ErrAlreadyJoined，由调用方决定如何响应。
func (s *ParticipationService) Join(userID, contestID uint) (*model.Participation, error) {
	contest, err := s.ContestRepo.FindByID(contestID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrContestNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.join(userID, contest)
}

// JoinByCode 通过邀请码加入。
func (s *ParticipationService) JoinByCode(userID uint, code string) (*model.Participation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, util.ErrInvalidJoinCode
	}
	contest, err := s.ContestRepo.FindByJoinCode(code)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrInvalidJoinCode
	}
	if err != nil {
		return nil, err
	}
	return s.join(userID, contest)
}

func (s *ParticipationService) join(userID uint, contest *model.Contest) (*model.Participation, error) {
	now := time.Now()
	if now.Before(contest.StartTime) {
		return nil, util.ErrContestNotStarted
	}
	if now.After(contest.EndTime) {
		return nil, util.ErrContestEnded
	}

	if existing, err := s.Repo.FindByUserAndContest(userID, contest.ID); err == nil {
		return existing, util.ErrAlreadyJoined
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	p := &model.Participation{
		UserID:    userID,
		ContestID: contest.ID,
		StartedAt: now,
	}
	if err := s.Repo.Create(p); err != nil {
		// 唯一索引兜底：并发加入时读取已有记录
		if existing, ferr := s.Repo.FindByUserAndContest(userID, contest.ID); ferr == nil {
			return existing, util.ErrAlreadyJoined
		}
		return nil, err
	}
	return p, nil
}

// Get 查询用户在某场比赛的参与记录。
func (s *ParticipationService) Get(userID, contestID uint) (*model.Participation, error) {
	p, err := s.Repo.FindByUserAndContest(userID, contestID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrParticipationNotFound
	}
	return p, err
}

// ListByContest 列出比赛全部参与者（含用户展示字段）。
func (s *ParticipationService) ListByContest(contestID uint) ([]model.Participation, error) {
	return s.Repo.FindByContest(contestID)
}
