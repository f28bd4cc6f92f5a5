package service

import (
	"strconv"
	"time"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/repository"
	"quiz_contest_backend/internal/scoring"
	"quiz_contest_backend/internal/util"
	"quiz_contest_backend/pkg/logger"
	"quiz_contest_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResultService 负责提交判分、排行榜和比赛统计的编排：
// 读库、归一化题目、调用计分核心、写回参与记录。
type ResultService struct {
	ContestRepo       *repository.ContestRepository
	ParticipationRepo *repository.ParticipationRepository
	ActivityRepo      *repository.ActivityRepository
	Notifier          *NotificationService
}

func NewResultService(contestRepo *repository.ContestRepository, participationRepo *repository.ParticipationRepository, activityRepo *repository.ActivityRepository, notifier *NotificationService) *ResultService {
	return &ResultService{
		ContestRepo:       contestRepo,
		ParticipationRepo: participationRepo,
		ActivityRepo:      activityRepo,
		Notifier:          notifier,
	}
}

// SubmissionResult 返回给前端的判分结果，附带比赛的负分配置和用时。
type SubmissionResult struct {
	scoring.Result
	ContestID            uint    `json:"contestId"`
	ContestTitle         string  `json:"contestTitle"`
	HasNegativeMarking   bool    `json:"hasNegativeMarking"`
	NegativeMarkingValue float64 `json:"negativeMarkingValue"`
	NegativeMarkingRatio string  `json:"negativeMarkingRatio"`
	TimeTaken            int     `json:"timeTaken"` // 分钟
	Violations           int     `json:"violations"`
	AutoSubmitted        bool    `json:"autoSubmitted"`
}

// toScoringQuestions 将数据库题目归一化为计分核心的题目快照。
func toScoringQuestions(questions []model.Question) []scoring.Question {
	out := make([]scoring.Question, 0, len(questions))
	for _, q := range questions {
		options, legacy := scoring.NormalizeOptions(q.Options)
		out = append(out, scoring.Question{
			ID:             q.ID,
			Text:           q.Question,
			Options:        options,
			CorrectAnswers: scoring.NormalizeAnswerSet(q.CorrectAnswers),
			Score:          q.Score,
			LegacyKeyed:    legacy,
		})
	}
	return out
}

func toScoringConfig(contest *model.Contest) scoring.Config {
	return scoring.Config{
		NegativeMarking: contest.NegativeMarking,
		Ratio:           contest.NegativeMarkingValue,
	}
}

func toScoringActivities(rows []model.AnswerActivity) []scoring.Activity {
	out := make([]scoring.Activity, 0, len(rows))
	for _, a := range rows {
		out = append(out, scoring.Activity{
			UserID:     a.UserID,
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
			CreatedAt:  a.CreatedAt,
		})
	}
	return out
}

func toScoringParticipants(ps []model.Participation) []scoring.Participant {
	out := make([]scoring.Participant, 0, len(ps))
	for i := range ps {
		p := ps[i]
		sp := scoring.Participant{
			UserID:      p.UserID,
			StartedAt:   &p.StartedAt,
			EndTime:     p.EndTime,
			SubmittedAt: p.SubmittedAt,
			Violations:  p.Violations,
		}
		if p.User != nil {
			sp.UserName = p.User.Name
			sp.UserEmail = p.User.Email
		}
		out = append(out, sp)
	}
	return out
}

func (s *ResultService) contest(contestID uint) (*model.Contest, error) {
	contest, err := s.ContestRepo.FindByID(contestID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrContestNotFound
	}
	return contest, err
}

// Submit 提交答卷并判分。answers 以题目 ID 为键、选项文本为值；
// 只有算作答的条目才会落活动日志，判分永远以日志折叠后的最终答案为准。
func (s *ResultService) Submit(userID, contestID uint, answers map[uint]string) (*SubmissionResult, error) {
	return s.submit(userID, contestID, answers, false)
}

func (s *ResultService) submit(userID, contestID uint, answers map[uint]string, auto bool) (*SubmissionResult, error) {
	contest, err := s.contest(contestID)
	if err != nil {
		return nil, err
	}

	participation, err := s.ParticipationRepo.FindByUserAndContest(userID, contestID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrParticipationNotFound
	}
	if err != nil {
		return nil, err
	}
	if participation.SubmittedAt != nil {
		return nil, util.ErrAlreadySubmitted
	}

	rows := make([]model.AnswerActivity, 0, len(answers))
	for questionID, answer := range answers {
		if !scoring.HasAnswered(answer) {
			continue
		}
		rows = append(rows, model.AnswerActivity{
			UserID:     userID,
			ContestID:  contestID,
			QuestionID: questionID,
			Answer:     answer,
		})
	}
	if err := s.ActivityRepo.CreateBatch(rows); err != nil {
		return nil, err
	}

	// 重读日志折叠出最终答案，保证与排行榜/统计口径一致
	allRows, err := s.ActivityRepo.FindByUserAndContest(userID, contestID)
	if err != nil {
		return nil, err
	}
	final := scoring.FinalAnswers(toScoringActivities(allRows))[userID]

	questions := toScoringQuestions(contest.Questions)
	cfg := toScoringConfig(contest)
	res := scoring.Evaluate(questions, cfg, final)

	now := time.Now()
	participation.EndTime = &now
	participation.SubmittedAt = &now
	if err := s.ParticipationRepo.Update(participation); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(strconv.FormatUint(uint64(contestID), 10)).Inc()

	if res.Percentage >= util.HighScoreNotifyPercentage {
		if err := s.Notifier.NotifyHighScore(userID, contest, res.Score, res.Total); err != nil {
			logger.Log.Warn("high score notification failed",
				zap.Uint("userId", userID), zap.Uint("contestId", contestID), zap.Error(err))
		}
	}

	return s.buildSubmissionResult(contest, participation, res, auto), nil
}

func (s *ResultService) buildSubmissionResult(contest *model.Contest, p *model.Participation, res scoring.Result, auto bool) *SubmissionResult {
	ratio := 0.0
	if contest.NegativeMarking {
		ratio = toScoringConfig(contest).EffectiveRatio()
	}
	return &SubmissionResult{
		Result:               res,
		ContestID:            contest.ID,
		ContestTitle:         contest.Title,
		HasNegativeMarking:   contest.NegativeMarking,
		NegativeMarkingValue: contest.NegativeMarkingValue,
		NegativeMarkingRatio: scoring.RatioString(ratio),
		TimeTaken:            scoring.TimeTakenMinutes(&p.StartedAt, p.EndTime, p.SubmittedAt, contest.StartTime, contest.EndTime),
		Violations:           p.Violations,
		AutoSubmitted:        auto,
	}
}

// GetResult 查询某用户在一场比赛的判分结果，按当前活动日志重新计算。
func (s *ResultService) GetResult(userID, contestID uint) (*SubmissionResult, error) {
	contest, err := s.contest(contestID)
	if err != nil {
		return nil, err
	}
	participation, err := s.ParticipationRepo.FindByUserAndContest(userID, contestID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrParticipationNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.ActivityRepo.FindByUserAndContest(userID, contestID)
	if err != nil {
		return nil, err
	}
	final := scoring.FinalAnswers(toScoringActivities(rows))[userID]
	res := scoring.Evaluate(toScoringQuestions(contest.Questions), toScoringConfig(contest), final)

	return s.buildSubmissionResult(contest, participation, res, false), nil
}

// Leaderboard 全场排行榜，零活动的参与者也按 0 分入榜。
func (s *ResultService) Leaderboard(contestID uint) ([]scoring.LeaderboardEntry, error) {
	contest, err := s.contest(contestID)
	if err != nil {
		return nil, err
	}
	participations, err := s.ParticipationRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ActivityRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}

	return scoring.BuildLeaderboard(
		toScoringQuestions(contest.Questions),
		toScoringConfig(contest),
		toScoringParticipants(participations),
		toScoringActivities(rows),
		contest.StartTime, contest.EndTime,
	), nil
}

// ParticipantResult 单个参与者的完整判分结果，批量导出使用。
type ParticipantResult struct {
	UserID    uint
	UserName  string
	UserEmail string
	Result    scoring.Result
}

// AllResults 一次加载整场比赛的数据，为每个参与者判分。
// 导出明细表走这里而不是逐人查询。
func (s *ResultService) AllResults(contestID uint) ([]ParticipantResult, error) {
	contest, err := s.contest(contestID)
	if err != nil {
		return nil, err
	}
	participations, err := s.ParticipationRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ActivityRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}

	questions := toScoringQuestions(contest.Questions)
	cfg := toScoringConfig(contest)
	final := scoring.FinalAnswers(toScoringActivities(rows))

	out := make([]ParticipantResult, 0, len(participations))
	for i := range participations {
		p := participations[i]
		pr := ParticipantResult{
			UserID: p.UserID,
			Result: scoring.Evaluate(questions, cfg, final[p.UserID]),
		}
		if p.User != nil {
			pr.UserName = p.User.Name
			pr.UserEmail = p.User.Email
		}
		out = append(out, pr)
	}
	return out, nil
}

// Stats 比赛级统计。
func (s *ResultService) Stats(contestID uint) (*scoring.ContestStats, error) {
	contest, err := s.contest(contestID)
	if err != nil {
		return nil, err
	}
	participations, err := s.ParticipationRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ActivityRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}

	stats := scoring.BuildStats(
		toScoringQuestions(contest.Questions),
		toScoringConfig(contest),
		toScoringParticipants(participations),
		toScoringActivities(rows),
		contest.StartTime, contest.EndTime,
	)
	return &stats, nil
}

// RecordViolation 记一次监考违规，达到阈值时自动交卷。
// 已交卷的参与者不再累计。
func (s *ResultService) RecordViolation(userID, contestID uint) (int, *SubmissionResult, error) {
	participation, err := s.ParticipationRepo.FindByUserAndContest(userID, contestID)
	if err == gorm.ErrRecordNotFound {
		return 0, nil, util.ErrParticipationNotFound
	}
	if err != nil {
		return 0, nil, err
	}
	if participation.SubmittedAt != nil {
		return participation.Violations, nil, util.ErrAlreadySubmitted
	}

	participation.Violations++
	if err := s.ParticipationRepo.Update(participation); err != nil {
		return 0, nil, err
	}

	if participation.Violations < util.ViolationAutoSubmitThreshold {
		return participation.Violations, nil, nil
	}

	// 阈值触发：用既有活动日志自动交卷，无新增答案
	result, err := s.submit(userID, contestID, nil, true)
	if err != nil {
		return participation.Violations, nil, err
	}
	return participation.Violations, result, nil
}
