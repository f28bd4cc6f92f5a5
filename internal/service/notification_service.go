package service

import (
	"context"
	"encoding/json"
	"time"

	"quiz_contest_backend/internal/config"
	"quiz_contest_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// NotificationService 通过 Redis 发布通知事件，尽力而为：
// 发布失败只返回错误由调用方记录日志，绝不影响计分结果。
type NotificationService struct {
	rdb     *redis.Client
	channel string
}

func NewNotificationService(rdb *redis.Client, cfg *config.Config) *NotificationService {
	return &NotificationService{
		rdb:     rdb,
		channel: cfg.Notification.Channel,
	}
}

type notificationEvent struct {
	EventID        string    `json:"eventId"`
	Type           string    `json:"type"`
	UserID         uint      `json:"userId,omitempty"`
	ContestID      uint      `json:"contestId"`
	ContestTitle   string    `json:"contestTitle"`
	Score          float64   `json:"score,omitempty"`
	TotalQuestions int       `json:"totalQuestions,omitempty"`
	StartTime      time.Time `json:"startTime,omitempty"`
	EndTime        time.Time `json:"endTime,omitempty"`
	At             time.Time `json:"at"`
}

func (s *NotificationService) publish(event notificationEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	// 事件 ID 供消费端去重
	event.EventID = uuid.NewString()
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.rdb.Publish(ctx, s.channel, payload).Err()
}

// NotifyHighScore 用户成绩达到高分阈值后的祝贺事件。
func (s *NotificationService) NotifyHighScore(userID uint, contest *model.Contest, rawScore float64, totalQuestions int) error {
	return s.publish(notificationEvent{
		Type:           "high_score",
		UserID:         userID,
		ContestID:      contest.ID,
		ContestTitle:   contest.Title,
		Score:          rawScore,
		TotalQuestions: totalQuestions,
		At:             time.Now(),
	})
}

// NotifyContestAnnounced 新比赛创建后的公告事件。
func (s *NotificationService) NotifyContestAnnounced(contest *model.Contest) error {
	return s.publish(notificationEvent{
		Type:         "contest_announced",
		ContestID:    contest.ID,
		ContestTitle: contest.Title,
		StartTime:    contest.StartTime,
		EndTime:      contest.EndTime,
		At:           time.Now(),
	})
}
