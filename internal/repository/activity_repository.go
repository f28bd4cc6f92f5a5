package repository

import (
	"quiz_contest_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// CreateBatch 提交时按题批量追加活动行，日志只增不改。
func (r *ActivityRepository) CreateBatch(rows []model.AnswerActivity) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Create(&rows).Error
}

func (r *ActivityRepository) FindByContest(contestID uint) ([]model.AnswerActivity, error) {
	var rows []model.AnswerActivity
	err := r.DB.Where("contest_id = ?", contestID).Order("created_at asc, id asc").Find(&rows).Error
	return rows, err
}

func (r *ActivityRepository) FindByUserAndContest(userID, contestID uint) ([]model.AnswerActivity, error) {
	var rows []model.AnswerActivity
	err := r.DB.Where("user_id = ? AND contest_id = ?", userID, contestID).
		Order("created_at asc, id asc").Find(&rows).Error
	return rows, err
}
