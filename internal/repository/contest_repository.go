package repository

import (
	"time"

	"quiz_contest_backend/internal/model"

	"gorm.io/gorm"
)

type ContestRepository struct {
	DB *gorm.DB
}

func NewContestRepository(db *gorm.DB) *ContestRepository {
	return &ContestRepository{DB: db}
}

func (r *ContestRepository) Create(contest *model.Contest) error {
	return r.DB.Create(contest).Error
}

func (r *ContestRepository) FindByID(id uint) (*model.Contest, error) {
	var contest model.Contest
	err := r.DB.Preload("Questions").First(&contest, id).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *ContestRepository) FindByJoinCode(code string) (*model.Contest, error) {
	var contest model.Contest
	err := r.DB.Preload("Questions").Where("join_code = ?", code).First(&contest).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

func (r *ContestRepository) JoinCodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Contest{}).Where("join_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *ContestRepository) Update(contest *model.Contest) error {
	return r.DB.Omit("Questions").Save(contest).Error
}

// ReplaceQuestions 整体替换比赛题目集合。
func (r *ContestRepository) ReplaceQuestions(contest *model.Contest, questions []model.Question) error {
	return r.DB.Model(contest).Association("Questions").Replace(questions)
}

// Delete 级联删除：参与记录、活动日志与题目关联在同一事务内清掉，
// 不允许留下孤儿活动行。
func (r *ContestRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contest_id = ?", id).Delete(&model.AnswerActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", id).Delete(&model.Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM contest_questions WHERE contest_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Contest{}, id).Error
	})
}

func (r *ContestRepository) List(page, limit int) ([]model.Contest, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Contest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []model.Contest
	offset := (page - 1) * limit
	err := r.DB.Order("start_time desc").Offset(offset).Limit(limit).Find(&contests).Error
	return contests, total, err
}

// ListActive 对用户可见的比赛：当前时间落在起止窗口内。
func (r *ContestRepository) ListActive(now time.Time) ([]model.Contest, error) {
	var contests []model.Contest
	err := r.DB.Where("start_time <= ? AND end_time >= ?", now, now).
		Order("end_time asc").Find(&contests).Error
	return contests, err
}
