package repository

import (
	"quiz_contest_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

// CreateBatch 批量导入（Excel/JSON 上传）走单事务。
func (r *QuestionRepository) CreateBatch(qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&qs).Error
	})
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// 先解除比赛关联，再删题
		if err := tx.Exec("DELETE FROM contest_questions WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *QuestionRepository) List(page, limit int, category, difficulty string, visibleOnly bool) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if visibleOnly {
		query = query.Where("visibility = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var qs []model.Question
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

// SetVisibility 比赛锁题/解锁题时批量切换可见性。
func (r *QuestionRepository) SetVisibility(ids []uint, visible bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Model(&model.Question{}).Where("id IN ?", ids).Update("visibility", visible).Error
}
