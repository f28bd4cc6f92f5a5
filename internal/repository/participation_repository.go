package repository

import (
	"quiz_contest_backend/internal/model"

	"gorm.io/gorm"
)

type ParticipationRepository struct {
	DB *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) *ParticipationRepository {
	return &ParticipationRepository{DB: db}
}

func (r *ParticipationRepository) Create(p *model.Participation) error {
	return r.DB.Create(p).Error
}

func (r *ParticipationRepository) FindByUserAndContest(userID, contestID uint) (*model.Participation, error) {
	var p model.Participation
	err := r.DB.Where("user_id = ? AND contest_id = ?", userID, contestID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByContest 带用户展示字段，供排行榜/统计/导出使用。
func (r *ParticipationRepository) FindByContest(contestID uint) ([]model.Participation, error) {
	var ps []model.Participation
	err := r.DB.Preload("User").Where("contest_id = ?", contestID).
		Order("created_at asc").Find(&ps).Error
	return ps, err
}

func (r *ParticipationRepository) Update(p *model.Participation) error {
	return r.DB.Save(p).Error
}

func (r *ParticipationRepository) CountByContest(contestID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Participation{}).Where("contest_id = ?", contestID).Count(&count).Error
	return count, err
}
