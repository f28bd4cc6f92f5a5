package model

import "time"

// Participation 一个用户对一场比赛的唯一参与记录。
// swagger:model Participation
type Participation struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_contest;type:bigint unsigned" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ContestID   uint       `gorm:"uniqueIndex:idx_user_contest;index;type:bigint unsigned" json:"contestId"`
	StartedAt   time.Time  `json:"startedAt"`
	EndTime     *time.Time `json:"endTime"`     // 提交后写入
	SubmittedAt *time.Time `json:"submittedAt"` // 提交时间，自动提交时同样写入
	Violations  int        `gorm:"default:0" json:"violations"`
}

func (Participation) TableName() string {
	return "participations"
}
