package model

import "time"

// Contest 测试系列：一组限时题目，可配置负分规则和 6 位邀请码。
// swagger:model Contest
type Contest struct {
	BaseModel
	Title                string     `gorm:"size:255;not null" json:"title"`
	Description          string     `gorm:"type:text" json:"description"`
	StartTime            time.Time  `gorm:"not null" json:"startTime"`
	EndTime              time.Time  `gorm:"not null" json:"endTime"` // 必须晚于 StartTime
	JoinCode             *string    `gorm:"size:6;uniqueIndex" json:"joinCode,omitempty"`
	NegativeMarking      bool       `gorm:"default:false" json:"negativeMarking"`
	NegativeMarkingValue float64    `gorm:"default:0" json:"negativeMarkingValue"` // 每道错题扣 ratio*score，取值 [0,1]
	CreatorID            uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
	Questions            []Question `gorm:"many2many:contest_questions" json:"questions,omitempty"`
}

func (Contest) TableName() string {
	return "contests"
}
