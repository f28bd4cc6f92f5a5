package model

// AnswerActivity 答题活动日志，只追加不修改。
// 重复提交会追加新行，聚合时取每个 (用户, 题目) 最新的一行。
// swagger:model AnswerActivity
type AnswerActivity struct {
	BaseModel
	UserID     uint   `gorm:"index:idx_activity_user_contest;type:bigint unsigned" json:"userId"`
	ContestID  uint   `gorm:"index:idx_activity_user_contest;index;type:bigint unsigned" json:"contestId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Answer     string `gorm:"type:text" json:"answer"` // 选中的选项文本，空串表示未作答
}

func (AnswerActivity) TableName() string {
	return "answer_activities"
}
