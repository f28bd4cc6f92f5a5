package model

import "encoding/json"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question 题库中的一道选择题。
// Options 为 JSON：规范形态是 4 个选项字符串的数组，
// 旧版数据可能是 {a,b,c,d} 对象形态，读取时统一归一化为数组。
// swagger:model Question
type Question struct {
	BaseModel
	Category       string          `gorm:"size:100;index" json:"category"`
	Subcategory    string          `gorm:"size:100" json:"subcategory"`
	Difficulty     Difficulty      `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Question       string          `gorm:"type:text;not null" json:"question"`
	Options        json.RawMessage `gorm:"type:json" json:"options"`
	CorrectAnswers json.RawMessage `gorm:"type:json" json:"correctAnswers"` // 正确答案文本集合，须与选项逐字匹配
	Score          float64         `gorm:"default:1" json:"score"`
	Explanation    string          `gorm:"type:text" json:"explanation"`
	Visibility     bool            `gorm:"default:true" json:"visibility"` // 锁定进比赛后置为 false
}

func (Question) TableName() string {
	return "questions"
}
