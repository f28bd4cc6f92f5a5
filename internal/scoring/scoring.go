// Package scoring 实现比赛计分与聚合的纯计算核心。
// 所有函数都只依赖显式传入的数据，不做任何 I/O，可安全并发调用。
package scoring

import (
	"math"
	"strconv"
	"strings"
)

// Question 参与计分的题目快照，选项已归一化为数组形态（见 normalize.go）。
type Question struct {
	ID             uint
	Text           string
	Options        []string
	CorrectAnswers []string
	Score          float64
	LegacyKeyed    bool // 旧版 {a,b,c,d} 对象形态的题目，仅影响统计的按键桶
}

// Weight 题目分值，缺失/非法时回退为 1。
func (q Question) Weight() float64 {
	if math.IsNaN(q.Score) || math.IsInf(q.Score, 0) || q.Score <= 0 {
		return 1
	}
	return q.Score
}

// Config 比赛的负分配置。
type Config struct {
	NegativeMarking bool
	Ratio           float64 // 每道错题扣 Ratio*题目分值，取值 [0,1]
}

// EffectiveRatio 非法比例（NaN/Inf/负数）按 0 处理，计分永远能算出结果。
func (c Config) EffectiveRatio() float64 {
	if math.IsNaN(c.Ratio) || math.IsInf(c.Ratio, 0) || c.Ratio < 0 {
		return 0
	}
	return c.Ratio
}

// HasAnswered 判定一个答案是否算作答：去空白后非空且不是字面量 "null"。
// 提交计分、排行榜、统计、导出必须统一使用该判定。
func HasAnswered(answer string) bool {
	t := strings.TrimSpace(answer)
	return t != "" && t != "null"
}

// IsCorrect 判定已作答答案是否正确：去空白后与正确答案集合逐字匹配。
func IsCorrect(q Question, answer string) bool {
	t := strings.TrimSpace(answer)
	for _, c := range q.CorrectAnswers {
		if strings.TrimSpace(c) == t {
			return true
		}
	}
	return false
}

// QuestionResult 单题判分结果，未作答的题目同样出现在结果中。
type QuestionResult struct {
	QuestionID    uint     `json:"questionId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	IsAttempted   bool     `json:"isAttempted"`
	NegativeMarks float64  `json:"negativeMarks"`
}

// Result 一次提交的完整判分结果。
type Result struct {
	Score           float64          `json:"score"` // 最终得分 = max(0, 得分-扣分)
	Correct         int              `json:"correct"`
	Total           int              `json:"total"`
	Attempted       int              `json:"attempted"`
	ObtainedMarks   float64          `json:"obtainedMarks"`
	NegativeMarks   float64          `json:"negativeMarks"`
	TotalMaxMarks   float64          `json:"totalMaxMarks"`
	Percentage      int              `json:"percentage"`
	QuestionResults []QuestionResult `json:"questionResults"`
}

// Evaluate 对一个用户在一场比赛内的最终答案进行判分。
// answers 以题目 ID 为键，缺失的键视为未作答。
func Evaluate(questions []Question, cfg Config, answers map[uint]string) Result {
	ratio := cfg.EffectiveRatio()

	res := Result{
		Total:           len(questions),
		QuestionResults: make([]QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		weight := q.Weight()
		res.TotalMaxMarks += weight

		answer := answers[q.ID]
		attempted := HasAnswered(answer)
		correct := attempted && IsCorrect(q, answer)

		var negative float64
		if attempted {
			res.Attempted++
			if correct {
				res.Correct++
				res.ObtainedMarks += weight
			} else if cfg.NegativeMarking {
				negative = ratio * weight
				res.NegativeMarks += negative
			}
		}

		userAnswer := ""
		if attempted {
			userAnswer = answer
		}

		res.QuestionResults = append(res.QuestionResults, QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Text,
			Options:       q.Options,
			UserAnswer:    userAnswer,
			CorrectAnswer: strings.Join(q.CorrectAnswers, ", "),
			IsCorrect:     correct,
			IsAttempted:   attempted,
			NegativeMarks: negative,
		})
	}

	res.Score = res.ObtainedMarks - res.NegativeMarks
	if res.Score < 0 {
		res.Score = 0
	}
	if res.TotalMaxMarks > 0 {
		res.Percentage = int(math.Round(res.Score / res.TotalMaxMarks * 100))
	}

	return res
}

// RatioString 将负分比例格式化为人类可读的分数。
// 在 1e-6 容差内命中 1/1..1/10 时返回 "1/d"，否则返回保留两位小数的
// 十进制字符串；零或负值返回 "0"。
func RatioString(ratio float64) string {
	if math.IsNaN(ratio) || ratio <= 0 {
		return "0"
	}
	for d := 1; d <= 10; d++ {
		if math.Abs(1/float64(d)-ratio) < 1e-6 {
			return "1/" + strconv.Itoa(d)
		}
	}
	return strconv.FormatFloat(math.Round(ratio*100)/100, 'f', -1, 64)
}
