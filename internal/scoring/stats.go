package scoring

import (
	"math"
	"time"
)

// Participant 聚合所需的参与者快照（含用户展示字段）。
type Participant struct {
	UserID      uint
	UserName    string
	UserEmail   string
	StartedAt   *time.Time
	EndTime     *time.Time
	SubmittedAt *time.Time
	Violations  int
}

// Activity 一条答题活动记录。
type Activity struct {
	UserID     uint
	QuestionID uint
	Answer     string
	CreatedAt  time.Time
}

// FinalAnswers 把只追加的活动日志折叠为每个用户的最终答案：
// 同一 (用户, 题目) 取时间最新的一行，时间相同取后出现的一行。
func FinalAnswers(activities []Activity) map[uint]map[uint]string {
	final := make(map[uint]map[uint]string)
	latest := make(map[uint]map[uint]time.Time)

	for _, a := range activities {
		if final[a.UserID] == nil {
			final[a.UserID] = make(map[uint]string)
			latest[a.UserID] = make(map[uint]time.Time)
		}
		if prev, ok := latest[a.UserID][a.QuestionID]; ok && a.CreatedAt.Before(prev) {
			continue
		}
		final[a.UserID][a.QuestionID] = a.Answer
		latest[a.UserID][a.QuestionID] = a.CreatedAt
	}
	return final
}

// BuildLeaderboard 为每个参与者计算得分并排序出榜。
// 没有任何活动记录的参与者得 0 分入榜，不会被跳过。
func BuildLeaderboard(questions []Question, cfg Config, participants []Participant, activities []Activity, contestStart, contestEnd time.Time) []LeaderboardEntry {
	final := FinalAnswers(activities)

	entries := make([]LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		res := Evaluate(questions, cfg, final[p.UserID])

		accuracy := 0.0
		if res.Attempted > 0 {
			accuracy = float64(res.Correct) / float64(res.Attempted) * 100
		}
		percentage := 0.0
		if res.TotalMaxMarks > 0 {
			percentage = res.Score / res.TotalMaxMarks * 100
		}

		entries = append(entries, LeaderboardEntry{
			UserID:         p.UserID,
			UserName:       p.UserName,
			UserEmail:      p.UserEmail,
			Correct:        res.Correct,
			FinalScore:     res.Score,
			NegativeMarks:  res.NegativeMarks,
			Attempted:      res.Attempted,
			TotalQuestions: len(questions),
			Percentage:     percentage,
			Accuracy:       accuracy,
			SubmittedAt:    p.SubmittedAt,
			TimeTaken:      TimeTakenMinutes(p.StartedAt, p.EndTime, p.SubmittedAt, contestStart, contestEnd),
		})
	}

	return Rank(entries, cfg.NegativeMarking)
}

// QuestionStat 单题的全场统计。
type QuestionStat struct {
	QuestionID        uint           `json:"questionId"`
	Question          string         `json:"question"`
	TotalAttempts     int            `json:"totalAttempts"`
	CorrectAttempts   int            `json:"correctAttempts"`
	IncorrectAttempts int            `json:"incorrectAttempts"`
	NotAttempted      int            `json:"notAttempted"`
	OptionCounts      map[string]int `json:"optionCounts"`
	KeyCounts         map[string]int `json:"keyCounts,omitempty"` // 仅旧版 {a,b,c,d} 题填充
}

// ContestStats 比赛级统计。全场均值、极值和标准差统一以负分调整后的
// 最终得分为基数。
type ContestStats struct {
	TotalParticipants int            `json:"totalParticipants"`
	TotalQuestions    int            `json:"totalQuestions"`
	TotalMaxMarks     float64        `json:"totalMaxMarks"`
	Scores            []float64      `json:"scores"`
	Average           float64        `json:"average"`
	AveragePercentage float64        `json:"averagePercentage"`
	HighestScore      float64        `json:"highestScore"`
	LowestScore       float64        `json:"lowestScore"`
	StandardDeviation float64        `json:"standardDeviation"`
	QuestionStats     []QuestionStat `json:"questionStats"`
	MostAttempted     *QuestionStat  `json:"mostAttempted"`
	LeastAttempted    *QuestionStat  `json:"leastAttempted"`
	MostCorrect       *QuestionStat  `json:"mostCorrect"`
	MostIncorrect     *QuestionStat  `json:"mostIncorrect"`
	TimeRanges        map[string]int `json:"timeRanges"`
}

// BuildStats 汇总一场比赛的全部统计。
// 零参与者、零题目都只会产出全零结果，所有除法都有 >0 保护。
func BuildStats(questions []Question, cfg Config, participants []Participant, activities []Activity, contestStart, contestEnd time.Time) ContestStats {
	final := FinalAnswers(activities)

	stats := ContestStats{
		TotalParticipants: len(participants),
		TotalQuestions:    len(questions),
		Scores:            make([]float64, 0, len(participants)),
		QuestionStats:     make([]QuestionStat, 0, len(questions)),
		TimeRanges:        newTimeRanges(),
	}

	for _, q := range questions {
		stats.TotalMaxMarks += q.Weight()
	}

	// 逐题统计
	for _, q := range questions {
		qs := QuestionStat{
			QuestionID:   q.ID,
			Question:     q.Text,
			OptionCounts: make(map[string]int),
		}
		if q.LegacyKeyed {
			qs.KeyCounts = map[string]int{"a": 0, "b": 0, "c": 0, "d": 0, "notAttempted": 0}
		}

		for _, p := range participants {
			answer := final[p.UserID][q.ID]
			if !HasAnswered(answer) {
				qs.OptionCounts["notAttempted"]++
				if qs.KeyCounts != nil {
					qs.KeyCounts["notAttempted"]++
				}
				continue
			}
			qs.TotalAttempts++
			if IsCorrect(q, answer) {
				qs.CorrectAttempts++
			} else {
				qs.IncorrectAttempts++
			}
			qs.OptionCounts[answer]++
			if qs.KeyCounts != nil {
				if key := LegacyKey(q, answer); key != "" {
					qs.KeyCounts[key]++
				}
			}
		}

		// 推导而非直接计数，确保从未提交任何记录的用户也被计入
		qs.NotAttempted = stats.TotalParticipants - qs.TotalAttempts
		stats.QuestionStats = append(stats.QuestionStats, qs)
	}

	pickHighlights(&stats)

	// 逐人得分与用时
	for _, p := range participants {
		res := Evaluate(questions, cfg, final[p.UserID])
		stats.Scores = append(stats.Scores, res.Score)

		if p.SubmittedAt != nil {
			minutes := TimeTakenMinutes(p.StartedAt, p.EndTime, p.SubmittedAt, contestStart, contestEnd)
			stats.TimeRanges[timeRange(minutes)]++
		}
	}

	if len(stats.Scores) > 0 {
		stats.HighestScore = stats.Scores[0]
		stats.LowestScore = stats.Scores[0]
		sum := 0.0
		for _, s := range stats.Scores {
			sum += s
			if s > stats.HighestScore {
				stats.HighestScore = s
			}
			if s < stats.LowestScore {
				stats.LowestScore = s
			}
		}
		stats.Average = sum / float64(len(stats.Scores))
		stats.StandardDeviation = populationStdDev(stats.Scores, stats.Average)
		if stats.TotalMaxMarks > 0 {
			stats.AveragePercentage = stats.Average / stats.TotalMaxMarks * 100
		}
	}

	return stats
}

// pickHighlights 选出最多/最少作答和对错最多的题，并列时先出现者优先。
func pickHighlights(stats *ContestStats) {
	for i := range stats.QuestionStats {
		qs := &stats.QuestionStats[i]
		if stats.MostAttempted == nil || qs.TotalAttempts > stats.MostAttempted.TotalAttempts {
			stats.MostAttempted = qs
		}
		if stats.LeastAttempted == nil || qs.TotalAttempts < stats.LeastAttempted.TotalAttempts {
			stats.LeastAttempted = qs
		}
		if stats.MostCorrect == nil || qs.CorrectAttempts > stats.MostCorrect.CorrectAttempts {
			stats.MostCorrect = qs
		}
		if stats.MostIncorrect == nil || qs.IncorrectAttempts > stats.MostIncorrect.IncorrectAttempts {
			stats.MostIncorrect = qs
		}
	}
}

// populationStdDev 总体标准差 sqrt(mean((x-mean)^2))。
func populationStdDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func newTimeRanges() map[string]int {
	return map[string]int{
		"0-30 min":  0,
		"31-60 min": 0,
		"61-90 min": 0,
		"90+ min":   0,
	}
}

func timeRange(minutes int) string {
	switch {
	case minutes <= 30:
		return "0-30 min"
	case minutes <= 60:
		return "31-60 min"
	case minutes <= 90:
		return "61-90 min"
	default:
		return "90+ min"
	}
}
