package scoring

import (
	"sort"
	"time"
)

// LeaderboardEntry 排行榜单行，Rank 由 Rank 函数在排序后填充。
type LeaderboardEntry struct {
	Rank           int        `json:"rank"`
	UserID         uint       `json:"userId"`
	UserName       string     `json:"userName"`
	UserEmail      string     `json:"userEmail"`
	Correct        int        `json:"correct"`
	FinalScore     float64    `json:"finalScore"`
	NegativeMarks  float64    `json:"negativeMarks"`
	Attempted      int        `json:"attempted"`
	TotalQuestions int        `json:"totalQuestions"`
	Percentage     float64    `json:"percentage"`
	Accuracy       float64    `json:"accuracy"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	TimeTaken      int        `json:"timeTaken"`
}

// compareScore 排序依据：开启负分按最终得分，否则按原始正确数。
func compareScore(e LeaderboardEntry, negativeMarking bool) float64 {
	if negativeMarking {
		return e.FinalScore
	}
	return float64(e.Correct)
}

// Rank 就地排序并填充名次。得分降序；同分按提交时间升序（先交在前）；
// 任一方缺少提交时间则保持原相对顺序。名次为 1 起的连续序号，同分
// 不共享名次。
func Rank(entries []LeaderboardEntry, negativeMarking bool) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		si := compareScore(entries[i], negativeMarking)
		sj := compareScore(entries[j], negativeMarking)
		if si != sj {
			return si > sj
		}
		a, b := entries[i].SubmittedAt, entries[j].SubmittedAt
		if a == nil || b == nil {
			return false
		}
		return a.Before(*b)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
