package scoring

import (
	"math"
	"time"
)

// usable 时间戳可用：非 nil 且非零值。
func usable(t *time.Time) bool {
	return t != nil && !t.IsZero()
}

// TimeTakenMinutes 推导用时（整分钟），按优先级取第一组可用的时间戳：
//  1. 参与记录的开始时间 + 结束时间
//  2. 参与记录的开始时间 + 提交时间
//  3. 比赛开始时间 + 提交时间
//  4. 比赛开始时间 + 比赛结束时间
//  5. 都不可用时返回 0
func TimeTakenMinutes(startedAt, endTime, submittedAt *time.Time, contestStart, contestEnd time.Time) int {
	cStart := &contestStart
	cEnd := &contestEnd

	pairs := [][2]*time.Time{
		{startedAt, endTime},
		{startedAt, submittedAt},
		{cStart, submittedAt},
		{cStart, cEnd},
	}

	for _, p := range pairs {
		if usable(p[0]) && usable(p[1]) {
			return minutesBetween(*p[0], *p[1])
		}
	}
	return 0
}

func minutesBetween(a, b time.Time) int {
	ms := math.Abs(float64(b.Sub(a).Milliseconds()))
	return int(math.Round(ms / 60000))
}
