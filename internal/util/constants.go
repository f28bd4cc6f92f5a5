package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 提交违规自动交卷阈值
const ViolationAutoSubmitThreshold = 2

// 高分通知阈值（百分比）
const HighScoreNotifyPercentage = 80
