// Package expiry 效期分级：剩余天数 → 五类状态
package expiry

import (
	"time"

	"pharmadesk/internal/model"
)

// band 区间上界（含）及对应状态
type band struct {
	maxDays int
	status  model.ExpiryStatus
}

// bands 按上界升序排列，超过最后一个上界即为 OK
var bands = []band{
	{maxDays: -1, status: model.ExpiryStatusExpired},
	{maxDays: 30, status: model.ExpiryStatusExpiringUnder30Days},
	{maxDays: 90, status: model.ExpiryStatusExpiringUnder90Days},
}

// Classify 根据剩余天数分级；nil 表示没有效期
func Classify(daysLeft *int) model.ExpiryStatus {
	if daysLeft == nil {
		return model.ExpiryStatusNoExpiryDate
	}
	for _, b := range bands {
		if *daysLeft <= b.maxDays {
			return b.status
		}
	}
	return model.ExpiryStatusOK
}

// DaysLeft 计算剩余整天数（可为负）；expiry 为 nil 时返回 nil
// 两个时间都只取年月日参与计算
func DaysLeft(expiry *time.Time, reference time.Time) *int {
	if expiry == nil {
		return nil
	}
	// 用天序号相减，time.Sub 在约 292 年外会饱和
	d := int(dayNumber(*expiry) - dayNumber(reference))
	return &d
}

// Evaluate 计算剩余天数和状态
func Evaluate(expiry *time.Time, reference time.Time) (*int, model.ExpiryStatus) {
	days := DaysLeft(expiry, reference)
	return days, Classify(days)
}

// dayNumber 自 1970-01-01 起的天序号
func dayNumber(t time.Time) int64 {
	return Day(t).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// Day 截断到当天零点（UTC 表示，保留原时区的年月日）
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
