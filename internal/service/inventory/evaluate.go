package inventory

import (
	"time"

	"pharmadesk/internal/model"
	"pharmadesk/internal/service/expiry"
)

// Evaluate 以 reference 当天为基准计算每行剩余天数和状态，返回新切片，不修改入参
func Evaluate(records []model.InventoryRecord, reference time.Time) []model.InventoryRecord {
	out := make([]model.InventoryRecord, len(records))
	for i, r := range records {
		r.DaysLeft, r.Status = expiry.Evaluate(r.Expiry, reference)
		out[i] = r
	}
	return out
}

// ExpiringSoon 90 天内到期（含已过期）的记录；没有效期的记录不在其中
func ExpiringSoon(records []model.InventoryRecord) []model.InventoryRecord {
	out := make([]model.InventoryRecord, 0)
	for _, r := range records {
		if r.DaysLeft != nil && *r.DaysLeft <= 90 {
			out = append(out, r)
		}
	}
	return out
}
