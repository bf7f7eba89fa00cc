package inventory

import "pharmadesk/internal/model"

// Summarize 汇总总数及三类临期/过期数量
func Summarize(records []model.InventoryRecord) model.Summary {
	s := model.Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.ExpiryStatusExpired:
			s.Expired++
		case model.ExpiryStatusExpiringUnder30Days:
			s.ExpiringUnder30Days++
		case model.ExpiryStatusExpiringUnder90Days:
			s.ExpiringUnder90Days++
		}
	}
	return s
}
