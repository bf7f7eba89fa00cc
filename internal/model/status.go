package model

// ExpiryStatus 效期状态（五类互斥）
type ExpiryStatus string

const (
	ExpiryStatusNoExpiryDate        ExpiryStatus = "no_expiry_date"
	ExpiryStatusExpired             ExpiryStatus = "expired"
	ExpiryStatusExpiringUnder30Days ExpiryStatus = "expiring_under_30_days"
	ExpiryStatusExpiringUnder90Days ExpiryStatus = "expiring_under_90_days"
	ExpiryStatusOK                  ExpiryStatus = "ok"
)

// AllExpiryStatuses 全部状态，按紧急程度排列
var AllExpiryStatuses = []ExpiryStatus{
	ExpiryStatusExpired,
	ExpiryStatusExpiringUnder30Days,
	ExpiryStatusExpiringUnder90Days,
	ExpiryStatusOK,
	ExpiryStatusNoExpiryDate,
}

// Label 展示文案（导出的 Expiry_Status 列也使用该文案）
func (s ExpiryStatus) Label() string {
	switch s {
	case ExpiryStatusExpired:
		return "Expired"
	case ExpiryStatusExpiringUnder30Days:
		return "⚠️ Expiring <30 days"
	case ExpiryStatusExpiringUnder90Days:
		return "🟡 Expiring <90 days"
	case ExpiryStatusOK:
		return "🟢 OK"
	default:
		return "No Expiry"
	}
}

// Color 行高亮颜色，无需高亮时返回空串
func (s ExpiryStatus) Color() string {
	switch s {
	case ExpiryStatusExpired:
		return "#ff9999"
	case ExpiryStatusExpiringUnder30Days:
		return "#ffe16b"
	case ExpiryStatusExpiringUnder90Days:
		return "#fff4b3"
	default:
		return ""
	}
}

// StatusFromLabel 根据展示文案反查状态
func StatusFromLabel(label string) (ExpiryStatus, bool) {
	for _, s := range AllExpiryStatuses {
		if s.Label() == label {
			return s, true
		}
	}
	return "", false
}
