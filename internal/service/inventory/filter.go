package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"pharmadesk/internal/model"
)

// Filter 按机构和品名做不区分大小写的子串过滤，两个条件同时生效（AND）
//
// 条件去除首尾空白后为空则不参与过滤；目标单元格为空的记录不会匹配非空条件。
// 返回新切片，保持原有顺序。
func Filter(records []model.InventoryRecord, mapping model.ColumnMapping, criteria model.FilterCriteria) []model.InventoryRecord {
	fold := cases.Fold()

	facility := fold.String(strings.TrimSpace(criteria.Facility))
	item := fold.String(strings.TrimSpace(criteria.Item))

	out := make([]model.InventoryRecord, 0, len(records))
	for _, r := range records {
		if !matches(fold, r.Cell(mapping.Facility), facility) {
			continue
		}
		if !matches(fold, r.Cell(mapping.Description), item) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(fold cases.Caser, value, query string) bool {
	if query == "" {
		return true
	}
	if value == "" {
		return false
	}
	return strings.Contains(fold.String(value), query)
}
