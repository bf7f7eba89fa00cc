package inventory

import (
	"strconv"
	"time"

	"pharmadesk/internal/model"
	"pharmadesk/internal/service/expiry"
)

// View 一次交互的计算结果
type View struct {
	Reference time.Time               `json:"reference"`
	Summary   model.Summary           `json:"summary"`
	Records   []model.InventoryRecord `json:"records"`
	Expiring  []model.InventoryRecord `json:"expiring"`
}

// Service 每次交互按当天重新计算效期并过滤
type Service struct {
	now func() time.Time
}

// NewService 创建服务；now 为 nil 时使用 time.Now
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Today 当天零点
func (s *Service) Today() time.Time {
	return expiry.Day(s.now())
}

// Build 计算 table 在 criteria 下的视图；table 本身不会被修改
func (s *Service) Build(table *model.Table, criteria model.FilterCriteria) (*View, error) {
	if table == nil {
		return nil, ErrNoTable
	}

	today := s.Today()
	evaluated := Evaluate(table.Records, today)
	filtered := Filter(evaluated, table.Mapping, criteria)

	return &View{
		Reference: today,
		Summary:   Summarize(filtered),
		Records:   filtered,
		Expiring:  ExpiringSoon(filtered),
	}, nil
}

// DisplayCells 展示用单元格：库存与效期列替换为规范化后的值
func DisplayCells(r model.InventoryRecord, mapping model.ColumnMapping) map[string]string {
	out := make(map[string]string, len(r.Cells))
	for k, v := range r.Cells {
		out[k] = v
	}
	out[mapping.Stock] = strconv.FormatFloat(r.Stock, 'f', -1, 64)
	if r.Expiry != nil {
		out[mapping.Expiry] = r.Expiry.Format("2006-01-02")
	} else {
		out[mapping.Expiry] = ""
	}
	return out
}
