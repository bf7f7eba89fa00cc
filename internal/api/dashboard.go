package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/model"
	"pharmadesk/internal/service/inventory"
)

// RecordView 看板中的一行
type RecordView struct {
	Row         int                `json:"row"`
	Cells       map[string]string  `json:"cells"`
	DaysLeft    *int               `json:"daysLeft"`
	Status      model.ExpiryStatus `json:"status"`
	StatusLabel string             `json:"statusLabel"`
	Color       string             `json:"color,omitempty"`
}

// DashboardResponse 看板响应
type DashboardResponse struct {
	FileName  string               `json:"fileName"`
	Reference string               `json:"reference"`
	Columns   []string             `json:"columns"`
	Mapping   model.ColumnMapping  `json:"mapping"`
	Criteria  model.FilterCriteria `json:"criteria"`
	Filtered  bool                 `json:"filtered"`
	Summary   model.Summary        `json:"summary"`
	Records   []RecordView         `json:"records"`
	Expiring  []RecordView         `json:"expiring"`
}

// Dashboard 按过滤条件计算看板数据
// GET /api/dashboard?facility=&item=
func (h *Handler) Dashboard(c *gin.Context) {
	sess := currentSession(c)

	var criteria model.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}

	view, err := h.service.Build(sess.Table, criteria)
	if err != nil {
		if errors.Is(err, inventory.ErrNoTable) {
			c.JSON(http.StatusConflict, gin.H{"error": "no file uploaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	table := sess.Table
	c.JSON(http.StatusOK, DashboardResponse{
		FileName:  table.FileName,
		Reference: view.Reference.Format("2006-01-02"),
		Columns:   displayColumns(table.Headers),
		Mapping:   table.Mapping,
		Criteria:  criteria,
		Filtered:  strings.TrimSpace(criteria.Facility) != "" || strings.TrimSpace(criteria.Item) != "",
		Summary:   view.Summary,
		Records:   recordViews(view.Records, table.Mapping),
		Expiring:  recordViews(view.Expiring, table.Mapping),
	})
}

func displayColumns(headers []string) []string {
	cols := make([]string, 0, len(headers)+2)
	cols = append(cols, headers...)
	return append(cols, model.ColumnDaysLeft, model.ColumnExpiryStatus)
}

func recordViews(records []model.InventoryRecord, mapping model.ColumnMapping) []RecordView {
	out := make([]RecordView, 0, len(records))
	for _, r := range records {
		cells := inventory.DisplayCells(r, mapping)
		cells[model.ColumnDaysLeft] = ""
		if r.DaysLeft != nil {
			cells[model.ColumnDaysLeft] = strconv.Itoa(*r.DaysLeft)
		}
		cells[model.ColumnExpiryStatus] = r.Status.Label()

		out = append(out, RecordView{
			Row:         r.RowNo,
			Cells:       cells,
			DaysLeft:    r.DaysLeft,
			Status:      r.Status,
			StatusLabel: r.Status.Label(),
			Color:       r.Status.Color(),
		})
	}
	return out
}
