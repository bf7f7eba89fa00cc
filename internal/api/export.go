package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/model"
	"pharmadesk/internal/service/excel"
	"pharmadesk/internal/service/inventory"
)

// Export 导出当前过滤结果为 xlsx
// GET /api/export?facility=&item=
func (h *Handler) Export(c *gin.Context) {
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
	key, err := exportKey(table.Headers, table.Mapping, view.Records)
	if err != nil {
		slog.Error("export failed", "username", sess.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	data, cached := h.exports.get(key)
	if !cached {
		data, err = h.exporter.Export(table.Headers, table.Mapping, view.Records)
		if err != nil {
			slog.Error("export failed", "username", sess.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		h.exports.put(key, data)
	}
	slog.Info("export", "username", sess.Username, "rows", len(view.Records), "cached", cached)

	c.Header("Content-Disposition", buildExportContentDisposition(excel.FileName))
	c.Data(http.StatusOK, excel.ContentType, data)
}

func buildExportContentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q", fileName)
}
