package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/model"
	"pharmadesk/internal/parser"
	"pharmadesk/internal/service/excel"
)

// UploadResponse 上传成功响应
type UploadResponse struct {
	ID         string              `json:"id"`
	FileName   string              `json:"fileName"`
	Headers    []string            `json:"headers"`
	Mapping    model.ColumnMapping `json:"mapping"`
	RowCount   int                 `json:"rowCount"`
	UploadedAt time.Time           `json:"uploadedAt"`
}

// Upload 上传库存表，替换当前会话的表
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	sess := currentSession(c)

	if c.Request.ContentLength > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	// 未声明长度（分块传输）时由 MaxBytesReader 在读取中截断
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer f.Close()

	raw, err := excel.ReadTable(f, fh.Filename)
	if err != nil {
		slog.Warn("upload rejected", "username", sess.Username, "file", fh.Filename, "error", err)
		if !h.setTable(c, sess, nil) {
			return
		}
		msg := "cannot read file: " + err.Error()
		if errors.Is(err, excel.ErrUnsupportedFormat) {
			msg = "unsupported file type, upload .xlsx or .csv"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	table, err := h.loader.Load(fh.Filename, raw)
	if err != nil {
		slog.Warn("upload rejected", "username", sess.Username, "file", fh.Filename, "error", err)
		if !h.setTable(c, sess, nil) {
			return
		}
		var missing *parser.MissingColumnsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   missing.Error(),
				"missing": missing.Roles,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.setTable(c, sess, table) {
		return
	}
	slog.Info("upload accepted",
		"username", sess.Username,
		"file", table.FileName,
		"rows", len(table.Records),
		"facility_column", table.Mapping.Facility,
	)

	c.JSON(http.StatusOK, UploadResponse{
		ID:         table.ID,
		FileName:   table.FileName,
		Headers:    table.Headers,
		Mapping:    table.Mapping,
		RowCount:   len(table.Records),
		UploadedAt: table.UploadedAt,
	})
}
