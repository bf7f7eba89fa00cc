package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/model"
)

// 会话状态
const (
	StateLoggedOut  = "logged_out"
	StateNoFile     = "no_file"
	StateFileLoaded = "file_loaded"
)

// StatusResponse 会话状态响应
type StatusResponse struct {
	LoggedIn bool                 `json:"loggedIn"`
	Username string               `json:"username,omitempty"`
	State    string               `json:"state"`
	FileName string               `json:"fileName,omitempty"`
	RowCount int                  `json:"rowCount"`
	Mapping  *model.ColumnMapping `json:"mapping,omitempty"`
}

// GetStatus 获取当前会话状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		c.JSON(http.StatusOK, StatusResponse{State: StateLoggedOut})
		return
	}

	resp := StatusResponse{
		LoggedIn: true,
		Username: sess.Username,
		State:    StateNoFile,
	}
	if t := sess.Table; t != nil {
		mapping := t.Mapping
		resp.State = StateFileLoaded
		resp.FileName = t.FileName
		resp.RowCount = len(t.Records)
		resp.Mapping = &mapping
	}
	c.JSON(http.StatusOK, resp)
}
