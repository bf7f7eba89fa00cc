package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/auth"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login 登录，成功后下发会话 cookie
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login request"})
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		slog.Warn("login failed", "username", req.Username, "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	// 已有会话先作废，避免会话固定
	if sess, ok := h.lookupSession(c); ok {
		h.sessions.Delete(sess.ID)
	}

	sess := h.sessions.Create(req.Username)
	setSessionCookie(c, sess.ID, 0)
	slog.Info("login succeeded", "username", sess.Username, "ip", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"username": sess.Username})
}

// Logout 登出，丢弃会话及其上传的表
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	sess := currentSession(c)
	h.sessions.Delete(sess.ID)
	setSessionCookie(c, "", -1)
	slog.Info("logout", "username", sess.Username)

	c.Status(http.StatusNoContent)
}
