package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/model"
	"pharmadesk/internal/service/store"
)

// SessionCookie 会话 cookie 名称
const SessionCookie = "pharmadesk_session"

const sessionKey = "pharmadesk.session"

// requireSession 校验会话 cookie，未登录返回 401
func (h *Handler) requireSession(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.Set(sessionKey, sess)
	c.Next()
}

// lookupSession 从 cookie 读取会话，不存在或过期时返回 false
func (h *Handler) lookupSession(c *gin.Context) (store.Session, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		return store.Session{}, false
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		return store.Session{}, false
	}
	return sess, true
}

func currentSession(c *gin.Context) store.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(store.Session)
	return sess
}

// setTable 替换当前会话的表，会话已失效时返回 401
func (h *Handler) setTable(c *gin.Context, sess store.Session, table *model.Table) bool {
	if err := h.sessions.SetTable(sess.ID, table); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return false
	}
	return true
}

func setSessionCookie(c *gin.Context, id string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, maxAge, "/", "", false, true)
}
