package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/auth"
	"pharmadesk/internal/service/excel"
	"pharmadesk/internal/service/inventory"
	"pharmadesk/internal/service/store"
)

// exportCacheTTL 导出结果缓存时间
const exportCacheTTL = 5 * time.Minute

// defaultMaxUploadBytes 上传请求体上限
const defaultMaxUploadBytes = 50 << 20

// Handler API 处理器
type Handler struct {
	sessions *store.SessionStore
	verifier auth.Verifier
	loader   *inventory.Loader
	service  *inventory.Service
	exporter *excel.Exporter
	exports  *exportCache

	maxUploadBytes int64
}

// NewHandler 创建 API 处理器
func NewHandler(sessions *store.SessionStore, verifier auth.Verifier, loader *inventory.Loader, service *inventory.Service, exporter *excel.Exporter) *Handler {
	return &Handler{
		sessions: sessions,
		verifier: verifier,
		loader:   loader,
		service:  service,
		exporter: exporter,
		exports:  newExportCache(exportCacheTTL),

		maxUploadBytes: defaultMaxUploadBytes,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 登录与状态（无需会话）
	router.POST("/login", h.Login)
	router.GET("/status", h.GetStatus)

	authed := router.Group("")
	authed.Use(h.requireSession)
	{
		authed.POST("/logout", h.Logout)

		// 上传库存表
		authed.POST("/upload", h.Upload)

		// 看板数据
		authed.GET("/dashboard", h.Dashboard)

		// 导出过滤结果
		authed.GET("/export", h.Export)
	}
}
