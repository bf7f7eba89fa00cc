package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pharmadesk/internal/api"
	"pharmadesk/internal/auth"
	"pharmadesk/internal/config"
	"pharmadesk/internal/logging"
	"pharmadesk/internal/parser"
	"pharmadesk/internal/service/excel"
	"pharmadesk/internal/service/inventory"
	"pharmadesk/internal/service/store"
)

//go:embed all:dist
var staticFiles embed.FS

// 上传文件在内存中缓冲的上限，超出部分落临时文件
const maxMultipartMemory = 32 << 20

// Server HTTP服务器
type Server struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	sessions *store.SessionStore
	api      *api.Handler
	http     *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *slog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ttl, err := cfg.Auth.SessionTTLDuration()
	if err != nil {
		return nil, err
	}

	verifier := auth.NewStaticVerifier(cfg.Auth.Users)
	if verifier.Count() == 0 {
		logger.Warn("no users configured, nobody can log in; add [auth.users] to config.toml")
	}

	sessions := store.NewSessionStore(ttl)
	loader := inventory.NewLoader(
		parser.NewColumnResolver(cfg.Columns.Aliases()),
		parser.NewCellParser(cfg.Expiry.DayFirst),
	)

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	router.Use(gin.Recovery(), logging.Middleware(logger))

	s := &Server{
		cfg:      cfg,
		router:   router,
		sessions: sessions,
		api:      api.NewHandler(sessions, verifier, loader, inventory.NewService(nil), excel.NewExporter()),
	}
	s.http = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() error {
	// CORS：开发模式下允许本地页面跨域调试
	if s.cfg.Server.DevMode {
		s.router.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
		})
	}

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	sub, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return fmt.Errorf("embedded assets: %w", err)
	}
	index, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		return fmt.Errorf("embedded index.html: %w", err)
	}

	// 首页
	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})

	s.router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	return nil
}

// ServeHTTP 实现 http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start 启动监听，阻塞直到服务关闭
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭；所有会话与上传的表随进程一起丢弃
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Sessions 会话存储（用于测试）
func (s *Server) Sessions() *store.SessionStore {
	return s.sessions
}
