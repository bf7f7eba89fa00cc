package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pharmadesk/internal/config"
	"pharmadesk/internal/logging"
	"pharmadesk/internal/server"
	"pharmadesk/internal/util"
)

// NewServeCommand 启动 Web 服务
func NewServeCommand() *cobra.Command {
	var (
		port    int
		devMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return runServe(cmd.Context(), path, port, devMode)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (only used when config.toml does not set server.port)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "development mode (verbose gin, CORS, no browser)")

	return cmd
}

func runServe(ctx context.Context, path string, port int, devMode bool) error {
	fmt.Println("==========================================")
	fmt.Println("  PharmaDesk - Stock Expiry Dashboard")
	fmt.Println("==========================================")

	if path != "" {
		config.LoadEnvFiles(filepath.Dir(path))
	} else if exeDir, err := config.GetExeDir(); err == nil {
		config.LoadEnvFiles(exeDir)
	}
	config.LoadEnvFiles(".")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 命令行参数覆盖配置
	if port > 0 && !info.PortSpecified {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Server.DevMode = true
		cfg.Server.OpenBrowser = false
	}

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	if info.FileFound {
		slog.Info("config loaded", "path", info.Path)
	} else {
		slog.Info("config file not found, using defaults", "path", info.Path)
	}

	srv, err := server.NewServer(cfg, slog.Default())
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := util.LocalURL(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "dev_mode", cfg.Server.DevMode)
		errCh <- srv.Start(addr)
	}()

	// 打开浏览器
	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Println("\n正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
