package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"pharmadesk/internal/model"
	"pharmadesk/internal/parser"
)

// FileName 默认配置文件名（位于可执行文件同目录）
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Auth    AuthConfig    `toml:"auth"`
	Columns ColumnsConfig `toml:"columns"`
	Expiry  ExpiryConfig  `toml:"expiry"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// AuthConfig 登录配置
// Users 为 用户名 → Argon2id 哈希，哈希用 `pharmadesk hash-password` 生成
type AuthConfig struct {
	Users      map[string]string `toml:"users"`
	SessionTTL string            `toml:"session_ttl"`
}

// ColumnsConfig 列别名配置，每个角色是若干轮别名列表
type ColumnsConfig struct {
	Facility    [][]string `toml:"facility"`
	Description [][]string `toml:"description"`
	Stock       [][]string `toml:"stock"`
	Expiry      [][]string `toml:"expiry"`
}

// ExpiryConfig 效期解析配置
type ExpiryConfig struct {
	DayFirst bool `toml:"day_first"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string            `toml:"level"`
	JSON     bool              `toml:"json"`
	File     string            `toml:"file"`
	Rotation LogRotationConfig `toml:"rotation"`
}

// LogRotationConfig 日志文件轮转
type LogRotationConfig struct {
	MaxSize    int  `toml:"max_size"` // MB
	MaxBackups int  `toml:"max_backups"`
	MaxAge     int  `toml:"max_age"` // 天
	Compress   bool `toml:"compress"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	aliases := parser.DefaultColumnAliases()
	passes := func(role model.Role) [][]string {
		ra, _ := aliases.For(role)
		return ra.Passes
	}

	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Auth: AuthConfig{
			Users:      map[string]string{},
			SessionTTL: "12h",
		},
		Columns: ColumnsConfig{
			Facility:    passes(model.RoleFacility),
			Description: passes(model.RoleDescription),
			Stock:       passes(model.RoleStock),
			Expiry:      passes(model.RoleExpiry),
		},
		Log: LogConfig{
			Level: "info",
			Rotation: LogRotationConfig{
				MaxSize:    20,
				MaxBackups: 5,
				MaxAge:     30,
			},
		},
	}
}

// Aliases 转换为列解析器使用的别名配置
func (c ColumnsConfig) Aliases() parser.ColumnAliases {
	return parser.ColumnAliases{
		{Role: model.RoleFacility, Passes: c.Facility},
		{Role: model.RoleDescription, Passes: c.Description},
		{Role: model.RoleStock, Passes: c.Stock},
		{Role: model.RoleExpiry, Passes: c.Expiry},
	}
}

// SessionTTLDuration 会话有效期
func (c AuthConfig) SessionTTLDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid auth.session_ttl %q: %w", c.SessionTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("auth.session_ttl must be positive, got %q", c.SessionTTL)
	}
	return d, nil
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if _, err := c.Auth.SessionTTLDuration(); err != nil {
		errs = append(errs, err)
	}
	for _, ra := range c.Columns.Aliases() {
		n := 0
		for _, pass := range ra.Passes {
			n += len(pass)
		}
		if n == 0 {
			errs = append(errs, fmt.Errorf("columns: no aliases configured for %s", ra.Role))
		}
	}
	return errors.Join(errs...)
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 默认配置文件路径
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadEnvFiles 加载 dir 下的 .env / .env.local，已存在的环境变量不会被覆盖
func LoadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Load(filepath.Join(dir, name))
	}
}

// LoadConfigWithInfo 从 path（为空时使用默认路径）加载配置并返回元信息
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// 环境变量覆盖
	if v := os.Getenv("PHARMADESK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, info, fmt.Errorf("invalid PHARMADESK_PORT %q: %w", v, err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv("PHARMADESK_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("PHARMADESK_LOG_FILE"); v != "" {
		config.Log.File = v
	}

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// SaveConfig 保存配置到 path
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// 先写临时文件再改名，避免写一半的配置
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
