package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 环境变量名
const (
	// EnvLevel 日志级别，格式: 子系统=级别,子系统=级别,默认级别
	EnvLevel = "DEFAULTS_LOG_LEVEL"
	// EnvFormat 输出格式: text 或 json
	EnvFormat = "DEFAULTS_LOG_FORMAT"
	// EnvAddSource 是否输出源码位置
	EnvAddSource = "DEFAULTS_LOG_ADD_SOURCE"
)

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// SubsystemLevels 各子系统的日志级别
	SubsystemLevels map[string]slog.Level

	// JSON 是否输出 JSON 格式
	JSON bool

	// AddSource 是否添加源码位置
	AddSource bool
}

// LevelFor 获取指定子系统的日志级别
func (c *Config) LevelFor(subsystem string) slog.Level {
	if level, ok := c.SubsystemLevels[subsystem]; ok {
		return level
	}
	return c.DefaultLevel
}

var (
	envConfig     *Config
	envConfigOnce sync.Once
)

// ConfigFromEnv 从环境变量解析配置（进程内只解析一次）
func ConfigFromEnv() *Config {
	envConfigOnce.Do(func() {
		envConfig = ParseConfig(os.Getenv(EnvLevel), os.Getenv(EnvFormat), os.Getenv(EnvAddSource))
	})
	return envConfig
}

// ParseConfig 根据三个环境变量的取值构建配置
//
// 装配器是库代码，默认级别为 Info，避免在调用方进程中输出调试噪声。
func ParseConfig(level, format, addSource string) *Config {
	cfg := &Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[string]slog.Level),
	}

	for _, part := range strings.Split(level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if subsystem, name, ok := strings.Cut(part, "="); ok {
			if lvl, ok := parseLevel(name); ok {
				cfg.SubsystemLevels[strings.TrimSpace(subsystem)] = lvl
			}
			continue
		}
		if lvl, ok := parseLevel(part); ok {
			cfg.DefaultLevel = lvl
		}
	}

	cfg.JSON = strings.EqualFold(strings.TrimSpace(format), "json")
	cfg.AddSource = addSource == "true" || addSource == "1"

	return cfg
}

// parseLevel 解析日志级别名称
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
