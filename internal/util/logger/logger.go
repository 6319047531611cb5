// Package logger 提供按子系统划分的结构化日志
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（DEFAULTS_LOG_LEVEL, DEFAULTS_LOG_FORMAT, DEFAULTS_LOG_ADD_SOURCE）
//   - 运行时调整级别与输出目标
//
// 使用示例:
//
//	var logger = logger.Logger("assembler")
//
//	logger.Debug("configuration assembled", "env", env, "services", len(services))
//
// 环境变量配置:
//
//	# 所有子系统 info，assembler 子系统 debug
//	DEFAULTS_LOG_LEVEL=assembler=debug,info
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	loggers  sync.Map // map[string]*slog.Logger
	handlers sync.Map // map[string]*levelHandler
)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回同一个实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	h := newHandler(subsystem, ConfigFromEnv())
	actual, loaded := loggers.LoadOrStore(subsystem, slog.New(h))
	if !loaded {
		handlers.Store(subsystem, h)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*levelHandler).level.Set(level)
	}
}

// SetOutput 设置全局日志输出目标，对已创建的 Logger 同样生效
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}
