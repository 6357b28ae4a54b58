// Package logging 构建各个命令共用的 zap 日志记录器
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv 设置为 1/true/on 时启用调试日志
const DebugEnv = "EXPRLEX_DEBUG"

// Options 日志选项
type Options struct {
	Debug bool   // 调试级别，使用开发格式
	File  string // 日志文件路径，为空时输出到 stderr
}

// DebugFromEnv 检查环境变量是否要求调试日志
func DebugFromEnv() bool {
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "1", "true", "on":
		return true
	}
	return false
}

// New 创建日志记录器
//
// 调试模式使用 console 编码和 debug 级别，否则使用 JSON 编码和 info 级别。
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Debug || DebugFromEnv() {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Nop 不输出任何内容的日志记录器
func Nop() *zap.Logger {
	return zap.NewNop()
}
