package errors

import (
	"os"
	"strings"
)

// Color 终端颜色
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBoldRed
	ColorBoldWhite
)

// ANSI 颜色代码
var ansiCodes = map[Color]string{
	ColorReset:     "\033[0m",
	ColorRed:       "\033[31m",
	ColorGreen:     "\033[32m",
	ColorYellow:    "\033[33m",
	ColorBlue:      "\033[34m",
	ColorCyan:      "\033[36m",
	ColorBoldRed:   "\033[1;31m",
	ColorBoldWhite: "\033[1;37m",
}

// ColorMode 颜色模式（对应配置 output.color）
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Valid 是否为合法的颜色模式
func (m ColorMode) Valid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever, "":
		return true
	}
	return false
}

// Enabled 按模式决定是否输出颜色，auto 时检测 f 是否为终端
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return detectColorSupport(f)
	}
}

// detectColorSupport 检测终端是否支持颜色
func detectColorSupport(f *os.File) bool {
	// 检查 NO_COLOR 环境变量
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" {
		return false
	}

	if f != nil && isTerminal(f) {
		return true
	}

	// 检查 COLORTERM
	if os.Getenv("COLORTERM") != "" {
		return true
	}

	// 检查常见的支持颜色的终端（输出被重定向时不着色）
	if f == nil {
		for _, ct := range []string{"xterm", "screen", "vt100", "linux", "ansi", "cygwin"} {
			if strings.Contains(strings.ToLower(term), ct) {
				return true
			}
		}
	}

	return false
}

// Colorize 着色字符串
func Colorize(s string, color Color) string {
	code, ok := ansiCodes[color]
	if !ok || s == "" {
		return s
	}
	return code + s + ansiCodes[ColorReset]
}
