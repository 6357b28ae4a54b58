// Package errors 把词法错误转换成带位置和修复建议的诊断，并负责终端输出
package errors

import (
	"strings"

	"github.com/tangzhangming/exprlex/internal/lexer"
)

// ============================================================================
// 错误级别
// ============================================================================

// Level 诊断级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
	LevelHelp                 // 帮助
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// 诊断
// ============================================================================

// Diagnostic 一条可显示的诊断
type Diagnostic struct {
	Code      string   // 诊断码 (L0001)
	Level     Level    // 级别
	Message   string   // 主消息
	File      string   // 文件名，标准输入或 -e 时为 <input>
	Line      int      // 行号（1-based）
	Column    int      // 列号（1-based，按字节）
	EndColumn int      // 结束列（不含）
	Offset    int      // 在整个源文本中的字节偏移
	Context   string   // 词法分析器给出的上下文片段
	Hints     []string // 修复建议
}

// Position 计算 offset 所在的行列（都从 1 开始）
func Position(source string, offset int) (line, column int) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	before := source[:offset]
	line = strings.Count(before, "\n") + 1
	column = offset - (strings.LastIndexByte(before, '\n') + 1) + 1
	return line, column
}

// FromLexerError 根据词法错误生成诊断
//
// source 是完整的源文本，base 是该表达式在 source 中的起始偏移（逐行分析时不为 0）。
func FromLexerError(err *lexer.Error, source string, base int, file string, operators []string) *Diagnostic {
	offset := base + err.Offset
	line, col := Position(source, offset)

	width := len(err.Context)
	if nl := strings.IndexByte(err.Context, '\n'); nl >= 0 {
		width = nl
	}
	if width == 0 {
		width = 1
	}

	return &Diagnostic{
		Code:      err.Code(),
		Level:     LevelError,
		Message:   err.Message,
		File:      file,
		Line:      line,
		Column:    col,
		EndColumn: col + width,
		Offset:    offset,
		Context:   err.Context,
		Hints:     Suggestions(err, source[base:], operators),
	}
}
