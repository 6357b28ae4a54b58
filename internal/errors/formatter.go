package errors

import (
	"fmt"
	"strings"
)

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 诊断格式化器
type Formatter struct {
	Colors     bool // 是否使用颜色
	ShowSource bool // 是否显示源代码
	ShowHints  bool // 是否显示修复建议
	TabWidth   int  // Tab 宽度
}

// NewFormatter 创建默认格式化器（不着色，由调用方按终端决定）
func NewFormatter() *Formatter {
	return &Formatter{
		ShowSource: true,
		ShowHints:  true,
		TabWidth:   4,
	}
}

// Format 格式化一条诊断
//
//	error[L0001]: expected operator here
//	 --> <input>:1:3
//	  |
//	1 | 1 2
//	  |   ^
//	 = help: ...
func (f *Formatter) Format(d *Diagnostic, sourceLines []string) string {
	var sb strings.Builder

	// 错误头: error[L0001]: 消息
	levelStr := f.colorize(d.Level.String(), f.levelColor(d.Level))
	codeStr := f.colorize(fmt.Sprintf("[%s]", d.Code), f.levelColor(d.Level))
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, f.colorize(d.Message, ColorBoldWhite)))

	// 位置: --> file:1:3
	arrow := f.colorize("-->", ColorCyan)
	location := f.colorize(fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column), ColorCyan)
	sb.WriteString(fmt.Sprintf(" %s %s\n", arrow, location))

	// 显示源代码
	if f.ShowSource && d.Line > 0 && d.Line <= len(sourceLines) {
		sb.WriteString(f.formatSourceLine(sourceLines[d.Line-1], d.Line, d.Column, d.EndColumn))
	}

	// 修复建议
	if f.ShowHints {
		for _, hint := range d.Hints {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = help:", ColorCyan), hint))
		}
	}

	return sb.String()
}

// FormatAll 格式化多条诊断，并在末尾附上数量
func (f *Formatter) FormatAll(diags []*Diagnostic, sourceLines []string) string {
	var sb strings.Builder

	for i, d := range diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Format(d, sourceLines))
	}

	if len(diags) > 1 {
		sb.WriteString("\n")
		sb.WriteString(f.colorize(fmt.Sprintf("%d errors", len(diags)), ColorRed) + "\n")
	}

	return sb.String()
}

// formatSourceLine 格式化出错行和下划线
func (f *Formatter) formatSourceLine(line string, lineNo, startCol, endCol int) string {
	var sb strings.Builder

	lineNumWidth := len(fmt.Sprintf("%d", lineNo))
	separator := f.colorize(strings.Repeat(" ", lineNumWidth)+" |", ColorBlue)
	sb.WriteString(separator + "\n")

	lineNum := f.colorize(fmt.Sprintf("%*d", lineNumWidth, lineNo), ColorBlue)
	pipe := f.colorize(" |", ColorBlue)
	sb.WriteString(fmt.Sprintf("%s%s %s\n", lineNum, pipe, f.expandTabs(line)))

	// 下划线不超过行尾（行尾失败时至少一个 ^）
	if endCol <= startCol {
		endCol = startCol + 1
	}
	if maxCol := len(line) + 2; endCol > maxCol {
		endCol = maxCol
	}
	length := endCol - startCol
	if length < 1 {
		length = 1
	}

	actualCol := f.calculateActualColumn(line, startCol)
	underline := separator + " " + strings.Repeat(" ", actualCol) +
		f.colorize(strings.Repeat("^", length), ColorRed)
	sb.WriteString(underline + "\n")

	return sb.String()
}

// expandTabs 展开 Tab 为空格
func (f *Formatter) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", f.TabWidth))
}

// calculateActualColumn 计算 col 之前的显示宽度（考虑 Tab）
func (f *Formatter) calculateActualColumn(line string, col int) int {
	actual := 0
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			actual += f.TabWidth
		} else {
			actual++
		}
	}
	return actual
}

// levelColor 获取级别对应的颜色
func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorBoldRed
	case LevelWarning:
		return ColorYellow
	case LevelNote:
		return ColorCyan
	case LevelHelp:
		return ColorGreen
	default:
		return ColorReset
	}
}

// colorize 着色字符串
func (f *Formatter) colorize(s string, color Color) string {
	if !f.Colors {
		return s
	}
	return Colorize(s, color)
}
