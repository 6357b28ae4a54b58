package errors

import (
	"fmt"
	"io"
	"strings"
)

// ============================================================================
// 诊断报告器
// ============================================================================

// Reporter 把诊断写到输出流，并缓存源文本以便显示出错行
type Reporter struct {
	formatter *Formatter
	out       io.Writer
	sources   map[string][]string // 文件名 -> 源代码行
	errors    int
}

// NewReporter 创建报告器
func NewReporter(out io.Writer, formatter *Formatter) *Reporter {
	if formatter == nil {
		formatter = NewFormatter()
	}
	return &Reporter{
		formatter: formatter,
		out:       out,
		sources:   make(map[string][]string),
	}
}

// SetSource 设置源代码（文件、标准输入或 -e 表达式）
func (r *Reporter) SetSource(file, content string) {
	r.sources[file] = strings.Split(content, "\n")
}

// Report 输出一条诊断
func (r *Reporter) Report(d *Diagnostic) {
	if d.Level == LevelError {
		r.errors++
	}
	fmt.Fprint(r.out, r.formatter.Format(d, r.sources[d.File]))
}

// ErrorCount 已报告的错误数量
func (r *Reporter) ErrorCount() int {
	return r.errors
}

// HasErrors 是否报告过错误
func (r *Reporter) HasErrors() bool {
	return r.errors > 0
}
