// Package batch 对多行文本逐行做词法分析，每个非空行是一个独立的表达式
package batch

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/token"
)

// Result 一行的分析结果
type Result struct {
	Line       int           // 行号（1-based）
	Start      int           // 该行在整个文本中的起始字节偏移
	Expression string        // 行内容（不含换行符）
	Tokens     []token.Token // 成功时的 Token 序列
	Err        *lexer.Error  // 失败时的诊断
}

// LineError 带行号的词法错误
type LineError struct {
	Line int
	Err  *lexer.Error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LexLines 逐行分析 src
//
// 空行和只有空白的行被跳过。返回的 error 用 multierr 合并了每个失败行的 *LineError，
// 全部成功时为 nil；结果切片总是包含所有非空行。
func LexLines(src string, operators []string, opts ...lexer.Option) ([]Result, error) {
	var (
		results []Result
		errs    error
		start   int
	)

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lineStart := start
		start += len(line) + 1

		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		res := Result{Line: i + 1, Start: lineStart, Expression: line}
		tokens, err := lexer.Tokenize(line, operators, opts...)
		if err != nil {
			lexErr := err.(*lexer.Error)
			res.Err = lexErr
			errs = multierr.Append(errs, &LineError{Line: i + 1, Err: lexErr})
		} else {
			res.Tokens = tokens
		}
		results = append(results, res)
	}

	return results, errs
}

// Failed 失败的行数
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
