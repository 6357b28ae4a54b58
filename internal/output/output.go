// Package output 以文本或 JSON 输出 Token 序列和批量分析结果
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/tangzhangming/exprlex/internal/batch"
	diag "github.com/tangzhangming/exprlex/internal/errors"
	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/token"
)

// jsonToken JSON 输出中的 Token
type jsonToken struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
}

// jsonError JSON 输出中的错误
type jsonError struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Context string `json:"context"`
}

// jsonLine JSON 输出中的一行
type jsonLine struct {
	Line       int         `json:"line"`
	Expression string      `json:"expression"`
	Tokens     []jsonToken `json:"tokens,omitempty"`
	Error      *jsonError  `json:"error,omitempty"`
}

func toJSONTokens(tokens []token.Token) []jsonToken {
	out := make([]jsonToken, len(tokens))
	for i, tok := range tokens {
		out[i] = jsonToken{Kind: tok.Kind.String(), Value: tok.Value, Offset: tok.Offset}
	}
	return out
}

func toJSONError(err *lexer.Error) *jsonError {
	if err == nil {
		return nil
	}
	return &jsonError{
		Kind:    err.Kind.String(),
		Code:    err.Code(),
		Message: err.Message,
		Offset:  err.Offset,
		Context: err.Context,
	}
}

// WriteTokens 输出一个表达式的 Token 序列
//
// text 格式每行一个 kind("value")；json 格式是一个数组。
func WriteTokens(w io.Writer, tokens []token.Token, format string) error {
	if format == "json" {
		return writeJSON(w, toJSONTokens(tokens))
	}

	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "  %s\n", tok); err != nil {
			return err
		}
	}
	return nil
}

// WriteResults 输出批量分析结果
//
// text 格式只输出成功的行（失败的行由诊断报告器负责）；json 格式输出全部行。
func WriteResults(w io.Writer, results []batch.Result, format string) error {
	if format == "json" {
		lines := make([]jsonLine, len(results))
		for i, r := range results {
			lines[i] = jsonLine{
				Line:       r.Line,
				Expression: r.Expression,
				Tokens:     toJSONTokens(r.Tokens),
				Error:      toJSONError(r.Err),
			}
		}
		return writeJSON(w, lines)
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d: %s\n", r.Line, r.Expression); err != nil {
			return err
		}
		if err := WriteTokens(w, r.Tokens, format); err != nil {
			return err
		}
	}
	return nil
}

// WriteError 用诊断格式化器输出单个词法错误
//
// source 是完整的输入，filename 用于 --> 行；f 为 nil 时使用不带颜色的默认格式化器。
func WriteError(w io.Writer, err *lexer.Error, source, filename string, operators []string, f *diag.Formatter) error {
	if f == nil {
		f = diag.NewFormatter()
	}
	d := diag.FromLexerError(err, source, 0, filename, operators)
	_, werr := io.WriteString(w, f.Format(d, strings.Split(source, "\n")))
	return werr
}

// WriteErrorJSON 以 JSON 输出单个词法错误
func WriteErrorJSON(w io.Writer, err *lexer.Error) error {
	return writeJSON(w, map[string]*jsonError{"error": toJSONError(err)})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
