// Package formatter 把 Token 序列重新输出为规范格式的表达式
//
// 输出再次做词法分析必须得到相同的 Token 序列；紧凑输出做不到时退回到每个 Token
// 之间一个空格的写法。
package formatter

import (
	"errors"

	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/token"
)

// ErrNotReproducible 格式化结果无法重新得到原来的 Token 序列
var ErrNotReproducible = errors.New("formatted expression does not reproduce the original tokens")

// Formatter 表达式格式化器
type Formatter struct {
	options   *Options
	operators []string
	lexOpts   []lexer.Option
}

// New 创建格式化器，operators 和 lexOpts 用于分析输入和校验输出
func New(operators []string, options *Options, lexOpts ...lexer.Option) *Formatter {
	if options == nil {
		options = DefaultOptions()
	}
	return &Formatter{
		options:   options,
		operators: operators,
		lexOpts:   lexOpts,
	}
}

// FormatSource 分析并格式化表达式。词法错误原样返回（*lexer.Error）
func (f *Formatter) FormatSource(source string) (string, error) {
	tokens, err := lexer.Tokenize(source, f.operators, f.lexOpts...)
	if err != nil {
		return "", err
	}
	return f.Format(tokens)
}

// Format 格式化 Token 序列
func (f *Formatter) Format(tokens []token.Token) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}

	formatted := NewPrinter(f.options).Print(tokens)
	if f.reproduces(formatted, tokens) {
		return formatted, nil
	}

	spaced := NewPrinter(f.options).PrintSpaced(tokens)
	if f.reproduces(spaced, tokens) {
		return spaced, nil
	}
	return "", ErrNotReproducible
}

func (f *Formatter) reproduces(source string, want []token.Token) bool {
	got, err := lexer.Tokenize(source, f.operators, f.lexOpts...)
	if err != nil || len(got) != len(want) {
		return false
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return false
		}
	}
	return true
}
