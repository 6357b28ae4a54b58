package formatter

import (
	"strings"

	"github.com/tangzhangming/exprlex/internal/token"
)

// Printer Token 打印器
type Printer struct {
	options *Options
	buf     strings.Builder
}

// NewPrinter 创建打印器
func NewPrinter(options *Options) *Printer {
	return &Printer{options: options}
}

// Print 输出 Token 序列
func (p *Printer) Print(tokens []token.Token) string {
	p.buf.Reset()
	for i, tok := range tokens {
		if i > 0 && p.needSpace(tokens[i-1], tok) {
			p.buf.WriteByte(' ')
		}
		p.write(tok)
	}
	return p.buf.String()
}

// PrintSpaced 每个 Token 之间一个空格
func (p *Printer) PrintSpaced(tokens []token.Token) string {
	p.buf.Reset()
	for i, tok := range tokens {
		if i > 0 {
			p.buf.WriteByte(' ')
		}
		p.write(tok)
	}
	return p.buf.String()
}

func (p *Printer) write(tok token.Token) {
	if tok.Kind == token.String {
		p.buf.WriteString(p.quote(tok.Value))
		return
	}
	p.buf.WriteString(tok.Value)
}

// quote 给字符串加引号，只有与外层引号相同的引号需要转义
func (p *Printer) quote(s string) string {
	q := p.options.Quote
	if q != '"' {
		q = '\''
	}
	if strings.IndexByte(s, q) >= 0 {
		other := byte('"')
		if q == '"' {
			other = '\''
		}
		if strings.IndexByte(s, other) < 0 {
			q = other
		}
	}
	quote := string(q)
	return quote + strings.ReplaceAll(s, quote, `\`+quote) + quote
}

// needSpace 两个相邻 Token 之间是否需要空格
func (p *Printer) needSpace(prev, cur token.Token) bool {
	// 单词之间（标识符、数字、and/or/not）必须分开
	if isWordEnd(prev) && isWordStart(cur) {
		return true
	}
	// +/- 后紧跟数字会被当作带符号的数字
	if prev.Kind == token.Operator && (prev.Value == "+" || prev.Value == "-") && cur.Kind == token.Number {
		return true
	}
	// . 紧贴数字会变成小数
	if (prev.Value == "." && cur.Kind == token.Number) || (prev.Kind == token.Number && cur.Value == ".") {
		return true
	}

	switch {
	case prev.Kind == token.Operator && isOpen(prev.Value),
		cur.Kind == token.Operator && isClose(cur.Value):
		return p.options.SpaceInsideParen
	case cur.Kind == token.Operator && (cur.Value == "," || cur.Value == "."):
		return false
	case prev.Kind == token.Operator && prev.Value == ".":
		return false
	case prev.Kind == token.Operator && prev.Value == ",":
		return p.options.SpaceAfterComma
	case cur.Kind == token.Operator && isOpen(cur.Value):
		// 调用和下标：f(x)、a[i]
		return false
	case prev.Kind == token.Operator && isClose(prev.Value):
		return p.options.SpaceAroundOps
	}

	if prev.Kind == token.Operator || cur.Kind == token.Operator {
		return p.options.SpaceAroundOps
	}
	return true
}

func isOpen(op string) bool  { return op == "(" || op == "[" }
func isClose(op string) bool { return op == ")" || op == "]" }

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// 字符串以引号开头和结尾，不算单词
func isWordEnd(tok token.Token) bool {
	return tok.Kind != token.String && tok.Value != "" && isWordByte(tok.Value[len(tok.Value)-1])
}

func isWordStart(tok token.Token) bool {
	return tok.Kind != token.String && tok.Value != "" && isWordByte(tok.Value[0])
}
