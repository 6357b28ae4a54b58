package lexer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tangzhangming/exprlex/internal/i18n"
	"github.com/tangzhangming/exprlex/internal/matcher"
	"github.com/tangzhangming/exprlex/internal/token"
)

// ============================================================================
// Lexer - 表达式词法分析器
// ============================================================================
//
// 表达式必须严格按照 字面量 (运算符 字面量)* 交替出现，开头允许一个
// 一元风格的运算符。运算符按调用方给出的顺序逐个尝试，取第一个匹配的，
// 而不是最长的那个，所以 "<<" 必须排在 "<" 前面。
//
// 词法分析在 New 中一次性完成；之后 Lexer 只读。一个实例只对应一个表达式，
// 不能在多个 goroutine 之间共享修改。
//
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	expression string        // 表达式文本
	operators  []string      // 运算符表（顺序有意义）
	offset     int           // 当前扫描位置（字节偏移）
	tokens     []token.Token // 已扫描的 Token 列表

	opts options
}

// New 创建词法分析器并立即完成分析
//
// 失败时同时返回 Lexer 和 *Error；此时 Tokens() 中是出错前已经扫描到的 Token。
func New(expression string, operators []string, opts ...Option) (*Lexer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	l := &Lexer{
		expression: expression,
		operators:  append([]string(nil), operators...),
		tokens:     make([]token.Token, 0, len(expression)/2+1),
		opts:       o,
	}

	if err := l.run(); err != nil {
		return l, err
	}
	return l, nil
}

// Tokenize 对表达式做词法分析，失败时不返回部分结果
func Tokenize(expression string, operators []string, opts ...Option) ([]token.Token, error) {
	l, err := New(expression, operators, opts...)
	if err != nil {
		return nil, err
	}
	return l.tokens, nil
}

// Tokens 返回 Token 序列的副本
func (l *Lexer) Tokens() []token.Token {
	return append([]token.Token(nil), l.tokens...)
}

// Offset 当前扫描位置
func (l *Lexer) Offset() int {
	return l.offset
}

// Expression 返回原始表达式
func (l *Lexer) Expression() string {
	return l.expression
}

// Operators 返回运算符表的副本
func (l *Lexer) Operators() []string {
	return append([]string(nil), l.operators...)
}

// ============================================================================
// 核心算法
// ============================================================================

// run 开头项 + 主循环
func (l *Lexer) run() error {
	ok, err := l.readNumber()
	if err != nil {
		return err
	}

	if !ok {
		hadOperator := l.readOperator()
		lit, err := l.readLiteral()
		if err != nil {
			return err
		}
		if !lit && !l.opts.deferLeading && (hadOperator || l.hasMoreTokens()) {
			return l.fail(ExpectedLiteral)
		}
	}

	for l.hasMoreTokens() {
		if !l.readOperator() {
			return l.fail(ExpectedOperator)
		}

		lit, err := l.readLiteral()
		if err != nil {
			return err
		}
		if !lit {
			return l.fail(ExpectedLiteral)
		}
	}

	return nil
}

// readLiteral 依次尝试标识符、数字、字符串
func (l *Lexer) readLiteral() (bool, error) {
	if l.readIdentifier() {
		return true, nil
	}

	ok, err := l.readNumber()
	if ok || err != nil {
		return ok, err
	}

	return l.readString(), nil
}

// readOperator 按运算符表顺序取第一个出现在当前位置的运算符
func (l *Lexer) readOperator() bool {
	l.skipWhitespace()
	for _, op := range l.operators {
		if op == "" {
			continue
		}
		if matcher.HasPrefixAt(l.expression, op, l.offset) {
			l.add(token.Operator, op, len(op))
			return true
		}
	}
	return false
}

// readNumber 读取数字；数字后紧跟字母或数字时报 InvalidNumberSuffix
func (l *Lexer) readNumber() (bool, error) {
	l.skipWhitespace()
	num, ok := matcher.Number.Match(l.expression, l.offset)
	if !ok || num == "" {
		return false, nil
	}

	l.add(token.Number, num, len(num))

	if _, bad := matcher.Alnum.Match(l.expression, l.offset); bad {
		return true, l.fail(InvalidNumberSuffix)
	}
	return true, nil
}

// readIdentifier 读取标识符
func (l *Lexer) readIdentifier() bool {
	l.skipWhitespace()
	ident, ok := matcher.Identifier.Match(l.expression, l.offset)
	if !ok || ident == "" {
		return false
	}

	l.add(token.Identifier, ident, len(ident))
	return true
}

// readString 读取单引号或双引号字符串
//
// 只处理与外层引号相同的转义引号（\' 或 \"），其它反斜杠原样保留。
func (l *Lexer) readString() bool {
	l.skipWhitespace()

	lexeme, ok := matcher.SingleQuoted.Match(l.expression, l.offset)
	if !ok {
		lexeme, ok = matcher.DoubleQuoted.Match(l.expression, l.offset)
	}
	if !ok {
		return false
	}

	quote := lexeme[:1]
	value := strings.ReplaceAll(lexeme[1:len(lexeme)-1], `\`+quote, quote)
	l.add(token.String, value, len(lexeme))
	return true
}

// ============================================================================
// 辅助方法
// ============================================================================

// add 追加 Token 并前进 width 个字节
func (l *Lexer) add(kind token.Kind, value string, width int) {
	tok := token.New(kind, value, l.offset)
	l.tokens = append(l.tokens, tok)
	l.offset += width

	l.opts.logger.Debug("token",
		zap.Stringer("kind", kind),
		zap.String("value", value),
		zap.Int("offset", tok.Offset),
	)
}

// fail 在当前位置构造诊断
func (l *Lexer) fail(kind ErrorKind) *Error {
	end := l.offset + l.opts.contextWidth
	if end > len(l.expression) {
		end = len(l.expression)
	}

	err := &Error{
		Kind:    kind,
		Message: i18n.TIn(l.opts.lang, kind.MessageID()),
		Offset:  l.offset,
		Context: l.expression[l.offset:end],
	}

	l.opts.logger.Debug("lexer failed",
		zap.Stringer("kind", kind),
		zap.Int("offset", err.Offset),
		zap.String("context", err.Context),
	)
	return err
}

// hasMoreTokens 跳过空白后是否还有输入
func (l *Lexer) hasMoreTokens() bool {
	l.skipWhitespace()
	return !l.isAtEnd()
}

func (l *Lexer) isAtEnd() bool {
	return l.offset >= len(l.expression)
}

// skipWhitespace 跳过空格、制表符和换行
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.expression[l.offset] {
		case ' ', '\n', '\t', '\r':
			l.offset++
		default:
			return
		}
	}
}
