package lexer

import (
	"fmt"

	"github.com/tangzhangming/exprlex/internal/i18n"
)

// ============================================================================
// 词法错误
// ============================================================================

// ErrorKind 词法错误类型
//
// ErrorKind 本身实现了 error 接口，可以配合 errors.Is 使用：
//
//	if errors.Is(err, lexer.ExpectedOperator) { ... }
type ErrorKind int

const (
	ExpectedOperator    ErrorKind = iota + 1 // 需要运算符但运算符表中没有匹配项
	ExpectedLiteral                          // 需要字面量（标识符、数字、字符串）
	InvalidNumberSuffix                      // 数字后面紧跟字母或数字
)

var errorKindInfo = map[ErrorKind]struct {
	name  string
	code  string
	msgID string
}{
	ExpectedOperator:    {"ExpectedOperator", "L0001", i18n.ErrExpectedOperator},
	ExpectedLiteral:     {"ExpectedLiteral", "L0002", i18n.ErrExpectedLiteral},
	InvalidNumberSuffix: {"InvalidNumberSuffix", "L0003", i18n.ErrInvalidNumberSuffix},
}

func (k ErrorKind) String() string {
	if info, ok := errorKindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error 实现 error 接口
func (k ErrorKind) Error() string {
	return k.String()
}

// Code 诊断码（L0001 起）
func (k ErrorKind) Code() string {
	if info, ok := errorKindInfo[k]; ok {
		return info.code
	}
	return "L0000"
}

// MessageID i18n 消息 ID
func (k ErrorKind) MessageID() string {
	return errorKindInfo[k].msgID
}

// Error 词法分析诊断
//
// Context 是从 Offset 开始、最多 30 个字节（可配置）的输入片段，不会越过输入末尾。
type Error struct {
	Kind    ErrorKind // 错误类型
	Message string    // 可读的错误信息
	Offset  int       // 出错位置（字节偏移）
	Context string    // 上下文片段
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at '%s...' (offset: %d)", e.Message, e.Context, e.Offset)
}

// Is 支持 errors.Is(err, ExpectedOperator) 这类按类型判断
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Code 诊断码
func (e *Error) Code() string {
	return e.Kind.Code()
}
