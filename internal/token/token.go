package token

import "fmt"

// ============================================================================
// Token 类型定义
// ============================================================================
//
// 表达式语言只有四类 Token：
// 1. 数字（十进制、小数、十六进制、二进制）
// 2. 标识符
// 3. 运算符（由调用方提供的运算符表决定）
// 4. 字符串（单引号或双引号）
//
// ============================================================================

// Kind 表示 Token 的类型
type Kind int

const (
	Number     Kind = iota // 数字字面量
	Identifier             // 标识符
	Operator               // 运算符
	String                 // 字符串字面量
)

var kindNames = [...]string{
	Number:     "number",
	Identifier: "identifier",
	Operator:   "operator",
	String:     "string",
}

// String 返回 Kind 的显示名称
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsLiteral 是否为字面量（数字、标识符、字符串）
func (k Kind) IsLiteral() bool {
	return k == Number || k == Identifier || k == String
}

// LookupKind 根据显示名称查找 Kind
func LookupKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Token 词法单元
type Token struct {
	Kind   Kind   // Token 类型
	Value  string // 词素；字符串为去掉引号并反转义后的内容
	Offset int    // 词素在表达式中的起始字节偏移
}

// New 创建 Token
func New(kind Kind, value string, offset int) Token {
	return Token{Kind: kind, Value: value, Offset: offset}
}

// Equal 比较类型和值，不比较偏移
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Value == other.Value
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
}
