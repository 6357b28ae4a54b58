// Package matcher 提供锚定匹配：模式只允许从给定偏移处开始匹配，
// 而不是在偏移之后的任意位置。
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// ============================================================================
// 预定义模式
// ============================================================================

var (
	// Number 数字：可选符号，然后依次尝试小数、十六进制、二进制、整数
	Number = MustCompile(`[+-]?(\d*\.\d+|\d+\.\d+|0x[0-9a-fA-F_]+|0b[01_]+|[0-9_]+)`)

	// Identifier 标识符：字母或下划线开头
	Identifier = MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)

	// Alnum 单个字母或数字（用于检测数字后缀）
	Alnum = MustCompile(`[0-9a-zA-Z]`)

	// SingleQuoted 单引号字符串，允许 \' 转义
	SingleQuoted = MustCompile(`'(\\'|[^'])*'`)

	// DoubleQuoted 双引号字符串，允许 \" 转义
	DoubleQuoted = MustCompile(`"(\\"|[^"])*"`)
)

// Pattern 锚定模式
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile 编译模式，自动在开头加上 \A 锚点
func Compile(expr string) (*Pattern, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &Pattern{source: expr, re: re}, nil
}

// MustCompile 编译模式，失败时 panic（仅用于包级变量）
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String 返回原始模式（不含锚点）
func (p *Pattern) String() string {
	return p.source
}

// Match 从 offset 处开始匹配，返回匹配到的文本
//
// offset 越界或不匹配时返回 ("", false)。
// 空匹配也算匹配成功，调用方需要自行判断是否有进展。
func (p *Pattern) Match(input string, offset int) (string, bool) {
	if offset < 0 || offset > len(input) {
		return "", false
	}
	loc := p.re.FindStringIndex(input[offset:])
	if loc == nil {
		return "", false
	}
	return input[offset : offset+loc[1]], true
}

// MatchAll 从 offset 处开始匹配，返回完整匹配和各个子匹配
func (p *Pattern) MatchAll(input string, offset int) []string {
	if offset < 0 || offset > len(input) {
		return nil
	}
	return p.re.FindStringSubmatch(input[offset:])
}

// HasPrefixAt 检查 lit 是否恰好出现在 offset 处（不使用正则）
func HasPrefixAt(input, lit string, offset int) bool {
	if offset < 0 || offset > len(input) {
		return false
	}
	return strings.HasPrefix(input[offset:], lit)
}
