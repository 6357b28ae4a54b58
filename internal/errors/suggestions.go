package errors

import (
	"github.com/tangzhangming/exprlex/internal/i18n"
	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/matcher"
)

// ============================================================================
// 修复建议
// ============================================================================

// Suggestions 根据错误类型生成修复建议
//
// expression 是出错的那一个表达式，operators 是当时使用的运算符表。
func Suggestions(err *lexer.Error, expression string, operators []string) []string {
	switch err.Kind {
	case lexer.ExpectedOperator:
		return []string{i18n.T(i18n.HintExpectedOperator)}

	case lexer.ExpectedLiteral:
		hints := []string{i18n.T(i18n.HintExpectedLiteral)}
		if shadowedAt(expression, err.Offset, operators) {
			hints = append(hints, i18n.T(i18n.HintOperatorOrder))
		}
		return hints

	case lexer.InvalidNumberSuffix:
		return []string{i18n.T(i18n.HintInvalidNumberSuffix)}

	default:
		return nil
	}
}

// shadowedAt 判断出错位置前面的运算符是否截断了一个更长的运算符，
// 例如 ["<", "<<"] 下 "a<<b" 会在第二个 "<" 处失败。
func shadowedAt(expression string, offset int, operators []string) bool {
	for _, short := range operators {
		if short == "" || offset < len(short) || !matcher.HasPrefixAt(expression, short, offset-len(short)) {
			continue
		}
		for _, long := range operators {
			if len(long) > len(short) && matcher.HasPrefixAt(expression, long, offset-len(short)) {
				return true
			}
		}
	}
	return false
}
