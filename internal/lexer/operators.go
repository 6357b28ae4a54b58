package lexer

// defaultOperators 表达式语言默认运算符表
//
// 较长的运算符必须排在作为其前缀的较短运算符之前（"**" 在 "*" 前，"<<" 在 "<" 前）。
// 单词运算符 not/or/and 只在运算符位置生效；在字面量位置它们仍按标识符读取。
var defaultOperators = []string{
	"**", "+", "-", "*", "/",
	"<<", ">>", ">=", "!=", "==", "<=", "<", ">",
	"~", "(", ")", "[", "]", ",", ".", "?", ":",
	"not", "!", "or", "||", "and", "&&",
}

// DefaultOperators 返回默认运算符表的副本
func DefaultOperators() []string {
	return append([]string(nil), defaultOperators...)
}

// ShadowedOperator 检查运算符表中是否存在永远不会被匹配到的项：
// 如果 ops[j] 以排在它前面的 ops[i] 为前缀，按首个匹配规则 ops[j] 永远选不中。
// 返回第一对 (i, j)；没有时返回 ok=false。
func ShadowedOperator(ops []string) (i, j int, ok bool) {
	for j = 0; j < len(ops); j++ {
		for i = 0; i < j; i++ {
			if ops[i] != "" && ops[i] != ops[j] && len(ops[i]) < len(ops[j]) && ops[j][:len(ops[i])] == ops[i] {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
