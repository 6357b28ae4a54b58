package formatter

// Options 格式化选项
type Options struct {
	// 空格设置
	SpaceAroundOps   bool // 运算符周围是否有空格 (a + b vs a+b)
	SpaceInsideParen bool // 括号内是否有空格 ( x ) vs (x)
	SpaceAfterComma  bool // 逗号后是否有空格

	// 字符串引号：'\'' 或 '"'，包含该引号的字符串会改用另一种引号
	Quote byte
}

// DefaultOptions 返回默认格式化选项
func DefaultOptions() *Options {
	return &Options{
		SpaceAroundOps:   true,
		SpaceInsideParen: false,
		SpaceAfterComma:  true,
		Quote:            '\'',
	}
}

// Compact 紧凑选项：只保留不可省略的空格
func Compact() *Options {
	return &Options{Quote: '\''}
}
