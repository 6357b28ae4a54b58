package lexer

import (
	"go.uber.org/zap"

	"github.com/tangzhangming/exprlex/internal/i18n"
)

// DefaultContextWidth 诊断信息中上下文片段的默认长度
const DefaultContextWidth = 30

type options struct {
	logger       *zap.Logger
	deferLeading bool
	contextWidth int
	lang         i18n.Language
}

func defaultOptions() options {
	return options{
		logger:       zap.NewNop(),
		contextWidth: DefaultContextWidth,
		lang:         i18n.LangEnglish,
	}
}

// Option 词法分析器选项
type Option func(*options)

// WithLogger 设置日志记录器，每个 Token 和错误都会以 debug 级别记录
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDeferredLeadingCheck 开头既不是数字、也没有"运算符+字面量"时不立即报错，
// 交给主循环去发现（此时通常报 ExpectedOperator）。
func WithDeferredLeadingCheck() Option {
	return func(o *options) {
		o.deferLeading = true
	}
}

// WithContextWidth 设置诊断上下文片段的最大长度，非正数使用默认值
func WithContextWidth(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultContextWidth
		}
		o.contextWidth = n
	}
}

// WithLanguage 设置错误信息语言（默认英文）
func WithLanguage(lang i18n.Language) Option {
	return func(o *options) {
		o.lang = lang
	}
}
