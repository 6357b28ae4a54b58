package i18n

// 消息 ID
const (
	// ========== 词法分析器 ==========
	ErrExpectedOperator    = "lexer.expected_operator"
	ErrExpectedLiteral     = "lexer.expected_literal"
	ErrInvalidNumberSuffix = "lexer.invalid_number_suffix"

	// ========== 修复建议 ==========
	HintExpectedOperator    = "hint.expected_operator"
	HintExpectedLiteral     = "hint.expected_literal"
	HintInvalidNumberSuffix = "hint.invalid_number_suffix"
	HintOperatorOrder       = "hint.operator_order"

	// ========== 配置 ==========
	ErrConfigEmptyOperator = "config.empty_operator"
	ErrConfigDupOperator   = "config.duplicate_operator"
	ErrConfigShadowed      = "config.shadowed_operator"
	ErrConfigColor         = "config.invalid_color"
	ErrConfigFormat        = "config.invalid_format"
	ErrConfigContextWidth  = "config.invalid_context_width"

	// ========== 命令行 / REPL ==========
	MsgUsage          = "cli.usage"
	MsgLineFailed     = "cli.line_failed"
	MsgReplWelcome    = "repl.welcome"
	MsgReplHint       = "repl.hint"
	MsgReplBye        = "repl.bye"
	MsgReplUnknownCmd = "repl.unknown_command"
	MsgReplOperators  = "repl.operators"
	MsgReplFormat     = "repl.format"
	MsgReplLoaded     = "repl.loaded"
	MsgReplLoadUsage  = "repl.load_usage"
)
