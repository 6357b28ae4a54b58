package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrExpectedOperator:    "expected operator here",
	ErrExpectedLiteral:     "expected literal here",
	ErrInvalidNumberSuffix: "invalid character in number",

	// ========== Hints ==========
	HintExpectedOperator:    "expressions alternate literal and operator; is an operator missing from the operator list?",
	HintExpectedLiteral:     "an operator must be followed by a number, identifier or quoted string",
	HintInvalidNumberSuffix: "separate the number from the following name with an operator",
	HintOperatorOrder:       "operators are matched in list order; put longer operators such as '<<' before '<'",

	// ========== Config ==========
	ErrConfigEmptyOperator: "lexer.operators[%d] is empty",
	ErrConfigDupOperator:   "lexer.operators[%d] duplicates %q",
	ErrConfigShadowed:      "lexer.operators[%d] %q can never match: %q is listed before it",
	ErrConfigColor:         "output.color must be auto, always or never (got %q)",
	ErrConfigFormat:        "output.format must be text or json (got %q)",
	ErrConfigContextWidth:  "lexer.context_width must not be negative (got %d)",

	// ========== CLI / REPL ==========
	MsgUsage:          "Usage: exprlex [options] [file]",
	MsgLineFailed:     "line %d: %s",
	MsgReplWelcome:    "exprlex REPL",
	MsgReplHint:       "Type :help for help, :quit to exit",
	MsgReplBye:        "Bye!",
	MsgReplUnknownCmd: "Unknown command: %s (type :help for available commands)",
	MsgReplOperators:  "Operators: %s",
	MsgReplFormat:     "Output format: %s",
	MsgReplLoaded:     "Loaded %s: %d line(s), %d failed",
	MsgReplLoadUsage:  "Usage: :load <filename>",
}
