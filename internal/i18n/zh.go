package i18n

var messagesZH = map[string]string{
	// ========== 词法分析器 ==========
	ErrExpectedOperator:    "此处需要运算符",
	ErrExpectedLiteral:     "此处需要字面量",
	ErrInvalidNumberSuffix: "数字中含有无效字符",

	// ========== 修复建议 ==========
	HintExpectedOperator:    "表达式由字面量和运算符交替组成；运算符表中是否缺少该运算符？",
	HintExpectedLiteral:     "运算符后面必须是数字、标识符或带引号的字符串",
	HintInvalidNumberSuffix: "请用运算符把数字和后面的名称分开",
	HintOperatorOrder:       "运算符按列表顺序匹配；请把 '<<' 这类较长的运算符放在 '<' 之前",

	// ========== 配置 ==========
	ErrConfigEmptyOperator: "lexer.operators[%d] 为空",
	ErrConfigDupOperator:   "lexer.operators[%d] 与 %q 重复",
	ErrConfigShadowed:      "lexer.operators[%d] %q 永远不会匹配：%q 排在它前面",
	ErrConfigColor:         "output.color 只能是 auto、always 或 never（实际为 %q）",
	ErrConfigFormat:        "output.format 只能是 text 或 json（实际为 %q）",
	ErrConfigContextWidth:  "lexer.context_width 不能为负数（实际为 %d）",

	// ========== 命令行 / REPL ==========
	MsgUsage:          "用法: exprlex [选项] [文件]",
	MsgLineFailed:     "第 %d 行: %s",
	MsgReplWelcome:    "exprlex 交互模式",
	MsgReplHint:       "输入 :help 查看帮助，:quit 退出",
	MsgReplBye:        "再见！",
	MsgReplUnknownCmd: "未知命令: %s（输入 :help 查看可用命令）",
	MsgReplOperators:  "运算符: %s",
	MsgReplFormat:     "输出格式: %s",
	MsgReplLoaded:     "已加载 %s: 共 %d 行，失败 %d 行",
	MsgReplLoadUsage:  "用法: :load <文件名>",
}
