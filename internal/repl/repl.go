// repl.go - exprlex REPL (Read-Eval-Print Loop)
//
// 提供交互式命令行界面，支持：
// - 多行输入（检测未闭合的引号和括号）
// - 历史记录（liner 管理，最多 1000 条）
// - 特殊命令（:help, :quit, :ops, :history, :json, :load, :fmt）
// - 自动打印 Token 序列
// - 错误友好显示

package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/tangzhangming/exprlex/internal/batch"
	"github.com/tangzhangming/exprlex/internal/config"
	diag "github.com/tangzhangming/exprlex/internal/errors"
	exprfmt "github.com/tangzhangming/exprlex/internal/formatter"
	"github.com/tangzhangming/exprlex/internal/i18n"
	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/output"
)

const historyLimit = 1000

var commands = []string{":help", ":quit", ":ops", ":history", ":json", ":load", ":fmt"}

// REPL 交互式词法分析器
type REPL struct {
	operators []string
	options   []lexer.Option
	format    string
	formatter *diag.Formatter
	logger    *zap.Logger
	writer    io.Writer

	history []string

	promptPrimary  string
	promptContinue string
	historyFile    string
}

// Config REPL 配置
type Config struct {
	Operators      []string
	Options        []lexer.Option
	Format         string // text 或 json
	Formatter      *diag.Formatter
	Logger         *zap.Logger
	PromptPrimary  string
	PromptContinue string
	HistoryFile    string // 为空时不持久化历史
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Operators:      lexer.DefaultOperators(),
		Format:         config.FormatText,
		PromptPrimary:  "lex> ",
		PromptContinue: "...  ",
	}
}

// New 创建 REPL，输出写到 w
func New(cfg Config, w io.Writer) *REPL {
	if cfg.Formatter == nil {
		cfg.Formatter = diag.NewFormatter()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Format == "" {
		cfg.Format = config.FormatText
	}
	return &REPL{
		operators:      append([]string(nil), cfg.Operators...),
		options:        cfg.Options,
		format:         cfg.Format,
		formatter:      cfg.Formatter,
		logger:         cfg.Logger,
		writer:         w,
		promptPrimary:  cfg.PromptPrimary,
		promptContinue: cfg.PromptContinue,
		historyFile:    cfg.HistoryFile,
	}
}

// Run 运行 REPL，直到 :quit 或 EOF
func (r *REPL) Run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(r.complete)

	r.loadHistory(ln)
	defer r.saveHistory(ln)

	r.printWelcome()

	for {
		input, ok := r.readInput(ln)
		if !ok {
			fmt.Fprintln(r.writer)
			fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplBye))
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		r.addHistory(input)

		if quit := r.Eval(input); quit {
			return nil
		}
	}
}

// readInput 读取一个完整输入，引号或括号未闭合时继续读下一行
func (r *REPL) readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := r.promptPrimary
		if b.Len() > 0 {
			prompt = r.promptContinue
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C 丢弃当前输入
			return "", true
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.logger.Debug("prompt failed", zap.Error(err))
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMoreInput(src) {
			return src, true
		}
	}
}

// Eval 处理一行输入：特殊命令或表达式。返回 true 表示应退出
func (r *REPL) Eval(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return r.handleCommand(trimmed)
	}
	r.execute(input)
	return false
}

// printWelcome 打印欢迎信息
func (r *REPL) printWelcome() {
	fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplWelcome))
	fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplHint))
	fmt.Fprintln(r.writer)
}

// handleCommand 处理特殊命令
func (r *REPL) handleCommand(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case ":help", ":h", ":?":
		r.printHelp()

	case ":quit", ":q", ":exit":
		fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplBye))
		return true

	case ":ops":
		if len(args) > 0 {
			r.operators = args
			if i, j, ok := lexer.ShadowedOperator(r.operators); ok {
				fmt.Fprintln(r.writer, i18n.T(i18n.ErrConfigShadowed, j, r.operators[j], r.operators[i]))
			}
		}
		fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplOperators, strings.Join(r.operators, " ")))

	case ":history", ":hist":
		r.printHistory()

	case ":json":
		if r.format == config.FormatJSON {
			r.format = config.FormatText
		} else {
			r.format = config.FormatJSON
		}
		fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplFormat, r.format))

	case ":fmt":
		r.formatExpression(strings.TrimSpace(line[len(parts[0]):]))

	case ":load", ":l":
		if len(args) < 1 {
			fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplLoadUsage))
			break
		}
		r.loadFile(args[0])

	default:
		fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplUnknownCmd, cmd))
	}
	return false
}

// printHelp 打印帮助信息
func (r *REPL) printHelp() {
	fmt.Fprintln(r.writer, "Available commands:")
	fmt.Fprintln(r.writer, "  :help, :h, :?     Show this help message")
	fmt.Fprintln(r.writer, "  :quit, :q, :exit  Exit the REPL")
	fmt.Fprintln(r.writer, "  :ops [op ...]     Show or replace the operator list (order matters)")
	fmt.Fprintln(r.writer, "  :history, :hist   Show input history")
	fmt.Fprintln(r.writer, "  :json             Toggle between text and JSON output")
	fmt.Fprintln(r.writer, "  :load <file>      Tokenize every line of a file")
	fmt.Fprintln(r.writer, "  :fmt <expr>       Print the expression in canonical form")
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Examples:")
	fmt.Fprintln(r.writer, "  lex> a + 1")
	fmt.Fprintln(r.writer, "  lex> name == 'it\\'s'")
	fmt.Fprintln(r.writer, "  lex> :ops << < +")
}

// loadFile 逐行分析文件
func (r *REPL) loadFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(r.writer, "Error loading file: %v\n", err)
		return
	}

	results, _ := batch.LexLines(string(source), r.operators, r.options...)
	if err := output.WriteResults(r.writer, results, r.format); err != nil {
		r.logger.Warn("write results", zap.Error(err))
	}

	if r.format != config.FormatJSON {
		reporter := diag.NewReporter(r.writer, r.formatter)
		reporter.SetSource(filename, string(source))
		for _, res := range results {
			if res.Err != nil {
				reporter.Report(diag.FromLexerError(res.Err, string(source), res.Start, filename, r.operators))
			}
		}
	}

	fmt.Fprintln(r.writer, i18n.T(i18n.MsgReplLoaded, filename, len(results), batch.Failed(results)))
}

// printHistory 打印历史记录
func (r *REPL) printHistory() {
	for i, cmd := range r.history {
		fmt.Fprintf(r.writer, "%4d  %s\n", i+1, cmd)
	}
}

// addHistory 添加到历史记录
func (r *REPL) addHistory(input string) {
	// 不添加重复的历史记录
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	if len(r.history) > historyLimit {
		r.history = r.history[len(r.history)-historyLimit:]
	}
}

func (r *REPL) loadHistory(ln *liner.State) {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *REPL) saveHistory(ln *liner.State) {
	if r.historyFile == "" {
		return
	}
	f, err := os.Create(r.historyFile)
	if err != nil {
		r.logger.Debug("save history", zap.String("file", r.historyFile), zap.Error(err))
		return
	}
	_, _ = ln.WriteHistory(f)
	_ = f.Close()
}

// needsMoreInput 检查引号或括号是否未闭合
func needsMoreInput(input string) bool {
	parenDepth := 0   // ()
	bracketDepth := 0 // []
	inString := false
	stringChar := byte(0)
	escaped := false

	for i := 0; i < len(input); i++ {
		c := input[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if inString {
			if c == stringChar {
				inString = false
			}
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			stringChar = c
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '[':
			bracketDepth++
		case ']':
			bracketDepth--
		}
	}

	return parenDepth > 0 || bracketDepth > 0 || inString
}

// formatExpression 输出规范格式的表达式
func (r *REPL) formatExpression(input string) {
	formatted, err := exprfmt.New(r.operators, nil, r.options...).FormatSource(input)
	if err != nil {
		r.reportError(input, err)
		return
	}
	fmt.Fprintln(r.writer, formatted)
}

// execute 分析表达式并输出结果
func (r *REPL) execute(input string) {
	tokens, err := lexer.Tokenize(input, r.operators, r.options...)
	if err != nil {
		r.reportError(input, err)
		return
	}

	if err := output.WriteTokens(r.writer, tokens, r.format); err != nil {
		r.logger.Warn("write tokens", zap.Error(err))
	}
}

// reportError 输出词法错误，其它错误只打印消息
func (r *REPL) reportError(input string, err error) {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		fmt.Fprintf(r.writer, "Error: %v\n", err)
		return
	}
	if r.format == config.FormatJSON {
		err = output.WriteErrorJSON(r.writer, lexErr)
	} else {
		err = output.WriteError(r.writer, lexErr, input, "<repl>", r.operators, r.formatter)
	}
	if err != nil {
		r.logger.Warn("write error", zap.Error(err))
	}
}

// complete liner 补全：特殊命令和当前运算符
func (r *REPL) complete(line string) []string {
	var completions []string

	if strings.HasPrefix(line, ":") {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, line) {
				completions = append(completions, cmd)
			}
		}
		return completions
	}

	// 补全最后一个单词为运算符（如 and/or/not）
	idx := strings.LastIndexAny(line, " \t") + 1
	prefix, word := line[:idx], line[idx:]
	if word == "" {
		return nil
	}
	for _, op := range r.operators {
		if op != word && strings.HasPrefix(op, word) {
			completions = append(completions, prefix+op)
		}
	}
	return completions
}
