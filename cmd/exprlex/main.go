package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tangzhangming/exprlex/internal/batch"
	"github.com/tangzhangming/exprlex/internal/config"
	diag "github.com/tangzhangming/exprlex/internal/errors"
	exprfmt "github.com/tangzhangming/exprlex/internal/formatter"
	"github.com/tangzhangming/exprlex/internal/i18n"
	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/logging"
	"github.com/tangzhangming/exprlex/internal/output"
	"github.com/tangzhangming/exprlex/internal/repl"
)

const Version = "0.1.0"

// 退出码
const (
	exitOK    = 0
	exitLex   = 1 // 词法错误
	exitUsage = 2 // 参数、配置或 I/O 错误
)

const historyFile = ".exprlex_history"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	expr       string
	ops        string
	configPath string
	json       bool
	lang       string
	color      string
	debug      bool
	lines      bool
	repl       bool
	fmt        bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	o := &options{}
	fs := flag.NewFlagSet("exprlex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	fs.StringVar(&o.expr, "e", "", "Tokenize the given expression")
	fs.StringVar(&o.ops, "ops", "", "Space separated operator list, matched in order")
	fs.StringVar(&o.configPath, "config", "", "Path to exprlex.toml")
	fs.BoolVar(&o.json, "json", false, "Print tokens and errors as JSON")
	fs.StringVar(&o.lang, "lang", "", "Message language (en, zh)")
	fs.StringVar(&o.color, "color", "", "Colored diagnostics (auto, always, never)")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&o.lines, "lines", false, "Treat every line of the input as a separate expression")
	fs.BoolVar(&o.repl, "repl", false, "Start the interactive REPL")
	fs.BoolVar(&o.fmt, "fmt", false, "Print the expression in canonical form instead of its tokens")
	fs.BoolVar(&o.version, "version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs.Args(), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if o.version {
		fmt.Fprintf(stdout, "exprlex v%s\n", Version)
		return exitOK
	}

	filename := ""
	if len(rest) > 0 {
		filename = rest[0]
	}
	if o.expr == "" && filename == "" && !o.repl {
		printUsage(stdout)
		return exitOK
	}

	// 配置：显式路径 > 从输入文件所在目录向上查找 > 默认值
	start := "."
	if filename != "" && filename != "-" {
		start = filepath.Dir(filename)
	}
	cfg, cfgPath, err := config.Resolve(o.configPath, start)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitUsage
	}
	if cfgPath == "" && detectChineseOS() {
		cfg.Output.Language = string(i18n.LangChinese)
	}
	applyOverrides(cfg, o)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}
	i18n.SetLanguageFromString(cfg.Output.Language)

	logger, err := logging.New(logging.Options{Debug: cfg.Log.Debug, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	defer logger.Sync()
	logger.Debug("config", zap.String("file", cfgPath), zap.Strings("operators", cfg.Lexer.Operators))

	formatter := diag.NewFormatter()
	formatter.Colors = colorsEnabled(diag.ColorMode(cfg.Output.Color), stderr)

	if o.repl {
		return runREPL(cfg, formatter, logger, stdout)
	}

	source, name, err := readSource(o.expr, filename, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return exitUsage
	}

	r := &runner{
		cfg:       cfg,
		opts:      cfg.LexerOptions(logger),
		formatter: formatter,
		fmt:       o.fmt,
		stdout:    stdout,
		stderr:    stderr,
	}
	if o.lines {
		return r.lexLines(source, name)
	}
	return r.lexOne(source, name)
}

// applyOverrides 命令行参数覆盖配置文件
func applyOverrides(cfg *config.Config, o *options) {
	if o.ops != "" {
		cfg.Lexer.Operators = strings.Fields(o.ops)
	}
	if o.json {
		cfg.Output.Format = config.FormatJSON
	}
	if o.lang != "" {
		cfg.Output.Language = o.lang
	}
	if o.color != "" {
		cfg.Output.Color = o.color
	}
	if o.debug {
		cfg.Log.Debug = true
	}
}

func colorsEnabled(mode diag.ColorMode, w io.Writer) bool {
	f, _ := w.(*os.File)
	if f == nil {
		return mode == diag.ColorAlways
	}
	return mode.Enabled(f)
}

// readSource 读取输入：-e 表达式、文件或标准输入（"-"）
func readSource(expr, filename string, stdin io.Reader) (string, string, error) {
	if expr != "" {
		return expr, "<expr>", nil
	}
	if filename == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), "<stdin>", err
	}
	data, err := os.ReadFile(filename)
	return string(data), filename, err
}

// runner 执行一次非交互的分析
type runner struct {
	cfg       *config.Config
	opts      []lexer.Option
	formatter *diag.Formatter
	fmt       bool
	stdout    io.Writer
	stderr    io.Writer
}

func (r *runner) lexOne(source, name string) int {
	tokens, err := lexer.Tokenize(source, r.cfg.Lexer.Operators, r.opts...)
	if err != nil {
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return exitUsage
		}
		if r.cfg.Output.Format == config.FormatJSON {
			output.WriteErrorJSON(r.stdout, lexErr)
		} else {
			output.WriteError(r.stderr, lexErr, source, name, r.cfg.Lexer.Operators, r.formatter)
		}
		return exitLex
	}

	if r.fmt {
		formatted, err := exprfmt.New(r.cfg.Lexer.Operators, nil, r.opts...).Format(tokens)
		if err != nil {
			fmt.Fprintf(r.stderr, "Error: %v\n", err)
			return exitLex
		}
		fmt.Fprintln(r.stdout, formatted)
		return exitOK
	}

	if err := output.WriteTokens(r.stdout, tokens, r.cfg.Output.Format); err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func (r *runner) lexLines(source, name string) int {
	results, err := batch.LexLines(source, r.cfg.Lexer.Operators, r.opts...)

	if r.fmt {
		f := exprfmt.New(r.cfg.Lexer.Operators, nil, r.opts...)
		for _, res := range results {
			if res.Err != nil {
				continue
			}
			formatted, ferr := f.Format(res.Tokens)
			if ferr != nil {
				fmt.Fprintf(r.stderr, "%s:%d: %v\n", name, res.Line, ferr)
				continue
			}
			fmt.Fprintln(r.stdout, formatted)
		}
	} else if werr := output.WriteResults(r.stdout, results, r.cfg.Output.Format); werr != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", werr)
		return exitUsage
	}
	if err == nil {
		return exitOK
	}

	if r.cfg.Output.Format != config.FormatJSON || r.fmt {
		reporter := diag.NewReporter(r.stderr, r.formatter)
		reporter.SetSource(name, source)
		for _, res := range results {
			if res.Err != nil {
				reporter.Report(diag.FromLexerError(res.Err, source, res.Start, name, r.cfg.Lexer.Operators))
			}
		}
		if reporter.ErrorCount() > 1 {
			fmt.Fprintf(r.stderr, "\n%d errors\n", reporter.ErrorCount())
		}
	}
	return exitLex
}

func runREPL(cfg *config.Config, formatter *diag.Formatter, logger *zap.Logger, stdout io.Writer) int {
	rc := repl.DefaultConfig()
	rc.Operators = cfg.Lexer.Operators
	rc.Options = cfg.LexerOptions(logger)
	rc.Format = cfg.Output.Format
	rc.Formatter = formatter
	rc.Logger = logger
	if home, err := os.UserHomeDir(); err == nil {
		rc.HistoryFile = filepath.Join(home, historyFile)
	}

	if err := repl.New(rc, stdout).Run(); err != nil {
		logger.Error("repl", zap.Error(err))
		return exitUsage
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "exprlex v%s\n", Version)
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T(i18n.MsgUsage))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -e <expr>       Tokenize the given expression")
	fmt.Fprintln(w, "  -ops \"<< < +\"   Operator list, matched in order (default: built-in set)")
	fmt.Fprintln(w, "  -config <file>  Path to exprlex.toml (default: search upward)")
	fmt.Fprintln(w, "  -json           Print tokens and errors as JSON")
	fmt.Fprintln(w, "  -lines          Treat every line as a separate expression")
	fmt.Fprintln(w, "  -lang <en|zh>   Message language")
	fmt.Fprintln(w, "  -color <mode>   auto, always or never")
	fmt.Fprintln(w, "  -debug          Enable debug logging (also EXPRLEX_DEBUG=1)")
	fmt.Fprintln(w, "  -fmt            Print the expression in canonical form")
	fmt.Fprintln(w, "  -repl           Start the interactive REPL")
	fmt.Fprintln(w, "  -version        Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  exprlex -e \"a + 1\"")
	fmt.Fprintln(w, "  exprlex -lines rules.expr")
	fmt.Fprintln(w, "  exprlex -fmt -e \"a+b*  c\"")
	fmt.Fprintln(w, "  echo \"x << 2\" | exprlex -ops \"<< <\" -")
}
