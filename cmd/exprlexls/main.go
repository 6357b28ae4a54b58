package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tangzhangming/exprlex/internal/config"
	"github.com/tangzhangming/exprlex/internal/logging"
	"github.com/tangzhangming/exprlex/internal/lsp"
)

func main() {
	// 解析命令行参数
	showVersion := flag.Bool("version", false, "显示版本信息")
	showHelp := flag.Bool("help", false, "显示帮助信息")
	logFile := flag.String("log", "", "日志文件路径（默认不记录日志）")
	configPath := flag.String("config", "", "配置文件路径（默认从工作区根目录向上查找 exprlex.toml）")

	flag.Parse()

	if *showVersion {
		fmt.Printf("exprlex Language Server v%s\n", lsp.Version)
		os.Exit(0)
	}

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// stdout 是协议通道，日志只能写文件
	logger := logging.Nop()
	if *logFile != "" {
		l, err := logging.New(logging.Options{Debug: logging.DebugFromEnv(), File: *logFile})
		if err != nil {
			fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync()

	cfg := lsp.Config{Logger: logger, WorkspaceConfig: *configPath == ""}
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
			os.Exit(1)
		}
		cfg.Operators = c.Lexer.Operators
		cfg.Options = c.LexerOptions(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 创建并启动 LSP 服务器
	server := lsp.NewServer(cfg)
	if err := server.Run(ctx, lsp.Stdio(os.Stdin, os.Stdout)); err != nil {
		logger.Error("server stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("exprlex Language Server - LSP 服务器")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  exprlexls [options]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  --version        显示版本信息")
	fmt.Println("  --help           显示帮助信息")
	fmt.Println("  --log <file>     日志文件路径（EXPRLEX_DEBUG=1 时输出调试日志）")
	fmt.Println("  --config <file>  配置文件路径")
	fmt.Println()
	fmt.Println("LSP 服务器通过标准输入输出 (stdio) 与编辑器通信，")
	fmt.Println("对每个打开的文档逐行做词法分析并发布诊断。")
}
