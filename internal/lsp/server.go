package lsp

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tangzhangming/exprlex/internal/config"
	"github.com/tangzhangming/exprlex/internal/lexer"
)

// Version 服务器版本
const Version = "0.1.0"

// ErrExitWithoutShutdown 客户端在 shutdown 之前发送了 exit
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// Config 服务器配置
type Config struct {
	Operators []string
	Options   []lexer.Option
	Logger    *zap.Logger

	// 为 true 时在 initialize 阶段从工作区根目录向上查找 exprlex.toml
	WorkspaceConfig bool
}

// Server LSP 服务器
type Server struct {
	// 文档管理
	documents *DocumentManager

	// 工作区根目录
	workspaceRoot string
	config        Config

	logger *zap.Logger
	conn   jsonrpc2.Conn

	// 服务器状态
	initialized *atomic.Bool
	shutdown    *atomic.Bool
	exited      *atomic.Bool
	published   *atomic.Int64
}

// NewServer 创建 LSP 服务器
func NewServer(cfg Config) *Server {
	if cfg.Operators == nil {
		cfg.Operators = lexer.DefaultOperators()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Server{
		documents:   NewDocumentManager(cfg.Operators, cfg.Options),
		config:      cfg,
		logger:      cfg.Logger,
		initialized: atomic.NewBool(false),
		shutdown:    atomic.NewBool(false),
		exited:      atomic.NewBool(false),
		published:   atomic.NewInt64(0),
	}
}

// Run 在 rwc 上运行服务器，直到收到 exit、连接断开或 ctx 结束
func (s *Server) Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.logger.Info("exprlex language server started", zap.String("version", Version))

	s.conn = jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.conn.Go(ctx, s.handle)

	select {
	case <-ctx.Done():
		s.conn.Close()
		<-s.conn.Done()
		return ctx.Err()
	case <-s.conn.Done():
	}

	if !s.exited.Load() {
		s.logger.Info("client disconnected")
		return nil
	}
	if !s.shutdown.Load() {
		return ErrExitWithoutShutdown
	}
	s.logger.Info("server shutdown")
	return nil
}

// Stdio 把标准输入输出组合成 io.ReadWriteCloser
func Stdio(r io.ReadCloser, w io.WriteCloser) io.ReadWriteCloser {
	return stdio{r, w}
}

type stdio struct {
	io.ReadCloser
	w io.WriteCloser
}

func (s stdio) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s stdio) Close() error {
	rerr := s.ReadCloser.Close()
	if werr := s.w.Close(); werr != nil {
		return werr
	}
	return rerr
}

// handle 按方法分发
//
// 返回 error 会让 jsonrpc2 关闭连接，所以请求错误都通过 reply 返回。
func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("received", zap.String("method", req.Method()))

	if s.shutdown.Load() && req.Method() != protocol.MethodExit {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "server is shutting down"))
	}

	switch req.Method() {
	case protocol.MethodInitialize:
		var params protocol.InitializeParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, s.handleInitialize(params), nil)

	case protocol.MethodInitialized:
		s.initialized.Store(true)
		return reply(ctx, nil, nil)

	case protocol.MethodShutdown:
		s.shutdown.Store(true)
		return reply(ctx, nil, nil)

	case protocol.MethodExit:
		s.exited.Store(true)
		err := reply(ctx, nil, nil)
		s.conn.Close()
		return err

	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		doc := s.documents.Open(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
		s.logger.Debug("open", zap.String("file", pathOf(doc.URI)), zap.Int32("version", doc.Version))
		s.publishDiagnostics(ctx, doc)
		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		if len(params.ContentChanges) == 0 {
			return reply(ctx, nil, nil)
		}
		// 完整同步：最后一个变更就是整个文档
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		doc := s.documents.Update(string(params.TextDocument.URI), text, params.TextDocument.Version)
		s.publishDiagnostics(ctx, doc)
		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		s.documents.Close(string(params.TextDocument.URI))
		s.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidSave, "$/cancelRequest", "$/setTrace":
		return reply(ctx, nil, nil)

	default:
		s.logger.Debug("unknown method", zap.String("method", req.Method()))
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// handleInitialize 处理初始化请求
func (s *Server) handleInitialize(params protocol.InitializeParams) *protocol.InitializeResult {
	if params.RootURI != "" {
		s.workspaceRoot = pathOf(string(params.RootURI))
	}
	s.logger.Info("initialize", zap.String("workspace", s.workspaceRoot))

	if s.config.WorkspaceConfig && s.workspaceRoot != "" {
		s.loadWorkspaceConfig()
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "exprlex",
			Version: Version,
		},
	}
}

// loadWorkspaceConfig 从工作区加载运算符表
func (s *Server) loadWorkspaceConfig() {
	cfg, path, err := config.Resolve("", s.workspaceRoot)
	if err != nil {
		s.logger.Warn("invalid workspace config", zap.String("file", path), zap.Error(err))
		return
	}
	if path == "" {
		return
	}
	s.logger.Info("workspace config", zap.String("file", path), zap.Strings("operators", cfg.Lexer.Operators))
	s.documents.SetOperators(cfg.Lexer.Operators, cfg.LexerOptions(s.logger))
}

// publishDiagnostics 发布文档诊断，内容与上次发布相同时跳过
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	if !s.documents.MarkPublished(doc) {
		s.logger.Debug("unchanged, skip publish", zap.String("uri", doc.URI))
		return
	}

	diagnostics := getDiagnostics(doc)
	s.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.URI),
		Version:     uint32(doc.Version),
		Diagnostics: diagnostics,
	})
	s.published.Inc()
	s.logger.Debug("published", zap.String("uri", doc.URI), zap.Int("count", len(diagnostics)))
}

// Published 已发布的诊断通知数量
func (s *Server) Published() int64 {
	return s.published.Load()
}

func (s *Server) notify(ctx context.Context, method string, params interface{}) {
	if err := s.conn.Notify(ctx, method, params); err != nil {
		s.logger.Warn("notify failed", zap.String("method", method), zap.Error(err))
	}
}

func decodeParams(req jsonrpc2.Request, v interface{}) error {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return jsonrpc2.NewError(jsonrpc2.InvalidParams, err.Error())
	}
	return nil
}

// pathOf 将 file:// URI 转换为文件路径，其他 URI 原样返回
func pathOf(docURI string) string {
	if !strings.HasPrefix(docURI, uri.FileScheme+"://") {
		return docURI
	}
	u, err := uri.Parse(docURI)
	if err != nil {
		return docURI
	}
	return u.Filename()
}
