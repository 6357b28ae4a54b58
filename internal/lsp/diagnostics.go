package lsp

import (
	"strings"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/exprlex/internal/lexer"
)

// diagnosticSource 诊断来源
const diagnosticSource = "exprlex"

// getDiagnostics 获取文档的诊断信息，每个失败的行一条
func getDiagnostics(doc *Document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	if doc.TooLarge {
		return append(diagnostics, protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityWarning,
			Source:   diagnosticSource,
			Message:  "document too large to analyze",
		})
	}

	for _, res := range doc.Results {
		if res.Err == nil {
			continue
		}
		diagnostics = append(diagnostics, ToDiagnostic(res.Line-1, res.Expression, res.Err))
	}
	return diagnostics
}

// ToDiagnostic 将词法错误转换为 LSP 诊断
//
// line 从 0 开始，text 是该行的内容。范围从出错位置覆盖到上下文片段末尾（至少一个字符），
// 列按 UTF-16 码元计算。
func ToDiagnostic(line int, text string, err *lexer.Error) protocol.Diagnostic {
	width := len(err.Context)
	if i := strings.IndexByte(err.Context, '\n'); i >= 0 {
		width = i
	}

	start := utf16Column(text, err.Offset)
	end := utf16Column(text, err.Offset+width)
	if end <= start {
		end = start + 1
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: start},
			End:   protocol.Position{Line: uint32(line), Character: end},
		},
		Severity: protocol.DiagnosticSeverityError,
		Code:     err.Code(),
		Source:   diagnosticSource,
		Message:  err.Message,
	}
}

// utf16Column 将字节偏移转换为 UTF-16 列
func utf16Column(text string, offset int) uint32 {
	if offset > len(text) {
		offset = len(text)
	}

	var col uint32
	for _, r := range text[:offset] {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return col
}
