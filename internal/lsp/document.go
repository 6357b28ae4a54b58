package lsp

import (
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/tangzhangming/exprlex/internal/batch"
	"github.com/tangzhangming/exprlex/internal/lexer"
)

// maxDocumentSize 文档大小限制（500KB），超过时不做分析
const maxDocumentSize = 500 * 1024

// Document 表示一个打开的文档，每个非空行是一个表达式
type Document struct {
	URI     string
	Content string
	Version int32

	// 分析结果
	Results  []batch.Result
	TooLarge bool

	// 内容指纹，以及最近一次发布诊断时的指纹
	fingerprint  [blake2b.Size256]byte
	published    [blake2b.Size256]byte
	hasPublished bool
}

// Fingerprint 文档内容的 blake2b-256 摘要
func Fingerprint(content string) [blake2b.Size256]byte {
	return blake2b.Sum256([]byte(content))
}

// DocumentManager 文档管理器
type DocumentManager struct {
	documents map[string]*Document
	mu        sync.RWMutex

	operators []string
	options   []lexer.Option
}

// NewDocumentManager 创建文档管理器，文档按给定运算符表分析
func NewDocumentManager(operators []string, options []lexer.Option) *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*Document),
		operators: operators,
		options:   options,
	}
}

// SetOperators 替换运算符表并重新分析所有打开的文档
func (dm *DocumentManager) SetOperators(operators []string, options []lexer.Option) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.operators = operators
	dm.options = options
	for _, doc := range dm.documents {
		dm.analyze(doc)
		// 运算符变化后即使内容没变也要重新发布
		doc.hasPublished = false
	}
}

// Open 打开文档
func (dm *DocumentManager) Open(uri, content string, version int32) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
	}
	dm.analyze(doc)

	dm.documents[uri] = doc
	return doc
}

// Update 以完整内容替换文档；文档未打开时等同于 Open
func (dm *DocumentManager) Update(uri, content string, version int32) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.documents[uri]
	if !ok {
		doc = &Document{URI: uri}
		dm.documents[uri] = doc
	}

	doc.Content = content
	doc.Version = version
	dm.analyze(doc)
	return doc
}

// Close 关闭文档
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.documents, uri)
}

// Get 获取文档
func (dm *DocumentManager) Get(uri string) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.documents[uri]
}

// Len 打开的文档数量
func (dm *DocumentManager) Len() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

// MarkPublished 记录已发布当前内容的诊断。内容自上次发布后没有变化时返回 false
func (dm *DocumentManager) MarkPublished(doc *Document) bool {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if doc.hasPublished && doc.published == doc.fingerprint {
		return false
	}
	doc.published = doc.fingerprint
	doc.hasPublished = true
	return true
}

func (dm *DocumentManager) analyze(doc *Document) {
	doc.fingerprint = Fingerprint(doc.Content)

	if len(doc.Content) > maxDocumentSize {
		doc.TooLarge = true
		doc.Results = nil
		return
	}
	doc.TooLarge = false
	doc.Results, _ = batch.LexLines(doc.Content, dm.operators, dm.options...)
}
