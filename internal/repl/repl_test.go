package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestREPL(ops ...string) (*REPL, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	if len(ops) > 0 {
		cfg.Operators = ops
	}
	return New(cfg, &buf), &buf
}

func TestEvalExpression(t *testing.T) {
	r, buf := newTestREPL("+")

	assert.False(t, r.Eval("x + 1"))
	assert.Equal(t, "  identifier(\"x\")\n  operator(\"+\")\n  number(\"1\")\n", buf.String())
}

func TestEvalError(t *testing.T) {
	r, buf := newTestREPL("+")

	assert.False(t, r.Eval("1 2"))
	assert.Contains(t, buf.String(), "error[L0001]: expected operator here")
	assert.Contains(t, buf.String(), " --> <repl>:1:3")
}

func TestQuit(t *testing.T) {
	r, buf := newTestREPL()
	assert.True(t, r.Eval(":quit"))
	assert.Contains(t, buf.String(), "Bye!")
}

func TestOpsCommand(t *testing.T) {
	r, buf := newTestREPL()

	r.Eval(":ops < <<")
	assert.Equal(t, []string{"<", "<<"}, r.operators)
	assert.Contains(t, buf.String(), `"<<" can never match`)
	assert.Contains(t, buf.String(), "Operators: < <<")

	buf.Reset()
	r.Eval(":ops << <")
	assert.NotContains(t, buf.String(), "can never match")

	buf.Reset()
	r.Eval("a << b")
	assert.Contains(t, buf.String(), `operator("<<")`)
}

func TestJSONToggle(t *testing.T) {
	r, buf := newTestREPL("+")

	r.Eval(":json")
	assert.Contains(t, buf.String(), "Output format: json")

	buf.Reset()
	r.Eval("1+2")
	assert.Contains(t, buf.String(), `"kind": "number"`)

	buf.Reset()
	r.Eval("1 2")
	assert.Contains(t, buf.String(), `"code": "L0001"`)

	buf.Reset()
	r.Eval(":json")
	assert.Contains(t, buf.String(), "Output format: text")
}

func TestLoadCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.expr")
	require.NoError(t, os.WriteFile(path, []byte("a + b\n\n1 2\n"), 0644))

	r, buf := newTestREPL("+")
	r.Eval(":load " + path)

	out := buf.String()
	assert.Contains(t, out, "1: a + b")
	assert.Contains(t, out, "error[L0001]")
	assert.Contains(t, out, path+":3:3")
	assert.Contains(t, out, "2 line(s), 1 failed")

	buf.Reset()
	r.Eval(":load")
	assert.Contains(t, buf.String(), "Usage: :load <filename>")
}

func TestUnknownCommand(t *testing.T) {
	r, buf := newTestREPL()
	assert.False(t, r.Eval(":frobnicate"))
	assert.Contains(t, buf.String(), "Unknown command: :frobnicate")
}

func TestHistory(t *testing.T) {
	r, buf := newTestREPL()
	r.addHistory("a")
	r.addHistory("a")
	r.addHistory("b")
	r.Eval(":history")
	assert.Equal(t, "   1  a\n   2  b\n", buf.String())

	for i := 0; i < historyLimit+10; i++ {
		r.addHistory(string(rune('a' + i%26)))
	}
	assert.Len(t, r.history, historyLimit)
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a + b", false},
		{"(a + b", true},
		{"(a + b)", false},
		{"[1, 2", true},
		{"'open", true},
		{`'it\'s'`, false},
		{`"a(" + b`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, needsMoreInput(tt.input), tt.input)
	}
}

func TestComplete(t *testing.T) {
	r, _ := newTestREPL("and", "or", "not", "+")
	assert.Equal(t, []string{":help", ":history"}, r.complete(":h"))
	assert.Equal(t, []string{"x and"}, r.complete("x an"))
	assert.Nil(t, r.complete("x "))
}

func TestFmtCommand(t *testing.T) {
	r, buf := newTestREPL("+", "*")

	r.Eval(":fmt a+b*  c")
	assert.Equal(t, "a + b * c\n", buf.String())

	buf.Reset()
	r.Eval(":fmt 1 2")
	assert.Contains(t, buf.String(), "error[L0001]")
}
