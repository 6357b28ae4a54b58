package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tangzhangming/exprlex/internal/lexer"
)

func lexError(t *testing.T, expr string, ops []string) *lexer.Error {
	t.Helper()
	_, err := lexer.New(expr, ops)
	lexErr, ok := err.(*lexer.Error)
	if !ok {
		t.Fatalf("expected *lexer.Error for %q, got %v", expr, err)
	}
	return lexErr
}

func TestPosition(t *testing.T) {
	source := "a + b\nc d\n\nx"
	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{5, 1, 6},
		{6, 2, 1},
		{8, 2, 3},
		{10, 3, 1},
		{11, 4, 1},
		{100, 4, 2},
		{-1, 1, 1},
	}
	for _, tt := range tests {
		line, col := Position(source, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestFromLexerError(t *testing.T) {
	source := "1 + 2\nx y"
	lexErr := lexError(t, "x y", []string{"+"})

	d := FromLexerError(lexErr, source, 6, "calc.expr", []string{"+"})
	if d.Code != "L0001" || d.Level != LevelError {
		t.Errorf("code/level = %s/%s", d.Code, d.Level)
	}
	if d.Line != 2 || d.Column != 3 || d.EndColumn != 4 {
		t.Errorf("position = %d:%d-%d, want 2:3-4", d.Line, d.Column, d.EndColumn)
	}
	if d.Offset != 8 {
		t.Errorf("offset = %d, want 8", d.Offset)
	}
	if len(d.Hints) != 1 {
		t.Errorf("hints = %v", d.Hints)
	}
}

func TestFormatterPlain(t *testing.T) {
	source := "1 2"
	lexErr := lexError(t, source, nil)
	d := FromLexerError(lexErr, source, 0, "<input>", nil)

	f := NewFormatter()
	f.ShowHints = false
	got := f.Format(d, strings.Split(source, "\n"))

	want := strings.Join([]string{
		"error[L0001]: expected operator here",
		" --> <input>:1:3",
		"  |",
		"1 | 1 2",
		"  |   ^",
		"",
	}, "\n")
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatterColors(t *testing.T) {
	d := &Diagnostic{Code: "L0002", Message: "expected literal here", File: "f", Line: 1, Column: 1}
	f := NewFormatter()
	f.Colors = true
	got := f.Format(d, []string{"@"})
	if !strings.Contains(got, "\033[1;31merror\033[0m") {
		t.Errorf("expected colored level, got %q", got)
	}
}

func TestFormatterUnderlineAtEnd(t *testing.T) {
	source := "1 +"
	lexErr := lexError(t, source, []string{"+"})
	d := FromLexerError(lexErr, source, 0, "<input>", []string{"+"})

	f := NewFormatter()
	f.ShowHints = false
	got := f.Format(d, []string{source})
	if !strings.HasSuffix(got, "  |    ^\n") {
		t.Errorf("unexpected underline:\n%s", got)
	}
}

func TestSuggestionsOperatorOrder(t *testing.T) {
	ops := []string{"<", "<<"}
	lexErr := lexError(t, "a<<b", ops)

	hints := Suggestions(lexErr, "a<<b", ops)
	if len(hints) != 2 {
		t.Fatalf("hints = %v", hints)
	}
	if !strings.Contains(hints[1], "'<<' before '<'") {
		t.Errorf("missing operator order hint: %v", hints)
	}

	// 没有被截断的运算符时只给出一般建议
	lexErr = lexError(t, "1 +", []string{"+"})
	if hints := Suggestions(lexErr, "1 +", []string{"+"}); len(hints) != 1 {
		t.Errorf("hints = %v", hints)
	}
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, nil)
	r.SetSource("calc.expr", "1 2")

	lexErr := lexError(t, "1 2", nil)
	r.Report(FromLexerError(lexErr, "1 2", 0, "calc.expr", nil))

	if r.ErrorCount() != 1 || !r.HasErrors() {
		t.Errorf("error count = %d", r.ErrorCount())
	}
	if !strings.Contains(buf.String(), "1 | 1 2") {
		t.Errorf("source line missing from output:\n%s", buf.String())
	}
}

func TestColorMode(t *testing.T) {
	if !ColorAlways.Enabled(nil) || ColorNever.Enabled(nil) {
		t.Error("always/never should not depend on the terminal")
	}
	if ColorMode("sometimes").Valid() {
		t.Error("unexpected valid mode")
	}
	t.Setenv("NO_COLOR", "1")
	if ColorAuto.Enabled(nil) {
		t.Error("NO_COLOR should disable auto colors")
	}
}
