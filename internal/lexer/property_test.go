package lexer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangzhangming/exprlex/internal/token"
)

var fragments = []string{
	"1", "42", "-7", "3.14", ".5", "0xFF", "0b101", "1_000",
	"x", "foo", "_bar9", "and", "not",
	`'s'`, `'it\'s'`, `"q\"q"`, `""`,
	"+", "-", "*", "**", "<", "<<", "<=", "==", "(", ")", ".", ",",
	" ", "  ", "\t", "\n",
	"@", "#", "'", "12ab",
}

// randomExpression 用固定种子拼接片段，大部分结果合法，小部分会触发各类错误
func randomExpression(r *rand.Rand) string {
	var sb strings.Builder
	n := r.Intn(8)
	for i := 0; i < n; i++ {
		sb.WriteString(fragments[r.Intn(len(fragments))])
		if r.Intn(3) == 0 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func forEachExpression(t *testing.T, fn func(t *testing.T, expr string, ops []string)) {
	r := rand.New(rand.NewSource(20261017))
	opSets := [][]string{
		DefaultOperators(),
		{"+", "-"},
		{"<", "<<"},
		{},
	}
	for i := 0; i < 2000; i++ {
		expr := randomExpression(r)
		ops := opSets[i%len(opSets)]
		fn(t, expr, ops)
	}
}

func TestPropertyDeterminism(t *testing.T) {
	forEachExpression(t, func(t *testing.T, expr string, ops []string) {
		l1, err1 := New(expr, ops)
		l2, err2 := New(expr, ops)

		assert.Equal(t, l1.Tokens(), l2.Tokens(), "tokens differ for %q", expr)
		assert.Equal(t, err1, err2, "errors differ for %q", expr)
	})
}

func TestPropertyOffsets(t *testing.T) {
	forEachExpression(t, func(t *testing.T, expr string, ops []string) {
		l, err := New(expr, ops)
		require.GreaterOrEqual(t, l.Offset(), 0)
		require.LessOrEqual(t, l.Offset(), len(expr))

		if err != nil {
			lexErr, ok := err.(*Error)
			require.True(t, ok, "unexpected error type %T", err)
			require.GreaterOrEqual(t, lexErr.Offset, 0)
			require.LessOrEqual(t, lexErr.Offset, len(expr))
			assert.True(t, strings.HasPrefix(expr[lexErr.Offset:], lexErr.Context))
			assert.LessOrEqual(t, len(lexErr.Context), DefaultContextWidth)
			return
		}

		assert.Equal(t, len(expr), l.Offset(), "input not fully consumed: %q", expr)

		prev := -1
		for _, tok := range l.Tokens() {
			assert.Greater(t, tok.Offset, prev, "offsets not increasing in %q", expr)
			assert.Less(t, tok.Offset, len(expr))
			if tok.Kind != token.String {
				assert.True(t, strings.HasPrefix(expr[tok.Offset:], tok.Value),
					"%v does not appear at offset %d of %q", tok, tok.Offset, expr)
			}
			prev = tok.Offset
		}
	})
}

func TestPropertyAlternation(t *testing.T) {
	forEachExpression(t, func(t *testing.T, expr string, ops []string) {
		tokens, err := Tokenize(expr, ops)
		if err != nil || len(tokens) < 2 {
			return
		}
		for i := 1; i < len(tokens); i++ {
			prev, cur := tokens[i-1].Kind, tokens[i].Kind
			assert.NotEqual(t, prev.IsLiteral(), cur.IsLiteral(),
				"tokens %d and %d do not alternate in %q: %v", i-1, i, expr, tokens)
		}
		assert.True(t, tokens[len(tokens)-1].Kind.IsLiteral(), "expression %q ends with an operator", expr)
	})
}

func TestPropertyNumberSuffix(t *testing.T) {
	for _, expr := range []string{"123abc", "1x", "0x1g", "0b12", "3.14e5", "1_0_a"} {
		_, err := Tokenize(expr, []string{"+"})
		require.Error(t, err, expr)
		assert.ErrorIs(t, err, InvalidNumberSuffix, expr)
	}
}
