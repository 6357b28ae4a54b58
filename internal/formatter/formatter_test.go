package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangzhangming/exprlex/internal/lexer"
	"github.com/tangzhangming/exprlex/internal/token"
)

func TestFormatSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		compact string
	}{
		{"arithmetic", "a+b*  c", "a + b * c", "a+b*c"},
		{"word operators", "x   and   not_y", "x and not_y", "x and not_y"},
		{"unary word", "not   x", "not x", "not x"},
		{"unary symbol", "- x", "- x", "-x"},
		{"signed number kept apart", "- 7", "- 7", "- 7"},
		{"minus before number", "a-7", "a - 7", "a- 7"},
		{"member access", "user . name", "user.name", "user.name"},
		{"dot between numbers", "1 . 2", "1 . 2", "1 . 2"},
		{"comma", "a , b", "a, b", "a,b"},
		{"index", "arr [ 0", "arr[0", "arr[0"},
		{"string quote switch", `name == "it's"`, `name == "it's"`, `name=="it's"`},
		{"string default quote", `"ok"+x`, `'ok' + x`, `'ok'+x`},
		{"both quotes", `s == 'a\'b"c'`, `s == 'a\'b"c'`, `s=='a\'b"c'`},
	}

	ops := lexer.DefaultOperators()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(ops, nil).FormatSource(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			got, err = New(ops, Compact()).FormatSource(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.compact, got)
		})
	}
}

func TestFormatDoubleQuoteOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Quote = '"'

	got, err := New([]string{"+"}, opts).FormatSource(`'a' + 'say "hi"'`)
	require.NoError(t, err)
	assert.Equal(t, `"a" + 'say "hi"'`, got)
}

func TestFormatFallsBackToSpaced(t *testing.T) {
	// "*x" 排在 "*" 前面，紧凑写法 a*x 会被分析成 a、*x
	ops := []string{"*x", "*"}
	got, err := New(ops, Compact()).FormatSource("a * x")
	require.NoError(t, err)
	assert.Equal(t, "a * x", got)
}

func TestFormatNotReproducible(t *testing.T) {
	tokens := []token.Token{token.New(token.Identifier, "a b", 0)}
	_, err := New(nil, nil).Format(tokens)
	assert.ErrorIs(t, err, ErrNotReproducible)
}

func TestFormatLexError(t *testing.T) {
	_, err := New([]string{"+"}, nil).FormatSource("1 2")
	var lexErr *lexer.Error
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, lexer.ExpectedOperator, lexErr.Kind)
}

func TestFormatEmpty(t *testing.T) {
	got, err := New(nil, nil).FormatSource("   ")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
